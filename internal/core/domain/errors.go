package domain

import "go.trai.ch/zerr"

var (
	// ErrArtifactMissing is returned when an on-disk referenced binary does not
	// exist at fingerprinting or resolution time.
	ErrArtifactMissing = zerr.New("referenced artifact missing")

	// ErrCheckAborted is returned when the external checker could not complete.
	// It is never coerced into an empty-diagnostics success.
	ErrCheckAborted = zerr.New("check aborted")

	// ErrCompilationFailed is returned when the external compile-to-binary step failed.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrProjectAlreadyExists is returned when adding a project declaration whose name is taken.
	ErrProjectAlreadyExists = zerr.New("project already exists")

	// ErrMissingProjectReference is returned when a project references a project
	// that is not declared in the workspace.
	ErrMissingProjectReference = zerr.New("missing project reference")

	// ErrReferenceCycle is returned when project references form a cycle.
	ErrReferenceCycle = zerr.New("reference cycle detected")

	// ErrProjectNotFound is returned when a requested project is not in the workspace.
	ErrProjectNotFound = zerr.New("project not found")

	// ErrNoProjectsSpecified is returned when a check run names no projects.
	ErrNoProjectsSpecified = zerr.New("no projects specified")

	// ErrDiagnosticsReported signals that checking completed but produced diagnostics.
	ErrDiagnosticsReported = zerr.New("diagnostics reported")
)
