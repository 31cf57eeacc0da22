package domain

// SourceFile is one source input of a project, captured with its content at
// snapshot construction time.
type SourceFile struct {
	Path    InternedString
	Content []byte
}

// Reference is a dependency edge of a project snapshot: exactly one of
// Artifact or Project is set. Nested projects are fingerprinted recursively;
// artifacts are stamped through the staleness oracle.
type Reference struct {
	Artifact *ArtifactRef
	Project  *ProjectSnapshot
}

// ArtifactReference creates a reference to compiled output.
func ArtifactReference(a *ArtifactRef) Reference {
	return Reference{Artifact: a}
}

// ProjectReference creates a reference to another in-flight project.
func ProjectReference(p *ProjectSnapshot) Reference {
	return Reference{Project: p}
}

// ProjectSnapshot is an immutable description of one checkable project
// configuration. A configuration change produces a new snapshot rather than
// mutating an existing one, so snapshots are freely shared across goroutines
// without locking.
//
// Ordering is significant everywhere: source files, options and references
// are fingerprinted in declared order, matching how compiler flag order can
// be significant.
type ProjectSnapshot struct {
	ProjectID   InternedString
	SourceFiles []SourceFile
	Options     []string
	References  []Reference
}

// NewProjectSnapshot constructs a snapshot, cloning every input slice so the
// caller cannot mutate the snapshot afterwards through retained slices.
func NewProjectSnapshot(projectID string, files []SourceFile, options []string, refs []Reference) *ProjectSnapshot {
	s := &ProjectSnapshot{
		ProjectID:   NewInternedString(projectID),
		SourceFiles: make([]SourceFile, len(files)),
		Options:     make([]string, len(options)),
		References:  make([]Reference, len(refs)),
	}
	copy(s.SourceFiles, files)
	copy(s.Options, options)
	copy(s.References, refs)
	return s
}
