// Package config provides the workspace configuration loader for sema.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/sema/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the workspace file looked up in the working directory.
const DefaultFilename = "sema.yaml"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a loader for the default workspace filename.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{
		Filename: DefaultFilename,
		logger:   logger,
	}
}

// Load reads the configuration from the given working directory, validates
// the project reference graph and builds an immutable snapshot per project.
// Source contents are captured at load time: a later edit requires a reload,
// which produces new snapshots rather than mutating existing ones.
func (l *FileConfigLoader) Load(cwd string) (*domain.Workspace, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var semafile Semafile
	if err := yaml.Unmarshal(data, &semafile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	ws := domain.NewWorkspace()

	// First pass: declarations only, so reference validation sees every name.
	for name, dto := range semafile.Projects {
		decl := &domain.ProjectDecl{
			Name:        domain.NewInternedString(name),
			Sources:     internStrings(dto.Sources),
			Options:     dto.Options,
			BinaryRefs:  internStrings(dto.References.Binaries),
			ProjectRefs: internStrings(dto.References.Projects),
		}
		if err := ws.AddProject(decl); err != nil {
			return nil, err
		}
	}

	if err := ws.Validate(); err != nil {
		return nil, err
	}

	// Second pass: build snapshots in dependency order so every project
	// reference resolves to an already-built snapshot.
	for decl := range ws.Walk() {
		snap, err := l.buildSnapshot(cwd, ws, decl)
		if err != nil {
			return nil, err
		}
		ws.SetSnapshot(snap)
	}

	l.logger.Info(fmt.Sprintf("workspace loaded: %d project(s)", len(semafile.Projects)))
	return ws, nil
}

func (l *FileConfigLoader) buildSnapshot(cwd string, ws *domain.Workspace, decl domain.ProjectDecl) (*domain.ProjectSnapshot, error) {
	files := make([]domain.SourceFile, 0, len(decl.Sources))
	for _, src := range decl.Sources {
		path := filepath.Join(cwd, src.String())
		content, err := os.ReadFile(path) //nolint:gosec // Paths come from the workspace file
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read source file"), "path", path)
		}
		files = append(files, domain.SourceFile{
			Path:    src,
			Content: content,
		})
	}

	refs := make([]domain.Reference, 0, len(decl.BinaryRefs)+len(decl.ProjectRefs))
	for _, bin := range decl.BinaryRefs {
		refs = append(refs, domain.ArtifactReference(domain.FromOnDiskBinary(filepath.Join(cwd, bin.String()))))
	}
	for _, proj := range decl.ProjectRefs {
		sub, ok := ws.Snapshot(proj.String())
		if !ok {
			// Validate() guarantees dependency order; a miss here is a bug.
			return nil, zerr.With(domain.ErrMissingProjectReference, "reference", proj.String())
		}
		refs = append(refs, domain.ProjectReference(sub))
	}

	return domain.NewProjectSnapshot(decl.Name.String(), files, decl.Options, refs), nil
}

func internStrings(strs []string) []domain.InternedString {
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
