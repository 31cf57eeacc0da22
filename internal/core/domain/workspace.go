package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// ProjectDecl is the declared configuration of one project before its
// snapshot has been built: source paths, options and references by name.
type ProjectDecl struct {
	Name        InternedString
	Sources     []InternedString
	Options     []string
	BinaryRefs  []InternedString
	ProjectRefs []InternedString
}

// Workspace is the set of project declarations loaded from configuration,
// plus the snapshots built from them. Project references must form a DAG.
type Workspace struct {
	decls     map[InternedString]ProjectDecl
	order     []InternedString
	snapshots map[InternedString]*ProjectSnapshot
}

// NewWorkspace creates a new empty Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		decls:     make(map[InternedString]ProjectDecl),
		snapshots: make(map[InternedString]*ProjectSnapshot),
	}
}

// AddProject adds a project declaration to the workspace.
// It returns an error if a project with the same name already exists.
func (w *Workspace) AddProject(d *ProjectDecl) error {
	if _, exists := w.decls[d.Name]; exists {
		return zerr.With(ErrProjectAlreadyExists, "project", d.Name.String())
	}
	w.decls[d.Name] = *d
	return nil
}

// Validate checks project references for missing targets and cycles using a
// depth-first topological sort. It populates the dependency order consumed
// by Walk.
func (w *Workspace) Validate() error {
	w.order = make([]InternedString, 0, len(w.decls))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		decl, exists := w.decls[u]
		if !exists {
			return zerr.With(ErrMissingProjectReference, "reference", u.String())
		}

		for _, ref := range decl.ProjectRefs {
			if visited[ref] == 1 {
				return w.buildCycleError(path, ref)
			}
			if visited[ref] == 0 {
				if err := visit(ref); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		w.order = append(w.order, u)
		return nil
	}

	// Cover disconnected components as well.
	for name := range w.decls {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (w *Workspace) buildCycleError(path []InternedString, ref InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == ref {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += ref.String()
	return zerr.With(ErrReferenceCycle, "cycle", cyclePath)
}

// Walk returns an iterator that yields declarations in dependency order, so
// every project is yielded after the projects it references.
// It assumes Validate() has been called and returned nil.
func (w *Workspace) Walk() iter.Seq[ProjectDecl] {
	return func(yield func(ProjectDecl) bool) {
		for _, name := range w.order {
			if !yield(w.decls[name]) {
				return
			}
		}
	}
}

// SetSnapshot installs the snapshot built for a declared project.
func (w *Workspace) SetSnapshot(s *ProjectSnapshot) {
	w.snapshots[s.ProjectID] = s
}

// Snapshot returns the built snapshot for the named project.
func (w *Workspace) Snapshot(name string) (*ProjectSnapshot, bool) {
	s, ok := w.snapshots[NewInternedString(name)]
	return s, ok
}

// Names returns the declared project names in dependency order.
func (w *Workspace) Names() []string {
	names := make([]string, len(w.order))
	for i, n := range w.order {
		names[i] = n.String()
	}
	return names
}
