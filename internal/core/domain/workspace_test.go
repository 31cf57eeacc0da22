package domain_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/zerr"
)

// declare is a shorthand for adding a project with the given project references.
func declare(t *testing.T, w *domain.Workspace, name string, projectRefs ...string) {
	t.Helper()
	refs := make([]domain.InternedString, len(projectRefs))
	for i, r := range projectRefs {
		refs[i] = domain.NewInternedString(r)
	}
	err := w.AddProject(&domain.ProjectDecl{
		Name:        domain.NewInternedString(name),
		ProjectRefs: refs,
	})
	require.NoError(t, err)
}

func TestWorkspace_AddProject_Duplicate(t *testing.T) {
	w := domain.NewWorkspace()
	declare(t, w, "app")

	err := w.AddProject(&domain.ProjectDecl{Name: domain.NewInternedString("app")})
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrProjectAlreadyExists))

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "app", zErr.Metadata()["project"])
}

func TestWorkspace_Validate_Cycles(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testing.T, *domain.Workspace)
	}{
		{
			name: "self reference",
			setup: func(t *testing.T, w *domain.Workspace) {
				declare(t, w, "a", "a")
			},
		},
		{
			name: "two node cycle",
			setup: func(t *testing.T, w *domain.Workspace) {
				declare(t, w, "a", "b")
				declare(t, w, "b", "a")
			},
		},
		{
			name: "three node cycle",
			setup: func(t *testing.T, w *domain.Workspace) {
				declare(t, w, "a", "b")
				declare(t, w, "b", "c")
				declare(t, w, "c", "a")
			},
		},
		{
			name: "cycle behind a valid prefix",
			setup: func(t *testing.T, w *domain.Workspace) {
				declare(t, w, "entry", "a")
				declare(t, w, "a", "b")
				declare(t, w, "b", "a")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.NewWorkspace()
			tt.setup(t, w)

			err := w.Validate()
			require.Error(t, err)
			require.True(t, errors.Is(err, domain.ErrReferenceCycle))

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			cycle, ok := zErr.Metadata()["cycle"].(string)
			require.True(t, ok)
			assert.Contains(t, cycle, " -> ")
		})
	}
}

func TestWorkspace_Validate_MissingReference(t *testing.T) {
	w := domain.NewWorkspace()
	declare(t, w, "app", "ghost")

	err := w.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrMissingProjectReference))

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "ghost", zErr.Metadata()["reference"])
}

func TestWorkspace_Walk_DependencyOrder(t *testing.T) {
	w := domain.NewWorkspace()
	declare(t, w, "app", "lib", "util")
	declare(t, w, "lib", "util")
	declare(t, w, "util")
	declare(t, w, "standalone")

	require.NoError(t, w.Validate())

	var order []string
	for decl := range w.Walk() {
		order = append(order, decl.Name.String())
	}
	require.Len(t, order, 4)

	idx := func(name string) int { return slices.Index(order, name) }
	assert.Less(t, idx("util"), idx("lib"), "order was %s", strings.Join(order, ", "))
	assert.Less(t, idx("lib"), idx("app"), "order was %s", strings.Join(order, ", "))
	assert.GreaterOrEqual(t, idx("standalone"), 0)

	assert.Equal(t, order, w.Names())
}

func TestWorkspace_Walk_EarlyStop(t *testing.T) {
	w := domain.NewWorkspace()
	declare(t, w, "a")
	declare(t, w, "b")
	require.NoError(t, w.Validate())

	count := 0
	for range w.Walk() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestWorkspace_Snapshots(t *testing.T) {
	w := domain.NewWorkspace()
	declare(t, w, "app")
	require.NoError(t, w.Validate())

	_, ok := w.Snapshot("app")
	assert.False(t, ok)

	snap := domain.NewProjectSnapshot("app", nil, []string{"--strict"}, nil)
	w.SetSnapshot(snap)

	got, ok := w.Snapshot("app")
	require.True(t, ok)
	assert.Same(t, snap, got)

	_, ok = w.Snapshot("ghost")
	assert.False(t, ok)
}
