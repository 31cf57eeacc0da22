package domain_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sema/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	t.Run("equality is by value", func(t *testing.T) {
		a := domain.NewInternedString("Library/Script1.sx")
		b := domain.NewInternedString("Library/Script1.sx")
		c := domain.NewInternedString("Library/Script2.sx")

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
		assert.Equal(t, "Library/Script1.sx", a.String())
	})

	t.Run("zero value is empty string", func(t *testing.T) {
		var zero domain.InternedString
		assert.Equal(t, "", zero.String())
	})
}

func TestFromOnDiskBinary(t *testing.T) {
	t.Run("identity is the cleaned path", func(t *testing.T) {
		ref := domain.FromOnDiskBinary("out/../out/lib.bin")

		assert.Equal(t, domain.KindOnDiskBinary, ref.Kind())
		assert.Equal(t, "out/lib.bin", ref.Path())
		assert.Equal(t, "out/lib.bin", ref.Identity().String())
	})

	t.Run("equivalent spellings share an identity", func(t *testing.T) {
		a := domain.FromOnDiskBinary("out/lib.bin")
		b := domain.FromOnDiskBinary("./out/lib.bin")

		assert.Equal(t, a.Identity(), b.Identity())
	})

	t.Run("has no in-memory accessors", func(t *testing.T) {
		ref := domain.FromOnDiskBinary("out/lib.bin")

		_, err := ref.CurrentStamp()
		require.Error(t, err)

		_, err = ref.OpenStream()
		require.Error(t, err)
	})
}

func TestFromInMemoryBlob(t *testing.T) {
	t.Run("stamp and stream come from the caller", func(t *testing.T) {
		stamp := domain.FreshnessStamp("v1")
		ref := domain.FromInMemoryBlob("lib#1",
			func() domain.FreshnessStamp { return stamp },
			func() (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("payload")), nil
			},
		)

		assert.Equal(t, domain.KindInMemoryBlob, ref.Kind())
		assert.Equal(t, "lib#1", ref.Identity().String())
		assert.Empty(t, ref.Path())

		got, err := ref.CurrentStamp()
		require.NoError(t, err)
		assert.Equal(t, domain.FreshnessStamp("v1"), got)

		// A replaced producer reports a new stamp on the next query.
		stamp = "v2"
		got, err = ref.CurrentStamp()
		require.NoError(t, err)
		assert.Equal(t, domain.FreshnessStamp("v2"), got)

		rc, err := ref.OpenStream()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "payload", string(data))
	})

	t.Run("each open re-invokes the producer", func(t *testing.T) {
		opens := 0
		ref := domain.FromInMemoryBlob("lib#1",
			func() domain.FreshnessStamp { return "v1" },
			func() (io.ReadCloser, error) {
				opens++
				return io.NopCloser(strings.NewReader("payload")), nil
			},
		)

		for range 3 {
			rc, err := ref.OpenStream()
			require.NoError(t, err)
			require.NoError(t, rc.Close())
		}
		assert.Equal(t, 3, opens)
	})
}

func TestNewProjectSnapshot_ClonesInputs(t *testing.T) {
	files := []domain.SourceFile{
		{Path: domain.NewInternedString("a.sx"), Content: []byte("let x = 1")},
	}
	options := []string{"--strict"}
	refs := []domain.Reference{
		domain.ArtifactReference(domain.FromOnDiskBinary("out/lib.bin")),
	}

	snap := domain.NewProjectSnapshot("app", files, options, refs)

	// Mutating the caller's slices must not show through the snapshot.
	files[0] = domain.SourceFile{Path: domain.NewInternedString("b.sx")}
	options[0] = "--lax"
	refs[0] = domain.Reference{}

	assert.Equal(t, "app", snap.ProjectID.String())
	require.Len(t, snap.SourceFiles, 1)
	assert.Equal(t, "a.sx", snap.SourceFiles[0].Path.String())
	assert.Equal(t, []string{"--strict"}, snap.Options)
	require.Len(t, snap.References, 1)
	require.NotNil(t, snap.References[0].Artifact)
	assert.Equal(t, "out/lib.bin", snap.References[0].Artifact.Path())
}

func TestReferenceConstructors(t *testing.T) {
	art := domain.FromOnDiskBinary("out/lib.bin")
	sub := domain.NewProjectSnapshot("lib", nil, nil, nil)

	aref := domain.ArtifactReference(art)
	assert.Same(t, art, aref.Artifact)
	assert.Nil(t, aref.Project)

	pref := domain.ProjectReference(sub)
	assert.Same(t, sub, pref.Project)
	assert.Nil(t, pref.Artifact)
}

func TestCheckResult_HasErrors(t *testing.T) {
	res := &domain.CheckResult{
		Diagnostics: []domain.Diagnostic{
			{Severity: domain.SeverityWarning, Message: "unused binding"},
		},
	}
	assert.False(t, res.HasErrors())

	res.Diagnostics = append(res.Diagnostics, domain.Diagnostic{
		Severity: domain.SeverityError, Message: "unknown identifier",
	})
	assert.True(t, res.HasErrors())

	empty := &domain.CheckResult{}
	assert.False(t, empty.HasErrors())
}
