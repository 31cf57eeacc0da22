package fs_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sema/internal/adapters/fs"
	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/zerr"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestOracle_CurrentStamp_OnDisk(t *testing.T) {
	oracle := fs.NewOracle()
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.bin")
	writeFile(t, path, "compiled v1")

	ref := domain.FromOnDiskBinary(path)

	t.Run("stable while content is unchanged", func(t *testing.T) {
		first, err := oracle.CurrentStamp(ref)
		require.NoError(t, err)
		require.NotEmpty(t, first)

		second, err := oracle.CurrentStamp(ref)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("unchanged after rewriting identical bytes", func(t *testing.T) {
		before, err := oracle.CurrentStamp(ref)
		require.NoError(t, err)

		// A rewrite bumps the mtime but not the content.
		writeFile(t, path, "compiled v1")

		after, err := oracle.CurrentStamp(ref)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("changes when content changes", func(t *testing.T) {
		before, err := oracle.CurrentStamp(ref)
		require.NoError(t, err)

		writeFile(t, path, "compiled v2")

		after, err := oracle.CurrentStamp(ref)
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
	})
}

func TestOracle_CurrentStamp_MissingFile(t *testing.T) {
	oracle := fs.NewOracle()
	path := filepath.Join(t.TempDir(), "gone.bin")

	_, err := oracle.CurrentStamp(domain.FromOnDiskBinary(path))
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrArtifactMissing))

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, path, zErr.Metadata()["path"])
}

func TestOracle_CurrentStamp_InMemory(t *testing.T) {
	oracle := fs.NewOracle()

	stamp := domain.FreshnessStamp("gen-1")
	ref := domain.FromInMemoryBlob("lib#mem",
		func() domain.FreshnessStamp { return stamp },
		func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("x")), nil },
	)

	got, err := oracle.CurrentStamp(ref)
	require.NoError(t, err)
	assert.Equal(t, domain.FreshnessStamp("gen-1"), got)

	stamp = "gen-2"
	got, err = oracle.CurrentStamp(ref)
	require.NoError(t, err)
	assert.Equal(t, domain.FreshnessStamp("gen-2"), got)
}

func TestOracle_Resolve_OnDisk(t *testing.T) {
	oracle := fs.NewOracle()
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.bin")
	writeFile(t, path, "compiled bytes")

	data, err := oracle.Resolve(domain.FromOnDiskBinary(path))
	require.NoError(t, err)
	assert.Equal(t, "compiled bytes", string(data))
}

func TestOracle_Resolve_MissingFile(t *testing.T) {
	oracle := fs.NewOracle()
	path := filepath.Join(t.TempDir(), "gone.bin")

	_, err := oracle.Resolve(domain.FromOnDiskBinary(path))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrArtifactMissing))
}

func TestOracle_Resolve_InMemory(t *testing.T) {
	oracle := fs.NewOracle()

	t.Run("reads the producer once per resolve", func(t *testing.T) {
		opens := 0
		ref := domain.FromInMemoryBlob("lib#mem",
			func() domain.FreshnessStamp { return "gen-1" },
			func() (io.ReadCloser, error) {
				opens++
				return io.NopCloser(strings.NewReader("blob bytes")), nil
			},
		)

		data, err := oracle.Resolve(ref)
		require.NoError(t, err)
		assert.Equal(t, "blob bytes", string(data))
		assert.Equal(t, 1, opens)
	})

	t.Run("propagates producer failure", func(t *testing.T) {
		ref := domain.FromInMemoryBlob("lib#mem",
			func() domain.FreshnessStamp { return "gen-1" },
			func() (io.ReadCloser, error) { return nil, zerr.New("producer gone") },
		)

		_, err := oracle.Resolve(ref)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open in-memory stream")
	})
}

func TestOracle_ComputeFileHash(t *testing.T) {
	oracle := fs.NewOracle()
	dir := t.TempDir()

	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")
	writeFile(t, a, "same content")
	writeFile(t, b, "same content")

	ha, err := oracle.ComputeFileHash(a)
	require.NoError(t, err)
	hb, err := oracle.ComputeFileHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb, "identical content must hash identically regardless of path")

	writeFile(t, b, "different content")
	hb2, err := oracle.ComputeFileHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb2)
}
