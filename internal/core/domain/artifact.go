// Package domain contains the core domain models for the semantic checking cache.
package domain

import (
	"io"
	"path/filepath"

	"go.trai.ch/zerr"
)

// ArtifactKind discriminates the two flavours of compiled output a project
// can depend on.
type ArtifactKind uint8

const (
	// KindOnDiskBinary is a compiled binary sitting on the file system,
	// typically produced by an external compiler process.
	KindOnDiskBinary ArtifactKind = iota
	// KindInMemoryBlob is an in-memory byte stream producer paired with a
	// caller-supplied freshness stamp, typically a compiler output buffer
	// that was never written to disk.
	KindInMemoryBlob
)

// FreshnessStamp is an opaque comparable value signalling whether an
// artifact's bytes have changed. For on-disk binaries it is derived from the
// file content; for in-memory blobs it is supplied by the caller.
type FreshnessStamp string

// StampFunc reports the current freshness stamp of an in-memory blob.
// Callers must return a new value whenever they replace the producer.
type StampFunc func() FreshnessStamp

// StreamFunc produces the bytes of an in-memory blob on demand. It may be
// invoked multiple times over the artifact's lifetime, but at most once per
// check, and must yield bytes consistent with the most recently reported stamp.
type StreamFunc func() (io.ReadCloser, error)

// ArtifactRef is a dependency edge to compiled output. The identity is
// stable across recompiles of the same logical artifact; the stamp changes
// exactly when the underlying bytes change.
//
// The cache never owns the artifact. For in-memory blobs the byte buffer's
// lifetime is owned by whoever created the producer; the only reference this
// package retains is the producer closure itself.
type ArtifactRef struct {
	identity InternedString
	kind     ArtifactKind
	path     string
	stamp    StampFunc
	stream   StreamFunc
}

// FromOnDiskBinary creates a reference to a compiled binary on disk.
// The identity is the cleaned path; freshness is re-queried from the file
// system on every staleness oracle call.
func FromOnDiskBinary(path string) *ArtifactRef {
	clean := filepath.Clean(path)
	return &ArtifactRef{
		identity: NewInternedString(clean),
		kind:     KindOnDiskBinary,
		path:     clean,
	}
}

// FromInMemoryBlob creates a reference to an in-memory byte stream producer.
// stamp and stream are treated as an atomic pair per invocation; keeping them
// consistent is the caller's responsibility.
func FromInMemoryBlob(identity string, stamp StampFunc, stream StreamFunc) *ArtifactRef {
	return &ArtifactRef{
		identity: NewInternedString(identity),
		kind:     KindInMemoryBlob,
		stamp:    stamp,
		stream:   stream,
	}
}

// Identity returns the stable identity of the artifact.
func (a *ArtifactRef) Identity() InternedString {
	return a.identity
}

// Kind returns the artifact kind tag.
func (a *ArtifactRef) Kind() ArtifactKind {
	return a.kind
}

// Path returns the on-disk location. It is empty for in-memory blobs.
func (a *ArtifactRef) Path() string {
	return a.path
}

// CurrentStamp invokes the caller-supplied stamp provider of an in-memory blob.
func (a *ArtifactRef) CurrentStamp() (FreshnessStamp, error) {
	if a.kind != KindInMemoryBlob {
		return "", zerr.With(zerr.New("artifact has no in-memory stamp provider"), "identity", a.identity.String())
	}
	return a.stamp(), nil
}

// OpenStream invokes the producer of an in-memory blob. Each call re-invokes
// the producer; the result is not a cached buffer.
func (a *ArtifactRef) OpenStream() (io.ReadCloser, error) {
	if a.kind != KindInMemoryBlob {
		return nil, zerr.With(zerr.New("artifact has no in-memory stream producer"), "identity", a.identity.String())
	}
	return a.stream()
}
