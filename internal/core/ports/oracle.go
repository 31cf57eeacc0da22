package ports

import "go.trai.ch/sema/internal/core/domain"

// StalenessOracle reports the current freshness stamp of an artifact
// reference on demand.
//
// Implementations must not cache: every call re-queries the authoritative
// source. Staleness detection is the correctness-critical primitive, and
// caching staleness itself would reintroduce the bug class this component
// exists to prevent.
//
//go:generate go run go.uber.org/mock/mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type StalenessOracle interface {
	// CurrentStamp returns the artifact's freshness stamp at call time.
	// For on-disk binaries it fails with domain.ErrArtifactMissing if the
	// file does not exist; for in-memory blobs it performs no I/O.
	CurrentStamp(ref *domain.ArtifactRef) (domain.FreshnessStamp, error)
}

// ReferenceResolver produces the bytes of an artifact reference.
type ReferenceResolver interface {
	// Resolve reads the artifact's bytes: an on-disk file read, or a single
	// invocation of an in-memory blob's stream producer.
	Resolve(ref *domain.ArtifactRef) ([]byte, error)
}
