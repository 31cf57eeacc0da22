package ports

import "go.trai.ch/sema/internal/core/domain"

// CheckCache maps a (project ID, composite fingerprint) key to a cached
// check result and owns invalidation.
//
// At most one entry is current per project ID. The internal map requires
// synchronized access held only for the duration of the map operation, never
// across an external checker invocation.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CheckCache interface {
	// Lookup returns the cached result for the key, if current.
	Lookup(projectID domain.InternedString, fp domain.Fingerprint) (*domain.CheckResult, bool)

	// Install stores the result under the key, atomically replacing any
	// existing entry for the project ID. The superseded entry's resources
	// become eligible for reclamation immediately.
	Install(projectID domain.InternedString, fp domain.Fingerprint, result *domain.CheckResult)

	// ClearAll drops every entry, releasing all owning references held by
	// the cache so in-memory referenced buffers become reclaimable.
	ClearAll()
}
