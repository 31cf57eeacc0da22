// Package memcache implements the in-process checking cache.
//
// The cache is process-lifetime only: there is no persisted format, and it
// is rebuilt from scratch on restart.
package memcache

import (
	"sync"

	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/sema/internal/core/ports"
)

var _ ports.CheckCache = (*Cache)(nil)

// entry is one cached check result. installedAt is a logical version counter
// used to observe supersession in tests and diagnostics.
type entry struct {
	fingerprint domain.Fingerprint
	result      *domain.CheckResult
	installedAt uint64
}

// Cache maps project IDs to their single current check result.
//
// The mutex guards only the map operations; it is never held across an
// external checker invocation, so unrelated checks are not serialized behind
// a slow compile. Growth across distinct project IDs is bounded by how many
// projects the caller keeps open, not by this component.
type Cache struct {
	mu      sync.RWMutex
	entries map[domain.InternedString]entry
	version uint64
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		entries: make(map[domain.InternedString]entry),
	}
}

// Lookup returns the cached result for (projectID, fp) if it is the current
// entry for the project. Superseded results are never returned: Install
// replaces the entry outright, so a stale fingerprint cannot match.
func (c *Cache) Lookup(projectID domain.InternedString, fp domain.Fingerprint) (*domain.CheckResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[projectID]
	if !ok || e.fingerprint != fp {
		return nil, false
	}
	return e.result, true
}

// Install stores the result under (projectID, fp), atomically replacing any
// existing entry for the project. The superseded entry is dropped, not
// shadowed, so its resources become eligible for reclamation immediately.
func (c *Cache) Install(projectID domain.InternedString, fp domain.Fingerprint, result *domain.CheckResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.version++
	c.entries[projectID] = entry{
		fingerprint: fp,
		result:      result,
		installedAt: c.version,
	}
}

// ClearAll drops every entry. This is the deterministic reclamation hook:
// after it returns the cache holds no reference to any check result, so
// in-memory referenced buffers with no other owner become collectable.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[domain.InternedString]entry)
}

// InstalledAt returns the logical version at which the project's current
// entry was installed. Versions increase monotonically across installs, so a
// superseding install is observable as a larger value.
func (c *Cache) InstalledAt(projectID domain.InternedString) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[projectID]
	if !ok {
		return 0, false
	}
	return e.installedAt, true
}

// Len returns the number of current entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
