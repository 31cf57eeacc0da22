// Package orchestrator implements the check orchestration engine: it turns a
// (file, project snapshot) pair into a check result, reusing cached results
// whenever the project's transitive freshness fingerprint is unchanged.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/sema/internal/core/ports"
	"go.trai.ch/zerr"
)

// Orchestrator is the public entry point for checking. It is an explicit
// context object: construct one per checker/cache lifecycle and pass it
// around; there is no package-level singleton.
type Orchestrator struct {
	checker  ports.Checker
	oracle   ports.StalenessOracle
	resolver ports.ReferenceResolver
	cache    ports.CheckCache
	tracer   ports.Telemetry
}

// New creates a new Orchestrator.
func New(
	checker ports.Checker,
	oracle ports.StalenessOracle,
	resolver ports.ReferenceResolver,
	cache ports.CheckCache,
	tracer ports.Telemetry,
) *Orchestrator {
	return &Orchestrator{
		checker:  checker,
		oracle:   oracle,
		resolver: resolver,
		cache:    cache,
		tracer:   tracer,
	}
}

// CheckFile checks file against the project snapshot.
//
// On a fingerprint hit the cached result is returned unchanged: no checker
// invocation, no I/O beyond the fingerprint computation itself. On a miss
// the external checker runs and the result is installed under the new
// fingerprint, evicting any prior entry for the project ID.
//
// Concurrent calls are safe. Two concurrent misses for the same key may both
// recompute; the last install wins and the cache converges to one entry.
func (o *Orchestrator) CheckFile(ctx context.Context, file string, snap *domain.ProjectSnapshot) (*domain.CheckResult, error) {
	ctx, vertex := o.tracer.Record(ctx, "check "+file)

	res, err := o.checkFile(ctx, file, snap, vertex)
	vertex.Complete(err)
	return res, err
}

func (o *Orchestrator) checkFile(ctx context.Context, file string, snap *domain.ProjectSnapshot, vertex ports.Vertex) (*domain.CheckResult, error) {
	fp, err := o.Fingerprint(file, snap)
	if err != nil {
		return nil, err
	}

	if cached, ok := o.cache.Lookup(snap.ProjectID, fp); ok {
		vertex.Cached()
		return cached, nil
	}

	// Cancellation point: never start the external checker for a dead call,
	// and never install a partial entry.
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, "check cancelled before checker invocation")
	}

	refs, err := o.resolveReferences(snap)
	if err != nil {
		return nil, err
	}

	result, err := o.checker.CheckFile(ctx, file, snap.Options, refs)
	if err != nil {
		// A checker abort propagates verbatim and leaves the cache untouched.
		return nil, zerr.With(zerr.Wrap(err, "external checker failed"), "project", snap.ProjectID.String())
	}

	result.Fingerprint = fp
	result.References = refs
	o.cache.Install(snap.ProjectID, fp, result)
	return result, nil
}

// Fingerprint computes the composite fingerprint of checking file against
// the snapshot: the snapshot's own content (checked file, project ID, source
// files, options) combined with the freshness stamp of every transitively
// referenced artifact and nested snapshot, in declared order. Two projects
// with the same references in a different order are distinct configurations.
//
// The multi-reference stamp read is best-effort consistent, not
// transactional: no lock is held across it, and if a reference is replaced
// mid-computation the later-read stamp wins.
func (o *Orchestrator) Fingerprint(file string, snap *domain.ProjectSnapshot) (domain.Fingerprint, error) {
	digest := xxhash.New()

	_, _ = digest.WriteString(file)
	_, _ = digest.Write([]byte{0})

	if err := o.fingerprintSnapshot(snap, digest); err != nil {
		return "", err
	}

	return domain.Fingerprint(fmt.Sprintf("%016x", digest.Sum64())), nil
}

func (o *Orchestrator) fingerprintSnapshot(snap *domain.ProjectSnapshot, digest *xxhash.Digest) error {
	_, _ = digest.WriteString(snap.ProjectID.String())
	_, _ = digest.Write([]byte{0}) // Separator

	for _, sf := range snap.SourceFiles {
		_, _ = digest.WriteString(sf.Path.String())
		_, _ = digest.Write([]byte{0})
		_, _ = digest.Write(sf.Content)
		_, _ = digest.Write([]byte{0})
	}
	_, _ = digest.Write([]byte{0}) // Section separator

	for _, opt := range snap.Options {
		_, _ = digest.WriteString(opt)
		_, _ = digest.Write([]byte{0})
	}
	_, _ = digest.Write([]byte{0})

	for _, ref := range snap.References {
		if ref.Project != nil {
			if err := o.fingerprintSnapshot(ref.Project, digest); err != nil {
				return err
			}
		} else {
			stamp, err := o.oracle.CurrentStamp(ref.Artifact)
			if err != nil {
				return err
			}
			_, _ = digest.WriteString(ref.Artifact.Identity().String())
			_, _ = digest.Write([]byte{0})
			_, _ = digest.WriteString(string(stamp))
		}
		_, _ = digest.Write([]byte{0})
	}
	_, _ = digest.Write([]byte{0})

	return nil
}

// resolveReferences opens the transitive artifact references depth-first in
// declared order, invoking each in-memory producer exactly once. Resolution
// happens only on the miss path, never eagerly at snapshot construction.
func (o *Orchestrator) resolveReferences(snap *domain.ProjectSnapshot) ([]domain.ResolvedReference, error) {
	var resolved []domain.ResolvedReference

	var collect func(s *domain.ProjectSnapshot) error
	collect = func(s *domain.ProjectSnapshot) error {
		for _, ref := range s.References {
			if ref.Project != nil {
				if err := collect(ref.Project); err != nil {
					return err
				}
				continue
			}

			data, err := o.resolver.Resolve(ref.Artifact)
			if err != nil {
				return err
			}
			resolved = append(resolved, domain.ResolvedReference{
				Identity: ref.Artifact.Identity().String(),
				Data:     data,
			})
		}
		return nil
	}

	if err := collect(snap); err != nil {
		return nil, err
	}
	return resolved, nil
}
