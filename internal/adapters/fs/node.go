package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sema/internal/core/ports"
)

const (
	// OracleNodeID is the unique identifier for the staleness oracle node.
	OracleNodeID graft.ID = "adapter.fs.oracle"
	// ResolverNodeID is the unique identifier for the reference resolver node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
)

func init() {
	// The oracle implements both ports; register it under each so dependents
	// can ask for exactly the capability they need.
	graft.Register(graft.Node[ports.StalenessOracle]{
		ID:        OracleNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StalenessOracle, error) {
			return NewOracle(), nil
		},
	})

	graft.Register(graft.Node[ports.ReferenceResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ReferenceResolver, error) {
			return NewOracle(), nil
		},
	})
}
