package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sema/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sema/internal/adapters/memcache"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sema/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sema/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sema/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.CheckerNodeID,
			fs.OracleNodeID,
			fs.ResolverNodeID,
			memcache.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			checker, err := graft.Dep[ports.Checker](ctx)
			if err != nil {
				return nil, err
			}

			oracle, err := graft.Dep[ports.StalenessOracle](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.ReferenceResolver](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.CheckCache](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(checker, oracle, resolver, cache, tracer), nil
		},
	})
}
