package memcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sema/internal/core/ports"
)

// NodeID is the unique identifier for the checking cache node.
const NodeID graft.ID = "adapter.check_cache"

func init() {
	graft.Register(graft.Node[ports.CheckCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CheckCache, error) {
			return New(), nil
		},
	})
}
