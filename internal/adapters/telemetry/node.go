package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/sema/internal/adapters/telemetry/progrock"
	"go.trai.ch/sema/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry adapter node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if os.Getenv("SEMA_NO_TELEMETRY") != "" {
				return NewNoOp(), nil
			}
			return progrock.New(), nil
		},
	})
}
