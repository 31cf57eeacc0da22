package shell

import (
	"context"
	"os"
	"strings"

	"github.com/grindlemire/graft"
	"go.trai.ch/sema/internal/adapters/logger"
	"go.trai.ch/sema/internal/core/ports"
)

const (
	// CheckerNodeID is the unique identifier for the external checker node.
	CheckerNodeID graft.ID = "adapter.checker"
	// CompilerNodeID is the unique identifier for the external compiler node.
	CompilerNodeID graft.ID = "adapter.compiler"
)

// commandFromEnv reads a space-separated argv from the environment,
// falling back to the given default binary name.
func commandFromEnv(key, fallback string) []string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return strings.Fields(v)
	}
	return []string{fallback}
}

func init() {
	graft.Register(graft.Node[ports.Checker]{
		ID:        CheckerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Checker, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewChecker(commandFromEnv("SEMA_CHECKER", "semacheck"), log), nil
		},
	})

	graft.Register(graft.Node[ports.Compiler]{
		ID:        CompilerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Compiler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCompiler(commandFromEnv("SEMA_COMPILER", "semacompile"), log), nil
		},
	})
}
