package ports

import "context"

// Compiler defines the interface to the external compile-to-binary step.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile compiles sourceFile to a binary artifact at outputPath.
	// On failure it returns an error wrapping domain.ErrCompilationFailed and
	// guarantees that no partially written output remains at outputPath.
	Compile(ctx context.Context, sourceFile, outputPath string, flags []string) error
}
