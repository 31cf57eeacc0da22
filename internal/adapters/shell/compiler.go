package shell

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/sema/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler by invoking an external compiler process.
type Compiler struct {
	command []string
	logger  ports.Logger
}

// NewCompiler creates a Compiler that invokes the given argv.
func NewCompiler(command []string, logger ports.Logger) *Compiler {
	return &Compiler{
		command: command,
		logger:  logger,
	}
}

// Compile compiles sourceFile to a binary at outputPath.
//
// The compiler writes to a uniquely named temp file in the output directory
// which is renamed over outputPath only on success. A failed compile removes
// the temp file and leaves outputPath untouched, so a failure never leaves a
// stale or partial binary masquerading as current.
func (c *Compiler) Compile(ctx context.Context, sourceFile, outputPath string, flags []string) error {
	if len(c.command) == 0 {
		return zerr.Wrap(domain.ErrCompilationFailed, "no compiler command configured")
	}

	dir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(dir, filepath.Base(outputPath)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create compiler temp output"), "dir", dir)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close compiler temp output")
	}

	args := make([]string, 0, len(c.command)-1+len(flags)+3)
	args = append(args, c.command[1:]...)
	args = append(args, flags...)
	args = append(args, "-o", tmpPath, sourceFile)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command[0], args...) //nolint:gosec // Command is operator-configured
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmpPath)

		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		for line := range strings.Lines(stderr.String()) {
			c.logger.Warn(strings.TrimRight(line, "\n"))
		}
		return zerr.With(zerr.With(domain.ErrCompilationFailed, "exit_code", exitCode), "source", sourceFile)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, "failed to move compiled artifact into place"), "path", outputPath)
	}

	return nil
}
