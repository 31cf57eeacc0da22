// Package shell adapts the external checker and compiler processes.
package shell

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/sema/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Checker = (*Checker)(nil)

// Checker implements ports.Checker by invoking an external checker process.
//
// Resolved reference bytes are materialized into uniquely named temporary
// files and passed as --reference flags, since the checker runs in its own
// address space. The temp files live only for the duration of one check.
type Checker struct {
	command []string
	logger  ports.Logger
}

// NewChecker creates a Checker that invokes the given argv.
func NewChecker(command []string, logger ports.Logger) *Checker {
	return &Checker{
		command: command,
		logger:  logger,
	}
}

// CheckFile runs the external checker against file.
//
// Exit code 0 means the check completed; stdout lines are parsed as
// diagnostics and may be empty. Any other outcome is an abort wrapping
// domain.ErrCheckAborted; it is never reported as a clean result.
func (c *Checker) CheckFile(ctx context.Context, file string, options []string, refs []domain.ResolvedReference) (*domain.CheckResult, error) {
	if len(c.command) == 0 {
		return nil, zerr.Wrap(domain.ErrCheckAborted, "no checker command configured")
	}

	refPaths, cleanup, err := materializeReferences(refs)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := make([]string, 0, len(c.command)-1+len(options)+2*len(refPaths)+1)
	args = append(args, c.command[1:]...)
	args = append(args, options...)
	for _, p := range refPaths {
		args = append(args, "--reference", p)
	}
	args = append(args, file)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command[0], args...) //nolint:gosec // Command is operator-configured
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, zerr.Wrap(ctx.Err(), "check cancelled during checker execution")
		}

		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		for line := range strings.Lines(stderr.String()) {
			c.logger.Warn(strings.TrimRight(line, "\n"))
		}
		return nil, zerr.With(zerr.With(domain.ErrCheckAborted, "exit_code", exitCode), "file", file)
	}

	return &domain.CheckResult{
		Diagnostics: parseDiagnostics(stdout.String()),
	}, nil
}

// materializeReferences writes each resolved reference to a uniquely named
// temp file. The returned cleanup removes all of them.
func materializeReferences(refs []domain.ResolvedReference) ([]string, func(), error) {
	paths := make([]string, 0, len(refs))
	cleanup := func() {
		for _, p := range paths {
			_ = os.Remove(p)
		}
	}

	for _, ref := range refs {
		f, err := os.CreateTemp("", "sema-ref-*")
		if err != nil {
			cleanup()
			return nil, nil, zerr.Wrap(err, "failed to create reference temp file")
		}
		paths = append(paths, f.Name())

		if _, err := f.Write(ref.Data); err != nil {
			_ = f.Close()
			cleanup()
			return nil, nil, zerr.With(zerr.Wrap(err, "failed to write reference temp file"), "identity", ref.Identity)
		}
		if err := f.Close(); err != nil {
			cleanup()
			return nil, nil, zerr.Wrap(err, "failed to close reference temp file")
		}
	}

	return paths, cleanup, nil
}

// parseDiagnostics parses checker stdout. The expected line convention is
// "file:line:col: severity: message"; lines that do not match are kept as
// bare error diagnostics rather than dropped.
func parseDiagnostics(out string) []domain.Diagnostic {
	var diags []domain.Diagnostic

	for line := range strings.Lines(out) {
		line = strings.TrimRight(line, "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		d, ok := parseDiagnosticLine(line)
		if !ok {
			d = domain.Diagnostic{Severity: domain.SeverityError, Message: line}
		}
		diags = append(diags, d)
	}

	return diags
}

func parseDiagnosticLine(line string) (domain.Diagnostic, bool) {
	parts := strings.SplitN(line, ":", 5)
	if len(parts) != 5 {
		return domain.Diagnostic{}, false
	}

	lineNo, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.Diagnostic{}, false
	}
	colNo, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.Diagnostic{}, false
	}

	severity := domain.Severity(strings.TrimSpace(parts[3]))
	if severity != domain.SeverityError && severity != domain.SeverityWarning {
		return domain.Diagnostic{}, false
	}

	return domain.Diagnostic{
		File:     parts[0],
		Line:     lineNo,
		Column:   colNo,
		Severity: severity,
		Message:  strings.TrimSpace(parts[4]),
	}, true
}
