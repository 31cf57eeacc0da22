// Package app implements the application layer for sema.
package app

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/sema/internal/core/ports"
	"go.trai.ch/sema/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader   ports.ConfigLoader
	orch     *orchestrator.Orchestrator
	cache    ports.CheckCache
	compiler ports.Compiler
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	orch *orchestrator.Orchestrator,
	cache ports.CheckCache,
	compiler ports.Compiler,
	logger ports.Logger,
) *App {
	return &App{
		loader:   loader,
		orch:     orch,
		cache:    cache,
		compiler: compiler,
		logger:   logger,
	}
}

// RunOptions configures a check run.
type RunOptions struct {
	// NoCache drops all cached results before checking, forcing every
	// project to be rechecked and releasing buffers held by prior results.
	NoCache bool
}

// Run checks every source file of the named projects.
//
// Files are checked concurrently, bounded by the CPU count; the orchestrator
// and cache are safe under this concurrency. Run returns
// domain.ErrDiagnosticsReported if checking completed but found problems,
// or a wrapped hard error if any check could not complete.
func (a *App) Run(ctx context.Context, projectNames []string, opts RunOptions) error {
	if len(projectNames) == 0 {
		return domain.ErrNoProjectsSpecified
	}

	ws, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if opts.NoCache {
		a.cache.ClearAll()
	}

	snaps := make([]*domain.ProjectSnapshot, 0, len(projectNames))
	for _, name := range projectNames {
		snap, ok := ws.Snapshot(name)
		if !ok {
			return zerr.With(domain.ErrProjectNotFound, "project", name)
		}
		snaps = append(snaps, snap)
	}

	var diagCount atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, snap := range snaps {
		for _, sf := range snap.SourceFiles {
			g.Go(func() error {
				res, err := a.orch.CheckFile(gctx, sf.Path.String(), snap)
				if err != nil {
					return err
				}
				diagCount.Add(int64(len(res.Diagnostics)))
				a.reportDiagnostics(res)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return zerr.Wrap(err, "check execution failed")
	}

	if n := diagCount.Load(); n > 0 {
		return zerr.With(domain.ErrDiagnosticsReported, "count", int(n))
	}
	return nil
}

// Compile drives the compile-then-reference workflow: it compiles a source
// file to a binary artifact that projects can reference from disk.
func (a *App) Compile(ctx context.Context, sourceFile, outputPath string, flags []string) error {
	if err := a.compiler.Compile(ctx, sourceFile, outputPath, flags); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("compiled %s -> %s", sourceFile, outputPath))
	return nil
}

func (a *App) reportDiagnostics(res *domain.CheckResult) {
	for _, d := range res.Diagnostics {
		msg := fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Severity, d.Message)
		if d.Severity == domain.SeverityError {
			a.logger.Error(zerr.New(msg))
		} else {
			a.logger.Warn(msg)
		}
	}
}
