// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/sema/internal/core/domain"
)

// Checker defines the interface to the external semantic checker.
//
//go:generate go run go.uber.org/mock/mockgen -source=checker.go -destination=mocks/mock_checker.go -package=mocks
type Checker interface {
	// CheckFile checks one file against the resolved project options and
	// reference bytes. It returns the ordered diagnostics (possibly empty),
	// or an error wrapping domain.ErrCheckAborted if the checker could not
	// complete. An abort is never reported as an empty-diagnostics success.
	CheckFile(ctx context.Context, file string, options []string, refs []domain.ResolvedReference) (*domain.CheckResult, error)
}
