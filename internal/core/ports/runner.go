// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/inso/internal/core/domain"
)

// Runner defines the interface for executing a generated test file.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes every test in file and reports whether all of them passed.
	//
	// It returns domain.ErrInvalidReporter when cfg.Reporter cannot be loaded.
	// Test failures are not errors; they are reported as false.
	Run(ctx context.Context, file domain.TestFile, cfg domain.RunConfig) (bool, error)
}
