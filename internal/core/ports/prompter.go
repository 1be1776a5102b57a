package ports

import (
	"context"

	"go.trai.ch/inso/internal/core/domain"
)

// Prompter asks the user to pick records interactively.
// It must only be used when a terminal is available.
//
//go:generate go run go.uber.org/mock/mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// SelectSuites lets the user pick a workspace (all of its suites) or a single suite.
	SelectSuites(ctx context.Context, db *domain.Database) ([]domain.TestSuite, error)

	// SelectEnvironment lets the user pick one of the given environments.
	// It returns nil when candidates is empty.
	SelectEnvironment(ctx context.Context, candidates []domain.Environment) (*domain.Environment, error)
}
