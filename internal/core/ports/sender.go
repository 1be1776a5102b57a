package ports

import (
	"context"

	"go.trai.ch/inso/internal/core/domain"
)

// SenderFactory builds the request-sending callback handed to tests.
//
//go:generate go run go.uber.org/mock/mockgen -source=sender.go -destination=mocks/mock_sender.go -package=mocks
type SenderFactory interface {
	// NewSender binds a callback to the environment with the given id.
	// The callback only reads db and may be called concurrently.
	NewSender(ctx context.Context, environmentID string, db *domain.Database) (domain.SendRequestFunc, error)
}
