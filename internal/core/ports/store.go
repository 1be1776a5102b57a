package ports

import (
	"context"

	"go.trai.ch/inso/internal/core/domain"
)

// StoreLoader defines the interface for loading the data store snapshot.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StoreLoader interface {
	// Load reads every record of the data store located by opts.
	// The returned database is never mutated by callers.
	Load(ctx context.Context, opts domain.StoreOptions) (*domain.Database, error)
}
