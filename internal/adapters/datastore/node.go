package datastore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/inso/internal/adapters/logger"
	"go.trai.ch/inso/internal/core/ports"
)

// NodeID is the unique identifier for the store loader Graft node.
const NodeID graft.ID = "adapter.store_loader"

func init() {
	graft.Register(graft.Node[ports.StoreLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.StoreLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
