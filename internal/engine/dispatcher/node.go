package dispatcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/inso/internal/adapters/console"
	"go.trai.ch/inso/internal/adapters/logger"
	"go.trai.ch/inso/internal/adapters/shell"
	"go.trai.ch/inso/internal/core/ports"
)

// NodeID is the unique identifier for the dispatcher Graft node.
const NodeID graft.ID = "engine.dispatcher"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			console.SuppressorNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			runner, err := graft.Dep[ports.Runner](ctx)
			if err != nil {
				return nil, err
			}

			suppressor, err := graft.Dep[ports.OutputSuppressor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(runner, suppressor, log), nil
		},
	})
}
