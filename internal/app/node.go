package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/inso/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/inso/internal/adapters/datastore" //nolint:depguard // Wired in app layer
	"go.trai.ch/inso/internal/adapters/generator" //nolint:depguard // Wired in app layer
	"go.trai.ch/inso/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/inso/internal/adapters/sender"    //nolint:depguard // Wired in app layer
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/inso/internal/engine/dispatcher"
	"go.trai.ch/inso/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			datastore.NodeID,
			resolver.NodeID,
			generator.NodeID,
			sender.NodeID,
			dispatcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	storeLoader, err := graft.Dep[ports.StoreLoader](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	gen, err := graft.Dep[ports.Generator](ctx)
	if err != nil {
		return nil, err
	}

	senders, err := graft.Dep[ports.SenderFactory](ctx)
	if err != nil {
		return nil, err
	}

	disp, err := graft.Dep[*dispatcher.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, storeLoader, res, gen, senders, disp, log), nil
}
