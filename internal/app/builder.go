package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/parknav/parknav/internal/adapters/config"
	"github.com/parknav/parknav/internal/adapters/logger"
	"github.com/parknav/parknav/internal/adapters/telemetry"
	"github.com/parknav/parknav/internal/adapters/watcher"
	"github.com/parknav/parknav/internal/core/ports"
)

// Components aggregates the resolved object graph handed to the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			watcher.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, log, watch, tracer),
				Logger: log,
			}, nil
		},
	})
}
