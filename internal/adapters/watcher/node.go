package watcher

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/parknav/parknav/internal/adapters/logger"
	"github.com/parknav/parknav/internal/core/ports"
)

// NodeID is the unique identifier for the map watcher Graft node.
const NodeID graft.ID = "adapter.watcher"

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewWatcher(log)
		},
	})
}
