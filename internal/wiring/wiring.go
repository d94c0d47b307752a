// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/parknav/parknav/internal/adapters/config"
	_ "github.com/parknav/parknav/internal/adapters/logger"
	_ "github.com/parknav/parknav/internal/adapters/telemetry"
	_ "github.com/parknav/parknav/internal/adapters/watcher"
	// Register the app node.
	_ "github.com/parknav/parknav/internal/app"
)
