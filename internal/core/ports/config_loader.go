package ports

import "github.com/parknav/parknav/internal/core/domain"

// ConfigLoader resolves the engine configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads parknav.yaml, walking up from the given working directory.
	// When no configuration file exists, the documented defaults are
	// returned instead of an error.
	Load(cwd string) (*domain.Config, error)

	// DiscoverRoot walks up from cwd to the directory containing
	// parknav.yaml, or returns cwd itself when there is none.
	DiscoverRoot(cwd string) (string, error)
}
