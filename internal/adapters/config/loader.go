// Package config provides the configuration loader for parknav.
package config

import (
	"fmt"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	fs     FileSystem
	logger ports.Logger
}

// NewLoader creates a new Loader reading from the local filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(NewOSFS(), logger)
}

// NewLoaderWithFS creates a new Loader reading from the given filesystem.
func NewLoaderWithFS(fsys FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// Load reads parknav.yaml, walking up from the given working directory.
// When no configuration file exists the documented defaults are returned.
// A relative maps directory is anchored at the directory holding the
// configuration file, or at cwd when there is none.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	configPath, found := l.findConfiguration(cwd)
	if !found {
		cfg.MapsDir = resolveMapsDir(cwd, cfg.MapsDir)
		return cfg, nil
	}

	var file File
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, err
	}

	applyFile(cfg, &file)
	cfg.MapsDir = resolveMapsDir(filepath.Dir(configPath), cfg.MapsDir)

	if cfg.Storage.Driver == domain.DriverFile && cfg.Storage.DSN != "" {
		l.logger.Warn(fmt.Sprintf("'storage.dsn' in %s has no effect with the file driver", domain.ConfigFileName))
	}

	if err := cfg.Validate(); err != nil {
		return nil, zerr.With(err, "config", configPath)
	}

	return cfg, nil
}

// DiscoverRoot walks up from cwd to the directory containing parknav.yaml.
// When there is none, cwd itself is the root.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, found := l.findConfiguration(cwd)
	if !found {
		return filepath.Clean(cwd), nil
	}
	return filepath.Dir(configPath), nil
}

func (l *Loader) findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := l.fs.Stat(configPath); err == nil {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", false
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target
// struct.
func (l *Loader) readAndUnmarshalYAML(configPath string, target *File) error {
	configFile, err := l.fs.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// applyFile overlays the settings present in the file onto the defaults.
func applyFile(cfg *domain.Config, file *File) {
	if file.MapsDir != nil {
		cfg.MapsDir = *file.MapsDir
	}
	if file.Storage != nil {
		if file.Storage.Driver != nil {
			cfg.Storage.Driver = domain.StorageDriver(*file.Storage.Driver)
		}
		if file.Storage.DSN != nil {
			cfg.Storage.DSN = *file.Storage.DSN
		}
	}
	if file.Routing != nil && file.Routing.RampCost != nil {
		cfg.Routing.RampCost = *file.Routing.RampCost
	}
	if file.Cache != nil {
		if file.Cache.Routes != nil {
			cfg.Cache.Routes = *file.Cache.Routes
		}
		if file.Cache.Graphs != nil {
			cfg.Cache.Graphs = *file.Cache.Graphs
		}
	}
	if file.Emission != nil && file.Emission.FactorGramsPerMeter != nil {
		cfg.Emission.FactorGramsPerMeter = *file.Emission.FactorGramsPerMeter
	}
	if file.Log != nil && file.Log.Format != nil {
		cfg.Log.Format = *file.Log.Format
	}
}

// resolveMapsDir resolves the maps directory against the given base
// directory. Absolute paths are used directly.
func resolveMapsDir(baseDir, mapsDir string) string {
	if filepath.IsAbs(mapsDir) {
		return filepath.Clean(mapsDir)
	}
	return filepath.Clean(filepath.Join(baseDir, mapsDir))
}
