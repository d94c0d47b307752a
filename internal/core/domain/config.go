package domain

import "go.trai.ch/zerr"

// StorageDriver selects the map source backing.
type StorageDriver string

const (
	// DriverFile serves maps from YAML files in a local directory.
	DriverFile StorageDriver = "file"
	// DriverPostgres serves maps from a shared Postgres database.
	DriverPostgres StorageDriver = "postgres"
)

// Default engine parameters. All of them can be overridden in parknav.yaml.
const (
	// DefaultRampCost is the weight of one ramp traversal. It must exceed
	// the flat move weight of 1 so routes stay on one level when possible.
	DefaultRampCost = 3.0

	// DefaultEmissionFactor is the assumed regional average vehicle emission
	// rate in grams of CO2 per meter driven.
	DefaultEmissionFactor = 0.194

	// DefaultRouteCacheSize bounds the number of memoized routes.
	DefaultRouteCacheSize = 1024

	// DefaultGraphCacheSize bounds the number of built graphs kept across
	// facility versions.
	DefaultGraphCacheSize = 16

	// FlatEdgeWeight is the cost of one within-level move between adjacent
	// cells, in grid units.
	FlatEdgeWeight = 1.0
)

// StorageConfig selects and parameterizes the map source.
type StorageConfig struct {
	Driver StorageDriver
	DSN    string
}

// RoutingConfig holds graph construction parameters.
type RoutingConfig struct {
	RampCost float64
}

// CacheConfig bounds the in-process caches.
type CacheConfig struct {
	Routes int
	Graphs int
}

// EmissionConfig holds the emission estimation parameters.
type EmissionConfig struct {
	FactorGramsPerMeter float64
}

// LogConfig selects the log output format.
type LogConfig struct {
	Format string // "pretty" or "json"
}

// Config is the resolved engine configuration.
type Config struct {
	MapsDir  string
	Storage  StorageConfig
	Routing  RoutingConfig
	Cache    CacheConfig
	Emission EmissionConfig
	Log      LogConfig
}

// DefaultConfig returns the configuration used when no parknav.yaml is
// present.
func DefaultConfig() *Config {
	return &Config{
		MapsDir:  DefaultMapsDirName,
		Storage:  StorageConfig{Driver: DriverFile},
		Routing:  RoutingConfig{RampCost: DefaultRampCost},
		Cache:    CacheConfig{Routes: DefaultRouteCacheSize, Graphs: DefaultGraphCacheSize},
		Emission: EmissionConfig{FactorGramsPerMeter: DefaultEmissionFactor},
		Log:      LogConfig{Format: "pretty"},
	}
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return zerr.With(ErrUnknownStorageDriver, "driver", string(c.Storage.Driver))
	}

	if c.Routing.RampCost <= FlatEdgeWeight {
		return zerr.With(ErrInvalidRampCost, "ramp_cost", c.Routing.RampCost)
	}
	if c.Cache.Routes <= 0 {
		return zerr.With(ErrInvalidCacheCapacity, "routes", c.Cache.Routes)
	}
	if c.Cache.Graphs <= 0 {
		return zerr.With(ErrInvalidCacheCapacity, "graphs", c.Cache.Graphs)
	}
	if c.Emission.FactorGramsPerMeter < 0 {
		return zerr.With(ErrInvalidEmissionFactor, "factor", c.Emission.FactorGramsPerMeter)
	}
	return nil
}
