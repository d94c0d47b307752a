package config

// File represents the structure of the parknav.yaml configuration file.
// Pointer fields distinguish settings that are absent, and therefore keep
// their defaults, from settings explicitly set to a zero value.
type File struct {
	Version  string       `yaml:"version"`
	MapsDir  *string      `yaml:"maps_dir"`
	Storage  *StorageDTO  `yaml:"storage"`
	Routing  *RoutingDTO  `yaml:"routing"`
	Cache    *CacheDTO    `yaml:"cache"`
	Emission *EmissionDTO `yaml:"emission"`
	Log      *LogDTO      `yaml:"log"`
}

// StorageDTO selects and parameterizes the map source backing.
type StorageDTO struct {
	Driver *string `yaml:"driver"`
	DSN    *string `yaml:"dsn"`
}

// RoutingDTO holds graph construction parameters.
type RoutingDTO struct {
	RampCost *float64 `yaml:"ramp_cost"`
}

// CacheDTO bounds the in-process caches.
type CacheDTO struct {
	Routes *int `yaml:"routes"`
	Graphs *int `yaml:"graphs"`
}

// EmissionDTO holds the emission estimation parameters.
type EmissionDTO struct {
	FactorGramsPerMeter *float64 `yaml:"factor_grams_per_meter"`
}

// LogDTO selects the log output format.
type LogDTO struct {
	Format *string `yaml:"format"`
}
