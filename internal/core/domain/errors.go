package domain

import "go.trai.ch/zerr"

var (
	// ErrMapNotFound is returned when the map source has no data for a building.
	ErrMapNotFound = zerr.New("map not found")

	// ErrMalformedMap is returned when stored map data cannot be turned into a valid level.
	ErrMalformedMap = zerr.New("malformed map")

	// ErrInvalidNode is returned when a start or end coordinate is not a traversable graph node.
	ErrInvalidNode = zerr.New("coordinate is not a traversable node")

	// ErrNoPath is returned when start and end lie in disconnected regions of the graph.
	ErrNoPath = zerr.New("no path between start and end")

	// ErrUnknownCellKind is returned when a cell classification name is not recognized.
	ErrUnknownCellKind = zerr.New("unknown cell kind")

	// ErrDuplicateCell is returned when two cells of one level share coordinates.
	ErrDuplicateCell = zerr.New("duplicate cell coordinates")

	// ErrCellOutOfBounds is returned when a cell lies outside its level's declared dimensions.
	ErrCellOutOfBounds = zerr.New("cell outside declared bounds")

	// ErrDuplicateID is returned when a slot, entrance, exit or ramp id collides.
	ErrDuplicateID = zerr.New("duplicate registry id")

	// ErrSlotNameMismatch is returned when a declared slot name does not reference a slot cell.
	ErrSlotNameMismatch = zerr.New("slot name does not reference a slot cell")

	// ErrRampUnlinked is returned when a ramp cell has no declared link, or a link
	// references a cell that is not a ramp.
	ErrRampUnlinked = zerr.New("ramp cell and ramp link do not match")

	// ErrInvalidRampCost is returned when the configured ramp cost does not exceed
	// the flat edge weight.
	ErrInvalidRampCost = zerr.New("ramp cost must exceed the flat move cost")

	// ErrInvalidCacheCapacity is returned when a cache capacity is zero or negative.
	ErrInvalidCacheCapacity = zerr.New("cache capacity must be positive")

	// ErrInvalidEmissionFactor is returned when the emission factor is negative.
	ErrInvalidEmissionFactor = zerr.New("emission factor must not be negative")

	// ErrUnknownStorageDriver is returned when the configured storage driver is not supported.
	ErrUnknownStorageDriver = zerr.New("unknown storage driver, expected 'file' or 'postgres'")

	// ErrMissingDSN is returned when the postgres driver is selected without a DSN.
	ErrMissingDSN = zerr.New("postgres driver requires a dsn")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMapReadFailed is returned when a map file cannot be read.
	ErrMapReadFailed = zerr.New("failed to read map file")

	// ErrMapParseFailed is returned when a map file cannot be parsed.
	ErrMapParseFailed = zerr.New("failed to parse map file")

	// ErrStoreQueryFailed is returned when a map storage query fails.
	ErrStoreQueryFailed = zerr.New("map storage query failed")

	// ErrStoreDecodeFailed is returned when stored map payloads cannot be decoded.
	ErrStoreDecodeFailed = zerr.New("failed to decode stored map payload")

	// ErrWatcherStartFailed is returned when the map directory watcher cannot start.
	ErrWatcherStartFailed = zerr.New("failed to start map watcher")

	// ErrRouteFailed is returned by the CLI when route computation did not produce a result.
	ErrRouteFailed = zerr.New("route computation failed")
)
