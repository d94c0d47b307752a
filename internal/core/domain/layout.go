package domain

import "path/filepath"

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "parknav.yaml"

	// DefaultMapsDirName is the directory holding the per-building map files
	// when the file storage driver is used.
	DefaultMapsDirName = "maps"

	// MapFileExt is the extension of building map files.
	MapFileExt = ".yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// MapFilePath returns the map file path for a building inside a maps
// directory.
func MapFilePath(mapsDir, building string) string {
	return filepath.Join(mapsDir, building+MapFileExt)
}

// BuildingFromMapFile derives the building id from a map file path, or ""
// when the file is not a map file.
func BuildingFromMapFile(path string) string {
	base := filepath.Base(path)
	if filepath.Ext(base) != MapFileExt {
		return ""
	}
	return base[:len(base)-len(MapFileExt)]
}
