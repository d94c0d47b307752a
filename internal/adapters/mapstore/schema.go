package mapstore

// MapFile represents the structure of a building map file.
type MapFile struct {
	// Building optionally repeats the building id. When set it must match
	// the file name.
	Building string     `yaml:"building"`
	Levels   []LevelDTO `yaml:"levels"`
	Ramps    []RampDTO  `yaml:"ramps"`
	Slots    []SlotDTO  `yaml:"slots"`
}

// LevelDTO is one level of the facility as legend rows.
type LevelDTO struct {
	Level int      `yaml:"level"`
	Grid  []string `yaml:"grid"`
}

// RampDTO declares a bidirectional cross-level connection.
type RampDTO struct {
	ID   string   `yaml:"id"`
	From CoordDTO `yaml:"from"`
	To   CoordDTO `yaml:"to"`
}

// SlotDTO assigns a caller-chosen id to a slot cell.
type SlotDTO struct {
	ID string   `yaml:"id"`
	At CoordDTO `yaml:"at"`
}

// CoordDTO addresses one grid position.
type CoordDTO struct {
	Level int `yaml:"level"`
	Row   int `yaml:"row"`
	Col   int `yaml:"col"`
}
