package domain

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"

	"go.trai.ch/zerr"
)

// RampLink declares a bidirectional cross-level connection between two ramp
// cells of one building.
type RampLink struct {
	ID   string
	From Coord
	To   Coord
}

// SlotName assigns a caller-chosen id to a slot cell. Slot cells without a
// name receive a positional id during registry construction.
type SlotName struct {
	ID string
	At Coord
}

// ParkingMap is the immutable cell grid of one facility level plus the
// registries derived from it. Instances are built once by NewParkingMap and
// never mutated afterwards; the engine only reads them.
type ParkingMap struct {
	building string
	level    int
	rows     int
	cols     int
	version  int64

	cells     []Cell // row-major, rows*cols entries
	slots     map[string]Cell
	entrances map[string]Cell
	exits     map[string]Cell
	ramps     map[string]RampLink // links whose From cell is on this level
}

// NewParkingMap validates the raw cell list of one level and derives the
// slot, entrance and exit registries in a single pass.
//
// It fails with ErrMalformedMap when the declared rows*cols does not match
// the number of cells, when a cell lies outside the declared bounds or on a
// foreign level, when two cells share coordinates, or when registry ids
// collide.
func NewParkingMap(building string, level, rows, cols int, cells []Cell, names []SlotName) (*ParkingMap, error) {
	if rows <= 0 || cols <= 0 {
		err := zerr.With(ErrCellOutOfBounds, "rows", rows)
		return nil, MalformedMap(building, level, zerr.With(err, "cols", cols))
	}
	if len(cells) != rows*cols {
		err := zerr.With(zerr.New("cell count does not match declared dimensions"), "declared", rows*cols)
		return nil, MalformedMap(building, level, zerr.With(err, "supplied", len(cells)))
	}

	m := &ParkingMap{
		building:  building,
		level:     level,
		rows:      rows,
		cols:      cols,
		cells:     make([]Cell, rows*cols),
		slots:     make(map[string]Cell),
		entrances: make(map[string]Cell),
		exits:     make(map[string]Cell),
		ramps:     make(map[string]RampLink),
	}

	named := make(map[Coord]string, len(names))
	for _, n := range names {
		named[n.At] = n.ID
	}

	seen := make([]bool, rows*cols)
	for _, c := range cells {
		if c.Coord.Level != level {
			return nil, MalformedMap(building, level, zerr.With(ErrCellOutOfBounds, "cell", c.Coord.String()))
		}
		if !m.InBounds(c.Coord.Row, c.Coord.Col) {
			return nil, MalformedMap(building, level, zerr.With(ErrCellOutOfBounds, "cell", c.Coord.String()))
		}
		idx := c.Coord.Row*cols + c.Coord.Col
		if seen[idx] {
			return nil, MalformedMap(building, level, zerr.With(ErrDuplicateCell, "cell", c.Coord.String()))
		}
		seen[idx] = true
		m.cells[idx] = c

		if err := m.register(c, named); err != nil {
			return nil, MalformedMap(building, level, err)
		}
	}

	// Every slot name must point at an actual slot cell.
	for at, id := range named {
		cell, ok := m.CellAt(at.Row, at.Col)
		if !ok || cell.Kind != KindSlot || at.Level != level {
			err := zerr.With(ErrSlotNameMismatch, "id", id)
			return nil, MalformedMap(building, level, zerr.With(err, "at", at.String()))
		}
	}

	return m, nil
}

// register adds a cell to the registry matching its kind.
func (m *ParkingMap) register(c Cell, named map[Coord]string) error {
	switch c.Kind {
	case KindSlot:
		id, ok := named[c.Coord]
		if !ok {
			id = positionalID("s", c.Coord)
		}
		if _, dup := m.slots[id]; dup {
			return zerr.With(ErrDuplicateID, "slot", id)
		}
		m.slots[id] = c
	case KindEntrance:
		id := positionalID("e", c.Coord)
		if _, dup := m.entrances[id]; dup {
			return zerr.With(ErrDuplicateID, "entrance", id)
		}
		m.entrances[id] = c
	case KindExit:
		id := positionalID("x", c.Coord)
		if _, dup := m.exits[id]; dup {
			return zerr.With(ErrDuplicateID, "exit", id)
		}
		m.exits[id] = c
	case KindEmpty, KindWall, KindCorridor, KindRamp:
		// Ramp registries are filled during facility assembly, once the
		// cross-level links are known.
	}
	return nil
}

// Building returns the owning building id.
func (m *ParkingMap) Building() string { return m.building }

// Level returns the level number.
func (m *ParkingMap) Level() int { return m.level }

// Rows returns the declared row count.
func (m *ParkingMap) Rows() int { return m.rows }

// Cols returns the declared column count.
func (m *ParkingMap) Cols() int { return m.cols }

// Version returns the facility version this level snapshot belongs to.
func (m *ParkingMap) Version() int64 { return m.version }

// InBounds reports whether row/col lie inside the declared grid.
func (m *ParkingMap) InBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// CellAt returns the cell at row/col, or false when out of bounds.
func (m *ParkingMap) CellAt(row, col int) (Cell, bool) {
	if !m.InBounds(row, col) {
		return Cell{}, false
	}
	return m.cells[row*m.cols+col], true
}

// Cells yields every cell in row-major order.
func (m *ParkingMap) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range m.cells {
			if !yield(c) {
				return
			}
		}
	}
}

// Slot looks up a slot cell by id.
func (m *ParkingMap) Slot(id string) (Cell, bool) {
	c, ok := m.slots[id]
	return c, ok
}

// Entrance looks up an entrance cell by id.
func (m *ParkingMap) Entrance(id string) (Cell, bool) {
	c, ok := m.entrances[id]
	return c, ok
}

// Exit looks up an exit cell by id.
func (m *ParkingMap) Exit(id string) (Cell, bool) {
	c, ok := m.exits[id]
	return c, ok
}

// Ramp looks up a ramp link departing from this level by id.
func (m *ParkingMap) Ramp(id string) (RampLink, bool) {
	l, ok := m.ramps[id]
	return l, ok
}

// SlotIDs returns all slot ids in sorted order.
func (m *ParkingMap) SlotIDs() []string { return sortedKeys(m.slots) }

// EntranceIDs returns all entrance ids in sorted order.
func (m *ParkingMap) EntranceIDs() []string { return sortedKeys(m.entrances) }

// ExitIDs returns all exit ids in sorted order.
func (m *ParkingMap) ExitIDs() []string { return sortedKeys(m.exits) }

// CountByKind tallies the cells of the level per classification.
func (m *ParkingMap) CountByKind() map[CellKind]int {
	counts := make(map[CellKind]int)
	for _, c := range m.cells {
		counts[c.Kind]++
	}
	return counts
}

// Facility is the read-only snapshot of one building handed to the engine:
// all levels plus the ramp links between them, stamped with the version the
// snapshot was loaded at.
type Facility struct {
	building string
	version  int64
	levels   []*ParkingMap // sorted by level number
	byLevel  map[int]*ParkingMap
	links    []RampLink // sorted by id
}

// NewFacility assembles a facility snapshot from its level maps and ramp
// links and validates the cross-level geometry: every link endpoint must be
// a ramp cell on an existing level, every ramp cell must belong to exactly
// one link, link ids must not collide, and level numbers must be unique.
func NewFacility(building string, version int64, levels []*ParkingMap, links []RampLink) (*Facility, error) {
	f := &Facility{
		building: building,
		version:  version,
		levels:   make([]*ParkingMap, len(levels)),
		byLevel:  make(map[int]*ParkingMap, len(levels)),
	}

	copy(f.levels, levels)
	sort.Slice(f.levels, func(i, j int) bool { return f.levels[i].level < f.levels[j].level })

	for _, m := range f.levels {
		if _, dup := f.byLevel[m.level]; dup {
			return nil, MalformedMap(building, m.level, zerr.With(zerr.New("level declared twice"), "level", m.level))
		}
		m.version = version
		f.byLevel[m.level] = m
	}

	linked := make(map[Coord]bool)
	ids := make(map[string]bool, len(links))
	for _, l := range links {
		if ids[l.ID] {
			return nil, MalformedMap(building, l.From.Level, zerr.With(ErrDuplicateID, "ramp", l.ID))
		}
		ids[l.ID] = true

		for _, end := range []Coord{l.From, l.To} {
			cell, ok := f.CellAt(end)
			if !ok || cell.Kind != KindRamp || linked[end] {
				err := zerr.With(ErrRampUnlinked, "ramp", l.ID)
				return nil, MalformedMap(building, end.Level, zerr.With(err, "at", end.String()))
			}
			linked[end] = true
		}

		if m, ok := f.byLevel[l.From.Level]; ok {
			m.ramps[l.ID] = l
		}
		f.links = append(f.links, l)
	}

	// Ramp cells not referenced by any link are dead ends by mistake.
	for _, m := range f.levels {
		for _, c := range m.cells {
			if c.Kind == KindRamp && !linked[c.Coord] {
				return nil, MalformedMap(building, m.level, zerr.With(ErrRampUnlinked, "at", c.Coord.String()))
			}
		}
	}

	slices.SortFunc(f.links, func(a, b RampLink) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	return f, nil
}

// Building returns the building id.
func (f *Facility) Building() string { return f.building }

// Version returns the snapshot version.
func (f *Facility) Version() int64 { return f.version }

// Levels returns the level maps sorted by level number.
func (f *Facility) Levels() []*ParkingMap { return f.levels }

// LevelAt returns the map of the given level number.
func (f *Facility) LevelAt(level int) (*ParkingMap, bool) {
	m, ok := f.byLevel[level]
	return m, ok
}

// CellAt resolves a coordinate across levels.
func (f *Facility) CellAt(at Coord) (Cell, bool) {
	m, ok := f.byLevel[at.Level]
	if !ok {
		return Cell{}, false
	}
	return m.CellAt(at.Row, at.Col)
}

// RampLinks returns all cross-level links sorted by id.
func (f *Facility) RampLinks() []RampLink { return f.links }

// TraversableCount returns the number of non-wall cells across all levels.
func (f *Facility) TraversableCount() int {
	n := 0
	for _, m := range f.levels {
		for _, c := range m.cells {
			if c.Traversable() {
				n++
			}
		}
	}
	return n
}

func positionalID(prefix string, at Coord) string {
	return fmt.Sprintf("%s%d-%d-%d", prefix, at.Level, at.Row, at.Col)
}

// MalformedMap tags a map content failure with the taxonomy sentinel so
// callers can match errors.Is(err, ErrMalformedMap) while the cause chain
// keeps its detail.
func MalformedMap(building string, level int, cause error) error {
	cause = zerr.With(cause, "building", building)
	cause = zerr.With(cause, "level", level)
	return errors.Join(ErrMalformedMap, cause)
}

func sortedKeys(m map[string]Cell) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
