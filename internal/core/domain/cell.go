// Package domain contains the core types of the parking navigation engine.
package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// CellKind classifies a single grid position of a parking level.
type CellKind uint8

const (
	// KindEmpty is open floor with no special role.
	KindEmpty CellKind = iota
	// KindWall is an impassable cell.
	KindWall
	// KindCorridor is a designated driving lane.
	KindCorridor
	// KindSlot is a parking slot. Slots are destinations, not obstacles;
	// occupancy never affects traversability.
	KindSlot
	// KindEntrance is a facility entry point.
	KindEntrance
	// KindExit is a facility exit point.
	KindExit
	// KindRamp is one end of a cross-level ramp link.
	KindRamp
)

var kindNames = [...]string{
	KindEmpty:    "empty",
	KindWall:     "wall",
	KindCorridor: "corridor",
	KindSlot:     "slot",
	KindEntrance: "entrance",
	KindExit:     "exit",
	KindRamp:     "ramp",
}

// String returns the lowercase name of the kind.
func (k CellKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseCellKind maps a kind name back to its CellKind value.
func ParseCellKind(s string) (CellKind, error) {
	for k, name := range kindNames {
		if s == name {
			return CellKind(k), nil //nolint:gosec // k is bounded by kindNames
		}
	}
	return 0, zerr.With(ErrUnknownCellKind, "kind", s)
}

// Traversable reports whether a vehicle may occupy the cell.
func (k CellKind) Traversable() bool {
	return k != KindWall
}

// Coord addresses one grid position of one level.
type Coord struct {
	Level int
	Row   int
	Col   int
}

// String renders the coordinate as "level/row/col".
func (c Coord) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Level, c.Row, c.Col)
}

// Cell is one classified grid position. Cells are immutable once a map
// snapshot has been loaded.
type Cell struct {
	Coord Coord
	Kind  CellKind
}

// Traversable reports whether a vehicle may occupy the cell.
func (c Cell) Traversable() bool {
	return c.Kind.Traversable()
}
