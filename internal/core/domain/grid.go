package domain

import (
	"go.trai.ch/zerr"
)

// Legend runes of the textual grid representation, shared by map files,
// database payloads and grid rendering.
const (
	RuneEmpty    = '.'
	RuneWall     = '#'
	RuneCorridor = '+'
	RuneSlot     = 's'
	RuneEntrance = 'e'
	RuneExit     = 'x'
	RuneRamp     = 'r'
)

// ParseGridRune maps a legend rune to its cell kind.
func ParseGridRune(r rune) (CellKind, error) {
	switch r {
	case RuneEmpty:
		return KindEmpty, nil
	case RuneWall:
		return KindWall, nil
	case RuneCorridor:
		return KindCorridor, nil
	case RuneSlot:
		return KindSlot, nil
	case RuneEntrance:
		return KindEntrance, nil
	case RuneExit:
		return KindExit, nil
	case RuneRamp:
		return KindRamp, nil
	default:
		return 0, zerr.With(ErrUnknownCellKind, "rune", string(r))
	}
}

// GridRune returns the legend rune of the kind.
func (k CellKind) GridRune() rune {
	switch k {
	case KindEmpty:
		return RuneEmpty
	case KindWall:
		return RuneWall
	case KindCorridor:
		return RuneCorridor
	case KindSlot:
		return RuneSlot
	case KindEntrance:
		return RuneEntrance
	case KindExit:
		return RuneExit
	case KindRamp:
		return RuneRamp
	}
	return '?'
}

// ParseGrid turns the legend rows of one level into its cell list in
// row-major order. Rows must be non-empty and rectangular.
func ParseGrid(level int, rows []string) ([]Cell, error) {
	if len(rows) == 0 || len([]rune(rows[0])) == 0 {
		return nil, zerr.With(zerr.New("grid has no rows"), "level", level)
	}

	cols := len([]rune(rows[0]))
	cells := make([]Cell, 0, len(rows)*cols)

	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != cols {
			err := zerr.With(zerr.New("grid rows must have equal length"), "row", r)
			err = zerr.With(err, "want", cols)
			return nil, zerr.With(err, "got", len(runes))
		}

		for c, ch := range runes {
			kind, err := ParseGridRune(ch)
			if err != nil {
				err = zerr.With(err, "row", r)
				return nil, zerr.With(err, "col", c)
			}
			cells = append(cells, Cell{
				Coord: Coord{Level: level, Row: r, Col: c},
				Kind:  kind,
			})
		}
	}

	return cells, nil
}

// RenderGrid returns the legend rows of a level map.
func RenderGrid(m *ParkingMap) []string {
	rows := make([]string, m.Rows())
	line := make([]rune, m.Cols())
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			cell, _ := m.CellAt(r, c)
			line[c] = cell.Kind.GridRune()
		}
		rows[r] = string(line)
	}
	return rows
}
