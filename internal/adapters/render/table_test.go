package render_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/parknav/parknav/internal/adapters/render"
	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
)

func cellAt(level, row, col int, kind domain.CellKind) domain.Cell {
	return domain.Cell{Coord: domain.Coord{Level: level, Row: row, Col: col}, Kind: kind}
}

// routeAroundWall is a flat single-level detour: along the top row, then
// down the far column.
func routeAroundWall() *domain.RouteResult {
	cells := []domain.Cell{
		cellAt(0, 0, 0, domain.KindEntrance),
		cellAt(0, 0, 1, domain.KindCorridor),
		cellAt(0, 0, 2, domain.KindCorridor),
		cellAt(0, 0, 3, domain.KindCorridor),
		cellAt(0, 0, 4, domain.KindCorridor),
		cellAt(0, 1, 4, domain.KindCorridor),
		cellAt(0, 2, 4, domain.KindCorridor),
		cellAt(0, 3, 4, domain.KindCorridor),
		cellAt(0, 4, 4, domain.KindExit),
	}
	return &domain.RouteResult{
		Building: "B1",
		Version:  3,
		Route:    &domain.Route{Cells: cells, TotalDistance: 8, StepCount: 8},
		Emission: domain.EmissionResult{ActualDistance: 8, BaselineDistance: 5.7, CO2SavedGrams: 0},
	}
}

// routeOverRamp crosses one level boundary on the way to a slot.
func routeOverRamp() *domain.RouteResult {
	cells := []domain.Cell{
		cellAt(0, 0, 0, domain.KindEntrance),
		cellAt(0, 0, 1, domain.KindCorridor),
		cellAt(0, 1, 1, domain.KindRamp),
		cellAt(1, 1, 1, domain.KindRamp),
		cellAt(1, 1, 2, domain.KindCorridor),
		cellAt(1, 2, 2, domain.KindSlot),
	}
	return &domain.RouteResult{
		Building: "B2",
		Version:  1,
		Route:    &domain.Route{Cells: cells, TotalDistance: 7, StepCount: 5},
		Emission: domain.EmissionResult{ActualDistance: 7, BaselineDistance: 2.4, CO2SavedGrams: 0},
	}
}

// garageSummary covers every summary section including level sketches.
func garageSummary() *ports.FacilitySummary {
	return &ports.FacilitySummary{
		Building: "B7",
		Version:  2,
		Levels: []ports.LevelSummary{
			{Level: 0, Rows: 3, Cols: 3, Grid: []string{"e.+", "#.r", "s.+"}},
			{Level: 1, Rows: 3, Cols: 3, Grid: []string{"x.+", "..r", "s.."}},
		},
		CellCounts: map[domain.CellKind]int{
			domain.KindEmpty:    8,
			domain.KindWall:     1,
			domain.KindCorridor: 3,
			domain.KindSlot:     2,
			domain.KindEntrance: 1,
			domain.KindExit:     1,
			domain.KindRamp:     2,
		},
		SlotIDs:     []string{"A-01", "s1-2-0"},
		EntranceIDs: []string{"e0-0-0"},
		ExitIDs:     []string{"x1-0-0"},
		RampLinks: []domain.RampLink{
			{ID: "ramp-a", From: domain.Coord{Level: 0, Row: 1, Col: 2}, To: domain.Coord{Level: 1, Row: 1, Col: 2}},
		},
	}
}

// bareSummary is the degenerate one-cell facility with nothing in it.
func bareSummary() *ports.FacilitySummary {
	return &ports.FacilitySummary{
		Building:   "EMPTY",
		Version:    1,
		Levels:     []ports.LevelSummary{{Level: 0, Rows: 1, Cols: 1}},
		CellCounts: map[domain.CellKind]int{domain.KindEmpty: 1},
	}
}

func TestTableRenderer_RenderRoute_Flat(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r := render.NewTableRenderer()

	var buf bytes.Buffer
	require.NoError(t, r.RenderRoute(&buf, routeAroundWall()))

	g := goldie.New(t)
	g.Assert(t, "route_flat", buf.Bytes())
}

func TestTableRenderer_RenderRoute_Ramp(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r := render.NewTableRenderer()

	var buf bytes.Buffer
	require.NoError(t, r.RenderRoute(&buf, routeOverRamp()))

	g := goldie.New(t)
	g.Assert(t, "route_ramp", buf.Bytes())
}

func TestTableRenderer_RenderSummary(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r := render.NewTableRenderer()

	var buf bytes.Buffer
	require.NoError(t, r.RenderSummary(&buf, garageSummary()))

	g := goldie.New(t)
	g.Assert(t, "summary", buf.Bytes())
}

func TestTableRenderer_RenderSummary_Bare(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	r := render.NewTableRenderer()

	var buf bytes.Buffer
	require.NoError(t, r.RenderSummary(&buf, bareSummary()))

	g := goldie.New(t)
	g.Assert(t, "summary_bare", buf.Bytes())
}
