package ports

import (
	"io"

	"github.com/parknav/parknav/internal/core/domain"
)

// LevelSummary is the inspect view of one parking level. Grid holds the
// legend rows of the level layout when the caller asked for them.
type LevelSummary struct {
	Level int
	Rows  int
	Cols  int
	Grid  []string
}

// FacilitySummary is the inspect view of one building. Levels are sorted
// ascending; id lists are sorted lexicographically.
type FacilitySummary struct {
	Building    string
	Version     int64
	Levels      []LevelSummary
	CellCounts  map[domain.CellKind]int
	SlotIDs     []string
	EntranceIDs []string
	ExitIDs     []string
	RampLinks   []domain.RampLink
}

// Renderer writes computed results for human or machine consumption.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// RenderRoute writes a computed route with its emission estimate.
	RenderRoute(w io.Writer, result *domain.RouteResult) error

	// RenderSummary writes a facility overview.
	RenderSummary(w io.Writer, summary *FacilitySummary) error
}
