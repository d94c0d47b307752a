package render

import (
	"encoding/json"
	"io"

	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
)

var _ ports.Renderer = (*JSONRenderer)(nil)

// JSONRenderer renders routes and facility summaries for machines.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type routePayload struct {
	Building string          `json:"building"`
	Version  int64           `json:"version"`
	Start    string          `json:"start"`
	End      string          `json:"end"`
	Distance float64         `json:"distance_m"`
	Moves    int             `json:"moves"`
	Path     []string        `json:"path"`
	Emission emissionPayload `json:"emission"`
}

type emissionPayload struct {
	Actual   float64 `json:"actual_m"`
	Baseline float64 `json:"baseline_m"`
	Saved    float64 `json:"saved_g"`
}

type summaryPayload struct {
	Building  string         `json:"building"`
	Version   int64          `json:"version"`
	Levels    []levelPayload `json:"levels"`
	Slots     []string       `json:"slots"`
	Entrances []string       `json:"entrances"`
	Exits     []string       `json:"exits"`
	Ramps     []rampPayload  `json:"ramps"`
	Cells     map[string]int `json:"cells"`
}

type levelPayload struct {
	Level int      `json:"level"`
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Grid  []string `json:"grid,omitempty"`
}

type rampPayload struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
}

// RenderRoute writes a computed route with its emission estimate.
func (r *JSONRenderer) RenderRoute(w io.Writer, result *domain.RouteResult) error {
	route := result.Route
	path := make([]string, 0, len(route.Cells))
	for _, cell := range route.Cells {
		path = append(path, cell.Coord.String())
	}

	payload := routePayload{
		Building: result.Building,
		Version:  result.Version,
		Start:    route.Start().Coord.String(),
		End:      route.End().Coord.String(),
		Distance: route.TotalDistance,
		Moves:    route.StepCount,
		Path:     path,
		Emission: emissionPayload{
			Actual:   result.Emission.ActualDistance,
			Baseline: result.Emission.BaselineDistance,
			Saved:    result.Emission.CO2SavedGrams,
		},
	}
	return encode(w, payload)
}

// RenderSummary writes a facility overview.
func (r *JSONRenderer) RenderSummary(w io.Writer, summary *ports.FacilitySummary) error {
	levels := make([]levelPayload, 0, len(summary.Levels))
	for _, level := range summary.Levels {
		levels = append(levels, levelPayload{
			Level: level.Level,
			Rows:  level.Rows,
			Cols:  level.Cols,
			Grid:  level.Grid,
		})
	}

	ramps := make([]rampPayload, 0, len(summary.RampLinks))
	for _, link := range summary.RampLinks {
		ramps = append(ramps, rampPayload{
			ID:   link.ID,
			From: link.From.String(),
			To:   link.To.String(),
		})
	}

	cells := make(map[string]int, len(summary.CellCounts))
	for kind, count := range summary.CellCounts {
		cells[kind.String()] = count
	}

	payload := summaryPayload{
		Building:  summary.Building,
		Version:   summary.Version,
		Levels:    levels,
		Slots:     orEmpty(summary.SlotIDs),
		Entrances: orEmpty(summary.EntranceIDs),
		Exits:     orEmpty(summary.ExitIDs),
		Ramps:     ramps,
		Cells:     cells,
	}
	return encode(w, payload)
}

// orEmpty keeps absent id lists as [] rather than null in the output.
func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func encode(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
