// Package render implements the route and facility renderers behind
// ports.Renderer: human-readable tables and machine-readable JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
	"github.com/parknav/parknav/internal/ui/output"
	"github.com/parknav/parknav/internal/ui/style"
)

var _ ports.Renderer = (*TableRenderer)(nil)

// TableRenderer renders routes and facility summaries for people.
type TableRenderer struct{}

// NewTableRenderer creates a table renderer and pins the lipgloss color
// profile to the detected terminal capabilities.
func NewTableRenderer() *TableRenderer {
	lipgloss.SetColorProfile(output.ColorProfile())
	return &TableRenderer{}
}

// RenderRoute writes a computed route with its emission estimate.
func (r *TableRenderer) RenderRoute(w io.Writer, result *domain.RouteResult) error {
	route := result.Route
	start := route.Start()
	end := route.End()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Route %s (map v%d)", result.Building, result.Version)))
	b.WriteString("\n\n")

	writeField(&b, "from", fmt.Sprintf("%s %s", start.Kind, start.Coord))
	writeField(&b, "to", fmt.Sprintf("%s %s", end.Kind, end.Coord))
	writeField(&b, "distance", fmt.Sprintf("%.1f m", route.TotalDistance))
	writeField(&b, "moves", fmt.Sprintf("%d", route.StepCount))
	writeField(&b, "path", pathGlyphs(route.Cells))

	b.WriteString("\n")
	writeField(&b, "co2 saved", emissionLine(result.Emission))

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary writes a facility overview.
func (r *TableRenderer) RenderSummary(w io.Writer, summary *ports.FacilitySummary) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Building %s (map v%d)", summary.Building, summary.Version)))
	b.WriteString("\n\n")

	writeField(&b, "levels", levelsLine(summary.Levels))
	writeField(&b, "slots", idsLine(summary.SlotIDs))
	writeField(&b, "entrances", idsLine(summary.EntranceIDs))
	writeField(&b, "exits", idsLine(summary.ExitIDs))
	writeField(&b, "ramps", rampsLine(summary.RampLinks))
	writeField(&b, "cells", cellsLine(summary.CellCounts))

	for _, level := range summary.Levels {
		if len(level.Grid) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n  %s\n", labelStyle.Render(fmt.Sprintf("L%d", level.Level))))
		for _, row := range level.Grid {
			b.WriteString(fmt.Sprintf("    %s\n", row))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeField writes one aligned "label value" line.
func writeField(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", label)), value))
}

// pathGlyphs compresses the route into one glyph per move.
func pathGlyphs(cells []domain.Cell) string {
	var b strings.Builder
	for i := 1; i < len(cells); i++ {
		b.WriteString(stepGlyph(cells[i-1].Coord, cells[i].Coord))
	}
	if b.Len() == 0 {
		return "(already there)"
	}
	return b.String()
}

// stepGlyph picks the arrow for one move. Rows grow downward, so a
// decreasing row is an upward arrow on screen.
func stepGlyph(from, to domain.Coord) string {
	switch {
	case to.Level > from.Level:
		return style.RampUp
	case to.Level < from.Level:
		return style.RampDown
	case to.Row < from.Row:
		return style.StepUp
	case to.Row > from.Row:
		return style.StepDown
	case to.Col < from.Col:
		return style.StepLeft
	default:
		return style.StepRight
	}
}

func emissionLine(e domain.EmissionResult) string {
	text := fmt.Sprintf("%.3f g (actual %.1f m, baseline %.1f m)",
		e.CO2SavedGrams, e.ActualDistance, e.BaselineDistance)
	if e.CO2SavedGrams > 0 {
		return savedStyle.Render(text)
	}
	return noSavingStyle.Render(text)
}

func levelsLine(levels []ports.LevelSummary) string {
	if len(levels) == 0 {
		return "0"
	}
	dims := make([]string, 0, len(levels))
	for _, level := range levels {
		dims = append(dims, fmt.Sprintf("L%d %dx%d", level.Level, level.Rows, level.Cols))
	}
	return fmt.Sprintf("%d: %s", len(levels), strings.Join(dims, ", "))
}

func idsLine(ids []string) string {
	if len(ids) == 0 {
		return "0"
	}
	return fmt.Sprintf("%d: %s", len(ids), strings.Join(ids, ", "))
}

func rampsLine(links []domain.RampLink) string {
	if len(links) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(links))
	for _, link := range links {
		parts = append(parts, fmt.Sprintf("%s %s <-> %s", link.ID, link.From, link.To))
	}
	return fmt.Sprintf("%d: %s", len(links), strings.Join(parts, ", "))
}

// cellsLine lists cell counts in legend order, skipping absent kinds.
func cellsLine(counts map[domain.CellKind]int) string {
	kinds := []domain.CellKind{
		domain.KindEmpty,
		domain.KindWall,
		domain.KindCorridor,
		domain.KindSlot,
		domain.KindEntrance,
		domain.KindExit,
		domain.KindRamp,
	}
	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if count := counts[kind]; count > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", kind, count))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
