package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/parknav/parknav/internal/app"
	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
)

func TestApp_RunRoute_RendersJSON(t *testing.T) {
	ta := newTestApp(t, domain.DefaultConfig())

	facility := buildFacility(t, "B1", 3, buildLevel(t, "B1", 0, "e...x"))
	// One load resolves the node references, one answers the route. The
	// second hits the source's memoized snapshot in production.
	ta.Source.EXPECT().LoadCurrent(gomock.Any(), "B1").Return(facility, nil).Times(2)

	var buf bytes.Buffer
	ta.App.WithStdout(&buf)

	err := ta.App.RunRoute(context.Background(), app.RouteRunOptions{
		Building: "B1",
		From:     "e0-0-0",
		To:       "x0-0-4",
		Output:   "json",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}
	if payload["building"] != "B1" {
		t.Errorf("Expected building B1, got %v", payload["building"])
	}
	if payload["version"] != float64(3) {
		t.Errorf("Expected version 3, got %v", payload["version"])
	}
	if payload["start"] != "0/0/0" || payload["end"] != "0/0/4" {
		t.Errorf("Expected endpoints 0/0/0 and 0/0/4, got %v and %v", payload["start"], payload["end"])
	}
	if payload["moves"] != float64(4) {
		t.Errorf("Expected 4 moves, got %v", payload["moves"])
	}
}

func TestApp_RunRoute_RendersTable(t *testing.T) {
	ta := newTestApp(t, domain.DefaultConfig())

	facility := buildFacility(t, "B1", 1, buildLevel(t, "B1", 0, "e...x"))
	ta.Source.EXPECT().LoadCurrent(gomock.Any(), "B1").Return(facility, nil).Times(2)

	var buf bytes.Buffer
	ta.App.WithStdout(&buf)

	err := ta.App.RunRoute(context.Background(), app.RouteRunOptions{
		Building: "B1",
		From:     "0,0,0",
		To:       "0,0,4",
		Output:   "table",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Route B1") {
		t.Errorf("Expected route heading, got:\n%s", out)
	}
	if !strings.Contains(out, "co2 saved") {
		t.Errorf("Expected emission footer, got:\n%s", out)
	}
}

func TestApp_RunRoute_CoordTriples(t *testing.T) {
	ta := newTestApp(t, domain.DefaultConfig())

	facility := buildFacility(t, "B1", 1, buildLevel(t, "B1", 0, "e...x"))
	ta.Source.EXPECT().LoadCurrent(gomock.Any(), "B1").Return(facility, nil).Times(2)

	var buf bytes.Buffer
	ta.App.WithStdout(&buf)

	// Both separators name the same cells.
	err := ta.App.RunRoute(context.Background(), app.RouteRunOptions{
		Building: "B1",
		From:     "0/0/0",
		To:       "0, 0, 4",
		Output:   "json",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestApp_RunRoute_UnknownReference(t *testing.T) {
	ta := newTestApp(t, domain.DefaultConfig())

	facility := buildFacility(t, "B1", 1, buildLevel(t, "B1", 0, "e...x"))
	ta.Source.EXPECT().LoadCurrent(gomock.Any(), "B1").Return(facility, nil)

	err := ta.App.RunRoute(context.Background(), app.RouteRunOptions{
		Building: "B1",
		From:     "slot-99",
		To:       "0,0,4",
		Output:   "json",
	})
	if !errors.Is(err, domain.ErrInvalidNode) {
		t.Errorf("Expected ErrInvalidNode, got: %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "slot-99") {
		t.Errorf("Expected the reference in the error, got: %v", err)
	}
}

func TestApp_RunInspect_RendersJSON(t *testing.T) {
	ta := newTestApp(t, domain.DefaultConfig())

	facility := buildFacility(t, "B7", 2, buildLevel(t, "B7", 0,
		"e.s",
		"..x",
	))
	ta.Source.EXPECT().LoadCurrent(gomock.Any(), "B7").Return(facility, nil)

	var buf bytes.Buffer
	ta.App.WithStdout(&buf)

	err := ta.App.RunInspect(context.Background(), app.InspectRunOptions{
		Building: "B7",
		Output:   "json",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}
	if payload["building"] != "B7" {
		t.Errorf("Expected building B7, got %v", payload["building"])
	}
	levels, ok := payload["levels"].([]any)
	if !ok || len(levels) != 1 {
		t.Errorf("Expected one level, got %v", payload["levels"])
	}
	slots, ok := payload["slots"].([]any)
	if !ok || len(slots) != 1 || slots[0] != "s0-0-2" {
		t.Errorf("Expected slot s0-0-2, got %v", payload["slots"])
	}
}

func TestApp_RunWatch_RequiresFileDriver(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Storage.Driver = domain.DriverPostgres
	cfg.Storage.DSN = "postgres://localhost/parknav?sslmode=disable"
	ta := newTestApp(t, cfg)

	err := ta.App.RunWatch(context.Background(), app.WatchRunOptions{})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "watch requires the file storage driver") {
		t.Errorf("Expected driver rejection, got: %v", err)
	}
}

func TestApp_RunWatch_ReloadsChangedBuildings(t *testing.T) {
	ta := newTestApp(t, domain.DefaultConfig())

	reloaded := buildFacility(t, "B1", 2, buildLevel(t, "B1", 0, "e...x"))

	ta.Source.EXPECT().Buildings(gomock.Any()).Return([]string{"B1", "B2"}, nil)
	// Two write events for B1 coalesce into a single reload.
	ta.Source.EXPECT().Invalidate("B1")
	ta.Source.EXPECT().Invalidate("B2")
	ta.Source.EXPECT().LoadCurrent(gomock.Any(), "B1").Return(reloaded, nil)
	ta.Source.EXPECT().LoadCurrent(gomock.Any(), "B2").Return(nil, domain.ErrMapNotFound)

	events := []ports.WatchEvent{
		{Path: "maps/B1.yaml", Operation: ports.OpWrite},
		{Path: "maps/B1.yaml", Operation: ports.OpWrite},
		{Path: "maps/B2.yaml", Operation: ports.OpCreate},
	}
	ta.Watch.EXPECT().Start(gomock.Any(), "maps").Return(nil)
	ta.Watch.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
		for _, ev := range events {
			if !yield(ev) {
				return
			}
		}
	})
	ta.Watch.EXPECT().Stop().Return(nil)

	if err := ta.App.RunWatch(context.Background(), app.WatchRunOptions{}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestApp_RunWatch_StartError(t *testing.T) {
	ta := newTestApp(t, domain.DefaultConfig())

	ta.Source.EXPECT().Buildings(gomock.Any()).Return(nil, nil)
	ta.Watch.EXPECT().Start(gomock.Any(), "maps").Return(errors.New("inotify limit reached"))

	err := ta.App.RunWatch(context.Background(), app.WatchRunOptions{})
	if err == nil || !strings.Contains(err.Error(), "inotify limit reached") {
		t.Errorf("Expected watcher start failure, got: %v", err)
	}
}
