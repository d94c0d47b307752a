package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/parknav/parknav/internal/adapters/detector"
	"github.com/parknav/parknav/internal/adapters/render"
	"github.com/parknav/parknav/internal/adapters/watcher"
	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
)

// Settings carries the configuration overrides every command accepts from
// persistent flags and the environment. Zero values leave the loaded
// configuration untouched.
type Settings struct {
	// ConfigDir is the directory parknav.yaml discovery starts from.
	ConfigDir string
	// MapsDir overrides the configured maps directory.
	MapsDir string
	// LogFormat overrides the configured log format.
	LogFormat string
}

// RouteRunOptions configuration for the RunRoute method.
type RouteRunOptions struct {
	Settings Settings
	Building string
	From     string
	To       string
	Baseline float64
	NoCache  bool
	Output   string
}

// RunRoute computes a route between two node references and renders it to
// the configured output. References are level,row,col triples or the id of a
// slot, entrance, or exit.
func (a *App) RunRoute(ctx context.Context, opts RouteRunOptions) error {
	a.applySettings(opts.Settings)

	rt, err := a.ensureRuntime(ctx)
	if err != nil {
		return err
	}

	// Resolve references against the current snapshot. ComputeRoute loads
	// the same memoized snapshot again, so this costs one extra map lookup,
	// not one extra read.
	facility, err := rt.loadFacility(ctx, opts.Building)
	if err != nil {
		return err
	}

	start, err := resolveNode(facility, opts.From)
	if err != nil {
		return err
	}
	end, err := resolveNode(facility, opts.To)
	if err != nil {
		return err
	}

	routeOpts := RouteOptions{NoCache: opts.NoCache}
	if opts.Baseline > 0 {
		routeOpts.Baseline = &opts.Baseline
	}

	result, err := a.ComputeRoute(ctx, opts.Building, start, end, routeOpts)
	if err != nil {
		return err
	}

	return a.pickRenderer(opts.Output).RenderRoute(a.stdout, result)
}

// InspectRunOptions configuration for the RunInspect method.
type InspectRunOptions struct {
	Settings Settings
	Building string
	Grids    bool
	Output   string
}

// RunInspect renders a facility summary to the configured output.
func (a *App) RunInspect(ctx context.Context, opts InspectRunOptions) error {
	a.applySettings(opts.Settings)

	summary, err := a.Inspect(ctx, opts.Building, opts.Grids)
	if err != nil {
		return err
	}
	return a.pickRenderer(opts.Output).RenderSummary(a.stdout, summary)
}

// WatchRunOptions configuration for the RunWatch method.
type WatchRunOptions struct {
	Settings Settings

	// Window is the debounce window for coalescing change bursts. Zero
	// selects the default.
	Window time.Duration
}

// RunWatch observes the maps directory until the context is canceled,
// reloading changed buildings eagerly so the next route request finds a warm
// graph. Only the file storage driver has a directory to watch.
func (a *App) RunWatch(ctx context.Context, opts WatchRunOptions) error {
	a.applySettings(opts.Settings)

	rt, err := a.ensureRuntime(ctx)
	if err != nil {
		return err
	}
	if rt.cfg.Storage.Driver != domain.DriverFile {
		return zerr.With(
			zerr.New("watch requires the file storage driver"),
			"driver", string(rt.cfg.Storage.Driver),
		)
	}

	buildings, err := rt.source.Buildings(ctx)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("watching %s (%d buildings)", rt.cfg.MapsDir, len(buildings)))

	window := opts.Window
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	debouncer := watcher.NewDebouncer(window, func(changed []string) {
		a.reloadBuildings(ctx, rt, changed)
	})

	if err := a.watcher.Start(ctx, rt.cfg.MapsDir); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	for event := range a.watcher.Events() {
		if building := domain.BuildingFromMapFile(event.Path); building != "" {
			debouncer.Add(building)
		}
	}

	debouncer.Flush()
	return nil
}

// reloadBuildings drops memoized snapshots of the changed buildings and
// loads the replacement eagerly, pre-warming its graph.
func (a *App) reloadBuildings(ctx context.Context, rt *engineRuntime, buildings []string) {
	for _, building := range buildings {
		rt.source.Invalidate(building)

		facility, err := rt.loadFacility(ctx, building)
		if err != nil {
			if errors.Is(err, domain.ErrMapNotFound) {
				a.logger.Warn(fmt.Sprintf("map for %s is gone", building))
				continue
			}
			a.logger.Error(err)
			continue
		}

		if _, err := rt.graphFor(ctx, facility); err != nil {
			a.logger.Error(err)
			continue
		}

		a.logger.Info(fmt.Sprintf("reloaded %s at version %d", building, facility.Version()))
	}
}

// pickRenderer selects the output renderer from the flag and environment.
func (a *App) pickRenderer(outputFlag string) ports.Renderer {
	mode := detector.ResolveMode(detector.DetectEnvironment(), outputFlag)
	if mode == detector.ModeTable {
		return render.NewTableRenderer()
	}
	return render.NewJSONRenderer()
}

// resolveNode turns a node reference into a coordinate. A reference is
// either a level,row,col triple (slashes work too) or an id registered on
// any level of the facility.
func resolveNode(facility *domain.Facility, ref string) (domain.Coord, error) {
	if coord, ok := parseCoordTriple(ref); ok {
		return coord, nil
	}

	for _, m := range facility.Levels() {
		if cell, ok := m.Slot(ref); ok {
			return cell.Coord, nil
		}
		if cell, ok := m.Entrance(ref); ok {
			return cell.Coord, nil
		}
		if cell, ok := m.Exit(ref); ok {
			return cell.Coord, nil
		}
	}

	detail := zerr.With(
		zerr.New(fmt.Sprintf("unknown node reference %q", ref)),
		"building", facility.Building(),
	)
	return domain.Coord{}, errors.Join(domain.ErrInvalidNode, detail)
}

// parseCoordTriple reads "level,row,col" or "level/row/col".
func parseCoordTriple(ref string) (domain.Coord, bool) {
	parts := strings.FieldsFunc(ref, func(r rune) bool { return r == ',' || r == '/' })
	if len(parts) != 3 {
		return domain.Coord{}, false
	}

	values := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return domain.Coord{}, false
		}
		values[i] = n
	}

	return domain.Coord{Level: values[0], Row: values[1], Col: values[2]}, true
}
