// Package app implements the application layer for parknav.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/parknav/parknav/internal/adapters/mapstore"
	"github.com/parknav/parknav/internal/adapters/pgstore"
	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/core/ports"
	"github.com/parknav/parknav/internal/engine/emission"
	"github.com/parknav/parknav/internal/engine/nav"
	"github.com/parknav/parknav/internal/engine/routecache"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	watcher      ports.Watcher
	tracer       ports.Tracer
	stdout       io.Writer

	mu             sync.Mutex
	runtime        *engineRuntime
	settings       Settings
	sourceOverride ports.MapSource
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	watch ports.Watcher,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		watcher:      watch,
		tracer:       tracer,
		stdout:       os.Stdout,
	}
}

// WithStdout redirects rendered output.
// This is primarily used for testing to capture command output.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithMapSource replaces the configured storage backend.
// This is primarily used for testing to skip driver selection.
func (a *App) WithMapSource(source ports.MapSource) *App {
	a.sourceOverride = source
	return a
}

// applySettings records flag and environment overrides. They only take
// effect on the call that assembles the engine.
func (a *App) applySettings(s Settings) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.runtime != nil {
		return
	}
	a.settings = s
}

// engineRuntime bundles the storage source and the engine components built
// from one loaded configuration. It is constructed once per process on first
// use and shared by every subsequent operation.
type engineRuntime struct {
	cfg         *domain.Config
	source      ports.MapSource
	closeSource func() error
	builder     *nav.Builder
	graphs      *lru.Cache[string, *nav.Graph]
	flights     singleflight.Group
	routes      *routecache.Cache
	estimator   *emission.Estimator
	tracer      ports.Tracer
}

// ensureRuntime loads the configuration and assembles the engine on first
// call. Later calls return the same runtime.
func (a *App) ensureRuntime(ctx context.Context) (*engineRuntime, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.runtime != nil {
		return a.runtime, nil
	}

	configDir := a.settings.ConfigDir
	if configDir == "" {
		configDir = "."
	}
	cfg, err := a.configLoader.Load(configDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if a.settings.MapsDir != "" {
		cfg.MapsDir = a.settings.MapsDir
	}
	if a.settings.LogFormat != "" {
		cfg.Log.Format = a.settings.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Log.Format == "json" {
		a.logger.SetJSON(true)
	}

	source, closeSource, err := a.openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	closeOnErr := func() {
		if closeSource != nil {
			_ = closeSource()
		}
	}

	builder, err := nav.NewBuilder(cfg.Routing.RampCost)
	if err != nil {
		closeOnErr()
		return nil, err
	}
	graphs, err := lru.New[string, *nav.Graph](cfg.Cache.Graphs)
	if err != nil {
		closeOnErr()
		return nil, zerr.Wrap(err, "failed to initialize graph cache")
	}
	routes, err := routecache.New(cfg.Cache.Routes)
	if err != nil {
		closeOnErr()
		return nil, err
	}
	estimator, err := emission.NewEstimator(cfg.Emission.FactorGramsPerMeter)
	if err != nil {
		closeOnErr()
		return nil, err
	}

	a.runtime = &engineRuntime{
		cfg:         cfg,
		source:      source,
		closeSource: closeSource,
		builder:     builder,
		graphs:      graphs,
		routes:      routes,
		estimator:   estimator,
		tracer:      a.tracer,
	}
	return a.runtime, nil
}

// openSource selects the map storage backend from the configured driver.
func (a *App) openSource(ctx context.Context, cfg *domain.Config) (ports.MapSource, func() error, error) {
	if a.sourceOverride != nil {
		return a.sourceOverride, nil, nil
	}

	switch cfg.Storage.Driver {
	case domain.DriverFile:
		return mapstore.NewStore(cfg.MapsDir, a.logger), nil, nil
	case domain.DriverPostgres:
		store, err := pgstore.Open(cfg.Storage.DSN, a.logger)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, zerr.With(domain.ErrUnknownStorageDriver, "driver", string(cfg.Storage.Driver))
	}
}

// Close releases the storage connection and flushes pending telemetry.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs error
	if a.runtime != nil && a.runtime.closeSource != nil {
		errs = errors.Join(errs, a.runtime.closeSource())
		a.runtime.closeSource = nil
	}
	return errors.Join(errs, a.tracer.Shutdown(ctx))
}

// RouteOptions configuration for the ComputeRoute method.
type RouteOptions struct {
	// Baseline overrides the straight-line baseline distance in meters.
	// Nil means derive it from the endpoints.
	Baseline *float64

	// NoCache forces a fresh search even when the route is cached.
	NoCache bool
}

// ComputeRoute resolves the current map of a building and answers the
// shortest path between two cells together with its emission estimate.
// Engine errors such as domain.ErrNoPath pass through unchanged so callers
// can match on them.
func (a *App) ComputeRoute(ctx context.Context, building string, start, end domain.Coord, opts RouteOptions) (*domain.RouteResult, error) {
	rt, err := a.ensureRuntime(ctx)
	if err != nil {
		return nil, err
	}

	ctx, span := rt.tracer.Start(ctx, "route.compute",
		ports.WithAttribute("building", building),
		ports.WithAttribute("start", start.String()),
		ports.WithAttribute("end", end.String()),
	)
	defer span.End()

	result, err := rt.computeRoute(ctx, building, start, end, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("version", strconv.FormatInt(result.Version, 10))
	span.SetAttribute("steps", strconv.Itoa(result.Route.StepCount))
	return result, nil
}

func (rt *engineRuntime) computeRoute(ctx context.Context, building string, start, end domain.Coord, opts RouteOptions) (*domain.RouteResult, error) {
	facility, err := rt.loadFacility(ctx, building)
	if err != nil {
		return nil, err
	}

	graph, err := rt.graphFor(ctx, facility)
	if err != nil {
		return nil, err
	}

	key := domain.RouteKey{
		Building: facility.Building(),
		Version:  facility.Version(),
		Start:    start,
		End:      end,
	}

	searchCtx, span := rt.tracer.Start(ctx, "route.search",
		ports.WithAttribute("route_id", domain.GenerateRouteID(key)),
	)
	route, err := rt.searchRoute(searchCtx, graph, key, opts.NoCache)
	if err != nil {
		span.RecordError(err)
		span.End()
		return nil, err
	}
	span.End()

	baseline := 0.0
	if opts.Baseline != nil {
		baseline = *opts.Baseline
	}

	return &domain.RouteResult{
		Building: facility.Building(),
		Version:  facility.Version(),
		Route:    route,
		Emission: rt.estimator.Estimate(route, baseline),
	}, nil
}

// loadFacility fetches the current snapshot of a building under a span.
func (rt *engineRuntime) loadFacility(ctx context.Context, building string) (*domain.Facility, error) {
	ctx, span := rt.tracer.Start(ctx, "map.load",
		ports.WithAttribute("building", building),
	)
	defer span.End()

	facility, err := rt.source.LoadCurrent(ctx, building)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("version", strconv.FormatInt(facility.Version(), 10))
	return facility, nil
}

// graphFor returns the navigation graph of a facility snapshot, building it
// at most once per (building, version) even under concurrent calls.
func (rt *engineRuntime) graphFor(ctx context.Context, facility *domain.Facility) (*nav.Graph, error) {
	key := fmt.Sprintf("%s|%d", facility.Building(), facility.Version())
	if graph, ok := rt.graphs.Get(key); ok {
		return graph, nil
	}

	v, err, _ := rt.flights.Do(key, func() (any, error) {
		// A concurrent flight may have populated the cache between the
		// miss above and this call.
		if graph, ok := rt.graphs.Get(key); ok {
			return graph, nil
		}

		ctx, span := rt.tracer.Start(ctx, "graph.build",
			ports.WithAttribute("building", facility.Building()),
			ports.WithAttribute("version", strconv.FormatInt(facility.Version(), 10)),
		)
		defer span.End()

		graph, err := rt.builder.Build(ctx, facility)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}

		span.SetAttribute("nodes", strconv.Itoa(graph.NodeCount()))
		rt.graphs.Add(key, graph)
		return graph, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*nav.Graph), nil
}

// searchRoute answers the shortest path, through the route cache unless the
// caller opted out.
func (rt *engineRuntime) searchRoute(ctx context.Context, graph *nav.Graph, key domain.RouteKey, noCache bool) (*domain.Route, error) {
	if noCache {
		return graph.ShortestPath(key.Start, key.End)
	}
	return rt.routes.GetOrCompute(ctx, key, func(context.Context) (*domain.Route, error) {
		return graph.ShortestPath(key.Start, key.End)
	})
}

// Inspect summarizes the current map of a building: its levels, cell census,
// registered ids, and ramp links. Grid sketches are included when asked for.
func (a *App) Inspect(ctx context.Context, building string, withGrids bool) (*ports.FacilitySummary, error) {
	rt, err := a.ensureRuntime(ctx)
	if err != nil {
		return nil, err
	}

	ctx, span := rt.tracer.Start(ctx, "map.inspect",
		ports.WithAttribute("building", building),
	)
	defer span.End()

	facility, err := rt.loadFacility(ctx, building)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return summarize(facility, withGrids), nil
}

// Buildings lists the ids of all buildings known to the storage backend.
func (a *App) Buildings(ctx context.Context) ([]string, error) {
	rt, err := a.ensureRuntime(ctx)
	if err != nil {
		return nil, err
	}
	return rt.source.Buildings(ctx)
}

// summarize projects a facility snapshot into the renderer-facing view.
func summarize(facility *domain.Facility, withGrids bool) *ports.FacilitySummary {
	summary := &ports.FacilitySummary{
		Building:   facility.Building(),
		Version:    facility.Version(),
		CellCounts: make(map[domain.CellKind]int),
		RampLinks:  facility.RampLinks(),
	}

	for _, m := range facility.Levels() {
		level := ports.LevelSummary{Level: m.Level(), Rows: m.Rows(), Cols: m.Cols()}
		if withGrids {
			level.Grid = domain.RenderGrid(m)
		}
		summary.Levels = append(summary.Levels, level)

		for kind, n := range m.CountByKind() {
			summary.CellCounts[kind] += n
		}
		summary.SlotIDs = append(summary.SlotIDs, m.SlotIDs()...)
		summary.EntranceIDs = append(summary.EntranceIDs, m.EntranceIDs()...)
		summary.ExitIDs = append(summary.ExitIDs, m.ExitIDs()...)
	}

	slices.Sort(summary.SlotIDs)
	slices.Sort(summary.EntranceIDs)
	slices.Sort(summary.ExitIDs)
	return summary
}
