package nav

import (
	"context"
	"errors"
	"runtime"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/parknav/parknav/internal/core/domain"
)

// neighborOffsets enumerate the flat moves in a fixed order: up, down,
// left, right. The order shapes the adjacency layout and therefore which
// equal-cost route a search settles on.
var neighborOffsets = [4]struct{ dr, dc int }{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Builder constructs routing graphs from facility snapshots.
type Builder struct {
	rampCost float64
}

// NewBuilder creates a Builder with the given ramp traversal cost. The cost
// must strictly exceed the flat edge weight, otherwise level changes would
// not be penalized against same-level detours.
func NewBuilder(rampCost float64) (*Builder, error) {
	if rampCost <= domain.FlatEdgeWeight {
		detail := zerr.With(zerr.New("ramp cost must exceed the flat edge weight"), "rampCost", rampCost)
		return nil, errors.Join(domain.ErrInvalidRampCost, zerr.With(detail, "flat", domain.FlatEdgeWeight))
	}
	return &Builder{rampCost: rampCost}, nil
}

// Build derives the routing graph of a facility snapshot. Node indices
// follow level order and row-major order within a level, flat edges follow
// the fixed neighbour order and ramp edges are appended per link id, so the
// same facility always yields the same graph.
func (b *Builder) Build(ctx context.Context, f *domain.Facility) (*Graph, error) {
	g := &Graph{
		building: f.Building(),
		version:  f.Version(),
		index:    make(map[domain.Coord]int32, f.TraversableCount()),
		nodes:    make([]domain.Cell, 0, f.TraversableCount()),
	}

	for _, m := range f.Levels() {
		for c := range m.Cells() {
			if !c.Traversable() {
				continue
			}
			g.index[c.Coord] = int32(len(g.nodes))
			g.nodes = append(g.nodes, c)
		}
	}

	g.adj = make([][]edge, len(g.nodes))

	// Flat edges never cross levels, so each level hydrates its own slice
	// ranges and the goroutines stay disjoint.
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for _, m := range f.Levels() {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return zerr.Wrap(err, "graph build canceled")
			}
			b.connectLevel(g, m)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, l := range f.RampLinks() {
		from, to := g.index[l.From], g.index[l.To]
		g.adj[from] = append(g.adj[from], edge{to: to, weight: b.rampCost})
		g.adj[to] = append(g.adj[to], edge{to: from, weight: b.rampCost})
	}

	return g, nil
}

// connectLevel adds the four-directional unit-weight edges of one level.
func (b *Builder) connectLevel(g *Graph, m *domain.ParkingMap) {
	for c := range m.Cells() {
		if !c.Traversable() {
			continue
		}
		from := g.index[c.Coord]
		for _, o := range neighborOffsets {
			at := domain.Coord{Level: c.Coord.Level, Row: c.Coord.Row + o.dr, Col: c.Coord.Col + o.dc}
			to, ok := g.index[at]
			if !ok {
				continue
			}
			g.adj[from] = append(g.adj[from], edge{to: to, weight: domain.FlatEdgeWeight})
		}
	}
}
