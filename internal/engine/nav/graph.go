package nav

import (
	"github.com/parknav/parknav/internal/core/domain"
)

// edge is one directed connection in the adjacency structure.
type edge struct {
	to     int32
	weight float64
}

// Graph is the immutable routing graph of one facility snapshot. Nodes are
// the traversable cells, flat edges connect orthogonal neighbours on the
// same level, ramp edges connect linked ramp cells across levels. A graph
// is built once per (building, version) and shared read-only afterwards.
type Graph struct {
	building string
	version  int64

	index map[domain.Coord]int32
	nodes []domain.Cell
	adj   [][]edge
}

// Building returns the building id the graph was built for.
func (g *Graph) Building() string { return g.building }

// Version returns the facility version the graph was built from.
func (g *Graph) Version() int64 { return g.version }

// NodeCount returns the number of traversable cells in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of directed edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.adj {
		n += len(edges)
	}
	return n
}

// Contains reports whether the coordinate is a node of the graph, which is
// the case exactly for in-bounds traversable cells.
func (g *Graph) Contains(at domain.Coord) bool {
	_, ok := g.index[at]
	return ok
}

// Neighbors returns the coordinates reachable from at in one move, in
// adjacency order. It returns nil for coordinates outside the graph.
func (g *Graph) Neighbors(at domain.Coord) []domain.Coord {
	node, ok := g.index[at]
	if !ok {
		return nil
	}
	out := make([]domain.Coord, len(g.adj[node]))
	for i, e := range g.adj[node] {
		out[i] = g.nodes[e.to].Coord
	}
	return out
}

// Weight returns the weight of the edge from one coordinate to another, or
// false when no such edge exists.
func (g *Graph) Weight(from, to domain.Coord) (float64, bool) {
	src, ok := g.index[from]
	if !ok {
		return 0, false
	}
	dst, ok := g.index[to]
	if !ok {
		return 0, false
	}
	for _, e := range g.adj[src] {
		if e.to == dst {
			return e.weight, true
		}
	}
	return 0, false
}
