package nav

import (
	"container/heap"
	"errors"
	"math"
	"slices"

	"go.trai.ch/zerr"

	"github.com/parknav/parknav/internal/core/domain"
)

// unreached marks a node without a predecessor.
const unreached int32 = -1

// ShortestPath runs Dijkstra from start to end and reconstructs the route
// over the predecessor chain. Among equal-cost routes the first-discovered
// one wins: relaxations only apply on strict improvement and the frontier
// breaks distance ties by insertion order, so repeated searches over the
// same graph return the identical route.
//
// It fails with domain.ErrInvalidNode when either coordinate is not a node
// of the graph and with domain.ErrNoPath when end is unreachable.
func (g *Graph) ShortestPath(start, end domain.Coord) (*domain.Route, error) {
	src, ok := g.index[start]
	if !ok {
		return nil, invalidNode(start)
	}
	dst, ok := g.index[end]
	if !ok {
		return nil, invalidNode(end)
	}

	dist := make([]float64, len(g.nodes))
	prev := make([]int32, len(g.nodes))
	settled := make([]bool, len(g.nodes))
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = unreached
	}
	dist[src] = 0

	var seq uint64
	pq := make(nodePQ, 0, 64)
	heap.Push(&pq, pqItem{node: src})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(pqItem)
		u := item.node
		if settled[u] {
			continue // stale duplicate from a later relaxation
		}
		settled[u] = true
		if u == dst {
			break
		}

		for _, e := range g.adj[u] {
			if settled[e.to] {
				continue
			}
			alt := dist[u] + e.weight
			if alt < dist[e.to] {
				dist[e.to] = alt
				prev[e.to] = u
				seq++
				heap.Push(&pq, pqItem{node: e.to, dist: alt, seq: seq})
			}
		}
	}

	if !settled[dst] {
		return nil, noPath(start, end)
	}

	order := make([]int32, 0, 16)
	for at := dst; at != unreached; at = prev[at] {
		order = append(order, at)
	}
	slices.Reverse(order)

	cells := make([]domain.Cell, len(order))
	for i, n := range order {
		cells[i] = g.nodes[n]
	}

	return &domain.Route{
		Cells:         cells,
		TotalDistance: dist[dst],
		StepCount:     len(cells) - 1,
	}, nil
}

// pqItem is one frontier entry. seq orders entries of equal distance by the
// time they entered the frontier.
type pqItem struct {
	node int32
	dist float64
	seq  uint64
}

// nodePQ implements heap.Interface over frontier entries.
type nodePQ []pqItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(pqItem)) }

func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

func invalidNode(at domain.Coord) error {
	detail := zerr.With(zerr.New("coordinate is not a node of the routing graph"), "at", at.String())
	return errors.Join(domain.ErrInvalidNode, detail)
}

func noPath(start, end domain.Coord) error {
	detail := zerr.With(zerr.New("no traversable route between coordinates"), "start", start.String())
	return errors.Join(domain.ErrNoPath, zerr.With(detail, "end", end.String()))
}
