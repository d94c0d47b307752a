package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
)

// Route is the result of one shortest-path search: the ordered cells from
// start to end inclusive, the bit-exact sum of the traversed edge weights,
// and the number of moves. Routes are shared between cache waiters and must
// never be mutated after construction.
type Route struct {
	Cells         []Cell
	TotalDistance float64
	StepCount     int
}

// Start returns the first cell of the route.
func (r *Route) Start() Cell { return r.Cells[0] }

// End returns the last cell of the route.
func (r *Route) End() Cell { return r.Cells[len(r.Cells)-1] }

// RouteKey identifies one cached route computation. Version is part of the
// key, so entries of an outdated map can never be served again.
type RouteKey struct {
	Building string
	Version  int64
	Start    Coord
	End      Coord
}

// GenerateRouteID derives the deterministic cache and flight-group id for a
// route key. The id is a SHA-256 hex digest over the key components with
// zero-byte separators, so distinct keys cannot collide by concatenation.
func GenerateRouteID(key RouteKey) string {
	h := sha256.New()
	h.Write([]byte(key.Building))
	h.Write([]byte{0})
	fmt.Fprintf(h, "%d", key.Version)
	h.Write([]byte{0})
	h.Write([]byte(key.Start.String()))
	h.Write([]byte{0})
	h.Write([]byte(key.End.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// EmissionResult reports the carbon delta of a computed route against a
// baseline distance. Distances are meters, savings are grams of CO2.
type EmissionResult struct {
	ActualDistance   float64
	BaselineDistance float64
	CO2SavedGrams    float64
}

// RouteResult is the composed answer of the facade: the route, the version
// it was computed against, and its emission estimate.
type RouteResult struct {
	Building string
	Version  int64
	Route    *Route
	Emission EmissionResult
}

// StraightLineDistance is the Euclidean distance between two coordinates
// with all three components and unit level height. It is the default
// baseline when the caller supplies none.
func StraightLineDistance(a, b Coord) float64 {
	dl := float64(a.Level - b.Level)
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dl*dl + dr*dr + dc*dc)
}
