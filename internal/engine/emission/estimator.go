package emission

import (
	"errors"

	"go.trai.ch/zerr"

	"github.com/parknav/parknav/internal/core/domain"
)

// Estimator converts the distance saved by guided routing into grams of
// CO2, using a fixed regional emission factor per meter driven.
type Estimator struct {
	factor float64
}

// NewEstimator creates an Estimator with the given factor in grams of CO2
// per meter. A factor of zero disables savings, a negative factor is
// rejected.
func NewEstimator(factor float64) (*Estimator, error) {
	if factor < 0 {
		detail := zerr.With(zerr.New("emission factor must not be negative"), "factor", factor)
		return nil, errors.Join(domain.ErrInvalidEmissionFactor, detail)
	}
	return &Estimator{factor: factor}, nil
}

// Estimate computes the emission delta of a route against a baseline
// distance in meters. A baseline of zero or less means the caller supplied
// none and the straight-line distance between the route endpoints is used
// instead. Savings never go below zero: a route longer than its baseline
// saves nothing rather than emitting negative grams.
func (e *Estimator) Estimate(route *domain.Route, baseline float64) domain.EmissionResult {
	if baseline <= 0 {
		baseline = domain.StraightLineDistance(route.Start().Coord, route.End().Coord)
	}

	saved := baseline - route.TotalDistance
	if saved < 0 {
		saved = 0
	}

	return domain.EmissionResult{
		ActualDistance:   route.TotalDistance,
		BaselineDistance: baseline,
		CO2SavedGrams:    saved * e.factor,
	}
}
