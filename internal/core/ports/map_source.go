// Package ports defines the interfaces between the engine core and its
// adapters.
package ports

import (
	"context"

	"github.com/parknav/parknav/internal/core/domain"
)

// MapSource loads facility snapshots from the map storage collaborator.
//
//go:generate mockgen -source=map_source.go -destination=mocks/mock_map_source.go -package=mocks
type MapSource interface {
	// LoadCurrent returns the current snapshot of a building. It may be
	// called repeatedly; the returned version increases strictly whenever
	// the underlying map content changes, which is what keys cache
	// invalidation. Returns domain.ErrMapNotFound for unknown buildings.
	LoadCurrent(ctx context.Context, building string) (*domain.Facility, error)

	// Buildings lists the ids of all known buildings in sorted order.
	Buildings(ctx context.Context) ([]string, error)

	// Invalidate drops any memoized state for a building so the next
	// LoadCurrent rereads the backing store. Sources without memoized
	// state treat this as a no-op.
	Invalidate(building string)
}
