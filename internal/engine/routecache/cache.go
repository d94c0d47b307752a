package routecache

import (
	"context"
	"errors"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/parknav/parknav/internal/core/domain"
)

// ComputeFunc produces the route for a key on a cache miss.
type ComputeFunc func(ctx context.Context) (*domain.Route, error)

// Cache memoizes route computations per (building, version, start, end) key.
// Completed routes live in a bounded LRU. Computations in flight are held in
// a separate flight group, so an entry that callers still wait on is never
// subject to eviction. Failed computations are not stored and the next call
// for the same key computes again.
type Cache struct {
	routes   *lru.Cache[string, *domain.Route]
	group    singleflight.Group
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a Cache holding at most capacity routes.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		detail := zerr.With(zerr.New("route cache capacity must be positive"), "capacity", capacity)
		return nil, errors.Join(domain.ErrInvalidCacheCapacity, detail)
	}

	routes, err := lru.New[string, *domain.Route](capacity)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create route cache")
	}

	return &Cache{routes: routes, capacity: capacity}, nil
}

// GetOrCompute returns the cached route for key or runs compute to produce
// it. Concurrent calls for the same key coalesce into one computation: the
// first caller computes, the others wait and receive the same route. The
// returned route is shared and must not be mutated.
func (c *Cache) GetOrCompute(ctx context.Context, key domain.RouteKey, compute ComputeFunc) (*domain.Route, error) {
	id := domain.GenerateRouteID(key)

	if route, ok := c.routes.Get(id); ok {
		c.hits.Add(1)
		return route, nil
	}

	result, err, _ := c.group.Do(id, func() (any, error) {
		// A flight that finished between the fast path and here may have
		// stored the route already.
		if route, ok := c.routes.Get(id); ok {
			c.hits.Add(1)
			return route, nil
		}

		c.misses.Add(1)
		route, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		c.routes.Add(id, route)
		return route, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Route), nil
}

// Contains reports whether a route for key is currently cached.
func (c *Cache) Contains(key domain.RouteKey) bool {
	return c.routes.Contains(domain.GenerateRouteID(key))
}

// Len returns the number of cached routes.
func (c *Cache) Len() int { return c.routes.Len() }

// Purge drops all cached routes. Computations in flight are unaffected and
// still deliver their result to every waiter.
func (c *Cache) Purge() { c.routes.Purge() }

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Size     int
	Capacity int
}

// Stats returns the current counters. Hits counts lookups answered from the
// cache, misses counts searches actually executed. Lookups that joined a
// running search count toward neither.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Size:     c.routes.Len(),
		Capacity: c.capacity,
	}
}
