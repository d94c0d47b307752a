package routecache_test

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/parknav/parknav/internal/core/domain"
	"github.com/parknav/parknav/internal/engine/routecache"
)

func testKey(building string, version int64, endCol int) domain.RouteKey {
	return domain.RouteKey{
		Building: building,
		Version:  version,
		Start:    domain.Coord{Level: 0, Row: 0, Col: 0},
		End:      domain.Coord{Level: 0, Row: 0, Col: endCol},
	}
}

func testRoute(dist float64) *domain.Route {
	return &domain.Route{
		Cells: []domain.Cell{
			{Coord: domain.Coord{Level: 0, Row: 0, Col: 0}, Kind: domain.KindEntrance},
			{Coord: domain.Coord{Level: 0, Row: 0, Col: 1}, Kind: domain.KindCorridor},
		},
		TotalDistance: dist,
		StepCount:     1,
	}
}

func TestNew_RejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := routecache.New(capacity)
		require.ErrorIs(t, err, domain.ErrInvalidCacheCapacity)
	}
}

func TestCache_HitAvoidsRecompute(t *testing.T) {
	c, err := routecache.New(4)
	require.NoError(t, err)

	var computed atomic.Int32
	want := testRoute(2)
	compute := func(context.Context) (*domain.Route, error) {
		computed.Add(1)
		return want, nil
	}

	first, err := c.GetOrCompute(context.Background(), testKey("B1", 1, 1), compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute(context.Background(), testKey("B1", 1, 1), compute)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, computed.Load())

	stats := c.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 4, stats.Capacity)
}

func TestCache_ConcurrentCallsShareOneComputation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c, err := routecache.New(4)
		require.NoError(t, err)

		var computed atomic.Int32
		release := make(chan struct{})
		want := testRoute(3)

		const callers = 16
		results := make(chan *domain.Route, callers)
		errs := make(chan error, callers)
		for i := 0; i < callers; i++ {
			go func() {
				route, err := c.GetOrCompute(context.Background(), testKey("B1", 1, 2), func(context.Context) (*domain.Route, error) {
					computed.Add(1)
					<-release
					return want, nil
				})
				errs <- err
				results <- route
			}()
		}

		// All callers are now parked on the single in-flight search.
		synctest.Wait()
		close(release)
		synctest.Wait()

		for i := 0; i < callers; i++ {
			require.NoError(t, <-errs)
			assert.Same(t, want, <-results)
		}
		assert.EqualValues(t, 1, computed.Load())
	})
}

func TestCache_FailuresAreNotCached(t *testing.T) {
	c, err := routecache.New(4)
	require.NoError(t, err)

	var computed atomic.Int32
	boom := zerr.New("graph unavailable")
	key := testKey("B1", 1, 3)

	_, err = c.GetOrCompute(context.Background(), key, func(context.Context) (*domain.Route, error) {
		computed.Add(1)
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, c.Contains(key))

	// The next call for the same key computes again.
	want := testRoute(4)
	route, err := c.GetOrCompute(context.Background(), key, func(context.Context) (*domain.Route, error) {
		computed.Add(1)
		return want, nil
	})
	require.NoError(t, err)
	assert.Same(t, want, route)
	assert.True(t, c.Contains(key))
	assert.EqualValues(t, 2, computed.Load())
}

func TestCache_VersionIsPartOfTheKey(t *testing.T) {
	c, err := routecache.New(4)
	require.NoError(t, err)

	var computed atomic.Int32
	compute := func(context.Context) (*domain.Route, error) {
		computed.Add(1)
		return testRoute(float64(computed.Load())), nil
	}

	v1, err := c.GetOrCompute(context.Background(), testKey("B1", 1, 1), compute)
	require.NoError(t, err)
	v2, err := c.GetOrCompute(context.Background(), testKey("B1", 2, 1), compute)
	require.NoError(t, err)

	assert.NotSame(t, v1, v2)
	assert.EqualValues(t, 2, computed.Load())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := routecache.New(2)
	require.NoError(t, err)

	compute := func(context.Context) (*domain.Route, error) {
		return testRoute(1), nil
	}

	for col := 1; col <= 2; col++ {
		_, err := c.GetOrCompute(context.Background(), testKey("B1", 1, col), compute)
		require.NoError(t, err)
	}

	// Touch the first key so the second one is the eviction candidate.
	_, err = c.GetOrCompute(context.Background(), testKey("B1", 1, 1), compute)
	require.NoError(t, err)

	_, err = c.GetOrCompute(context.Background(), testKey("B1", 1, 3), compute)
	require.NoError(t, err)

	assert.True(t, c.Contains(testKey("B1", 1, 1)))
	assert.False(t, c.Contains(testKey("B1", 1, 2)))
	assert.True(t, c.Contains(testKey("B1", 1, 3)))
	assert.Equal(t, 2, c.Len())
}

func TestCache_PurgeDropsAllRoutes(t *testing.T) {
	c, err := routecache.New(4)
	require.NoError(t, err)

	var computed atomic.Int32
	compute := func(context.Context) (*domain.Route, error) {
		computed.Add(1)
		return testRoute(1), nil
	}

	_, err = c.GetOrCompute(context.Background(), testKey("B1", 1, 1), compute)
	require.NoError(t, err)
	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, err = c.GetOrCompute(context.Background(), testKey("B1", 1, 1), compute)
	require.NoError(t, err)
	assert.EqualValues(t, 2, computed.Load())
}
