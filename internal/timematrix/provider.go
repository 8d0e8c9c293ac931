package timematrix

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Provider resolves a point-to-point travel duration in minutes. Providers
// may fail; the matrix builder substitutes the straight-line estimate.
type Provider interface {
	Duration(ctx context.Context, from, to domain.Point, mode domain.TravelMode) (int, error)
}

// Estimate returns the straight-line fallback duration: great-circle distance
// at a mode-specific speed.
func Estimate(from, to domain.Point, mode domain.TravelMode) int {
	km := domain.HaversineMeters(from, to) / 1000
	var kmh float64
	switch mode {
	case domain.ModeDrive:
		kmh = 25
	case domain.ModeTransit, domain.ModeMetro:
		if km <= 5 {
			kmh = 30
		} else {
			kmh = 40
		}
	default:
		kmh = 5 // walk
	}
	return int(math.Round(km / kmh * 60))
}

// EstimateProvider is a Provider that never calls out; it always returns the
// straight-line estimate. Used when no travel-time endpoint is configured.
type EstimateProvider struct{}

func (EstimateProvider) Duration(_ context.Context, from, to domain.Point, mode domain.TravelMode) (int, error) {
	return Estimate(from, to, mode), nil
}

type pairKey struct {
	fromLat, fromLng float64
	toLat, toLng     float64
	mode             domain.TravelMode
}

// CachedProvider is a read-through per-pair cache in front of a Provider.
// The lock is held only around the fetch of a missing key.
type CachedProvider struct {
	inner Provider

	mu    sync.Mutex
	pairs map[pairKey]int
}

// NewCachedProvider wraps inner with a process-lifetime pair cache.
func NewCachedProvider(inner Provider) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		pairs: make(map[pairKey]int),
	}
}

func (c *CachedProvider) Duration(ctx context.Context, from, to domain.Point, mode domain.TravelMode) (int, error) {
	key := pairKey{from.Lat, from.Lng, to.Lat, to.Lng, mode}

	c.mu.Lock()
	if min, ok := c.pairs[key]; ok {
		c.mu.Unlock()
		return min, nil
	}

	min, err := c.inner.Duration(ctx, from, to, mode)
	if err != nil {
		c.mu.Unlock()
		return 0, fmt.Errorf("travel duration %v->%v: %w", from, to, err)
	}
	c.pairs[key] = min
	c.mu.Unlock()
	return min, nil
}
