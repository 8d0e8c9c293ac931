package service

import (
	"context"
	"time"

	"github.com/alexanderramin/itinera/internal/cache"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/poigen"
)

type candidateServiceImpl struct {
	generator *poigen.Generator
	cache     *cache.PoolCache
	observer  UseCaseObserver
}

// NewCandidateService builds the cache-aware pool generation service.
func NewCandidateService(generator *poigen.Generator, poolCache *cache.PoolCache, observers ...UseCaseObserver) CandidateService {
	return &candidateServiceImpl{
		generator: generator,
		cache:     poolCache,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *candidateServiceImpl) Generate(ctx context.Context, d *domain.RouteDirection, regions []string, bufferMeters float64) (pool []domain.ActivityCandidate, err error) {
	if d == nil {
		return nil, &contract.PlanError{Code: contract.ErrInvalidRequest, Message: "direction required"}
	}

	start := time.Now()
	cached := false
	defer func() {
		observe(ctx, s.observer, "candidate_pool", start, err, map[string]any{
			"direction": d.ID,
			"cached":    cached,
			"pool_size": len(pool),
		})
	}()

	// Region-filtered pools are not cached: the fingerprint key deliberately
	// covers only the direction signature.
	cacheable := len(regions) == 0
	if cacheable && s.cache != nil {
		if hit, ok := s.cache.Get(ctx, d, bufferMeters); ok {
			cached = true
			return hit, nil
		}
	}

	pool, err = s.generator.Generate(ctx, poigen.Request{
		Direction:    d,
		Regions:      regions,
		BufferMeters: bufferMeters,
	})
	if err != nil {
		return nil, err
	}

	if cacheable && s.cache != nil && len(pool) > 0 {
		s.cache.Put(ctx, d, bufferMeters, pool)
	}
	return pool, nil
}
