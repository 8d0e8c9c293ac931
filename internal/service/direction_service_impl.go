package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/cache"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/selector"
)

type directionServiceImpl struct {
	repo     repository.DirectionRepo
	cache    *cache.SelectionCache
	observer UseCaseObserver
}

// NewDirectionService builds the cache-aware direction selection service. A
// nil cache disables memoisation.
func NewDirectionService(repo repository.DirectionRepo, selCache *cache.SelectionCache, observers ...UseCaseObserver) DirectionService {
	return &directionServiceImpl{
		repo:     repo,
		cache:    selCache,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *directionServiceImpl) Select(ctx context.Context, req contract.SelectRequest) (resp contract.SelectResponse, err error) {
	start := time.Now()
	cached := false
	defer func() {
		observe(ctx, s.observer, "direction_select", start, err, map[string]any{
			"country": req.CountryCode,
			"cached":  cached,
			"ranked":  len(resp.Recommendations),
		})
	}()

	if req.CountryCode == "" {
		err = &contract.PlanError{Code: contract.ErrInvalidRequest, Message: "country code required"}
		return resp, err
	}

	if s.cache != nil {
		if hit, ok := s.cache.Get(ctx, req); ok {
			cached = true
			return hit, nil
		}
	}

	rows, err := s.repo.FindByCountry(ctx, req.CountryCode, repository.DirectionQuery{})
	if err != nil {
		err = fmt.Errorf("loading directions for %s: %w", req.CountryCode, err)
		return resp, err
	}
	if len(rows) == 0 {
		err = &contract.PlanError{
			Code:    contract.ErrNoDirections,
			Message: fmt.Sprintf("no active directions for country %s", req.CountryCode),
		}
		return resp, err
	}

	directions := make([]domain.RouteDirection, 0, len(rows))
	for _, d := range rows {
		directions = append(directions, *d)
	}
	resp = selector.Select(directions, req)

	if s.cache != nil && len(resp.Recommendations) > 0 {
		s.cache.Put(ctx, req, resp)
	}
	return resp, nil
}

func (s *directionServiceImpl) Get(ctx context.Context, id string) (*domain.RouteDirection, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading direction %s: %w", id, err)
	}
	return d, nil
}
