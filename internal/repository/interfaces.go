package repository

import (
	"context"

	"github.com/alexanderramin/itinera/internal/domain"
)

// DirectionQuery narrows a FindByCountry call.
type DirectionQuery struct {
	Tags              []string
	Limit             int
	IncludeDeprecated bool
}

// DirectionRepo reads route direction templates.
type DirectionRepo interface {
	FindByCountry(ctx context.Context, countryCode string, q DirectionQuery) ([]*domain.RouteDirection, error)
	GetByID(ctx context.Context, id string) (*domain.RouteDirection, error)
	Create(ctx context.Context, d *domain.RouteDirection) error
}

// PlaceRepo reads places. Corridor filtering uses a great-circle distance
// predicate against the supplied buffer; rows failing it are excluded.
type PlaceRepo interface {
	FindByUUIDs(ctx context.Context, uuids []string) ([]*domain.Place, error)
	FindByTypeAndCorridor(ctx context.Context, types []string, regions []string, corridor *domain.Corridor, bufferMeters float64, limit int) ([]*domain.Place, error)
	FindByRegionsAndCorridor(ctx context.Context, regions []string, corridor *domain.Corridor, bufferMeters float64, limit int) ([]*domain.Place, error)
	Create(ctx context.Context, p *domain.Place) error
}
