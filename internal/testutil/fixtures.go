package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Direction options
type DirectionOption func(*domain.RouteDirection)

func WithTags(tags ...string) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.Tags = tags
	}
}

func WithRegions(regions ...string) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.Regions = regions
	}
}

func WithStatus(s domain.DirectionStatus) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.Status = s
	}
}

func WithRollout(percent int) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.RolloutPercent = percent
	}
}

func WithBestMonths(months ...int) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.Seasonality.BestMonths = months
	}
}

func WithAvoidMonths(months ...int) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.Seasonality.AvoidMonths = months
	}
}

func WithDailyPace(p domain.DailyPace) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.Skeleton.DailyPace = p
	}
}

func WithSignature(types []string, examples []string) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.SignaturePois.Types = types
		d.SignaturePois.Examples = examples
	}
}

func WithCorridor(c *domain.Corridor, bufferMeters float64) DirectionOption {
	return func(d *domain.RouteDirection) {
		d.Corridor = c
		d.BufferMeters = bufferMeters
	}
}

func NewTestDirection(id, country string, opts ...DirectionOption) *domain.RouteDirection {
	now := time.Now().UTC()
	d := &domain.RouteDirection{
		ID:             id,
		UUID:           uuid.New().String(),
		CountryCode:    country,
		Name:           id,
		NameEN:         id,
		Status:         domain.DirectionActive,
		Version:        1,
		RolloutPercent: 100,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Place options
type PlaceOption func(*domain.Place)

func WithCanonicalType(ct string) PlaceOption {
	return func(p *domain.Place) {
		p.Metadata.CanonicalType = ct
	}
}

func WithRegionKey(key string) PlaceOption {
	return func(p *domain.Place) {
		p.Metadata.RegionKey = key
	}
}

func WithGeo(lat, lng float64) PlaceOption {
	return func(p *domain.Place) {
		p.Geo = domain.Point{Lat: lat, Lng: lng}
	}
}

func WithElevation(m float64) PlaceOption {
	return func(p *domain.Place) {
		p.Metadata.ElevationM = m
	}
}

func WithRating(r float64) PlaceOption {
	return func(p *domain.Place) {
		p.Metadata.Rating = &r
	}
}

func NewTestPlace(name, country string, opts ...PlaceOption) *domain.Place {
	now := time.Now().UTC()
	p := &domain.Place{
		UUID:        uuid.New().String(),
		Name:        name,
		NameEN:      name,
		CountryCode: country,
		Metadata: domain.PlaceMetadata{
			CanonicalType: "poi",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
