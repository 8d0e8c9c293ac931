// Package poigen builds the candidate activity pool for a selected route
// direction: signature examples first, then type-matched and region-matched
// places gated by the direction's corridor.
package poigen

import (
	"context"
	"fmt"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/repository"
)

const (
	// DefaultBufferMeters is the corridor buffer when the direction sets none.
	DefaultBufferMeters = 50_000

	typeMatchCap   = 50
	regionMatchCap = 30
)

// Request narrows pool generation for one direction.
type Request struct {
	Direction    *domain.RouteDirection
	Regions      []string // optional region filter
	BufferMeters float64  // 0 means the direction's buffer, then the default
}

// Generator assembles candidate pools from the place repository.
type Generator struct {
	places repository.PlaceRepo
}

func NewGenerator(places repository.PlaceRepo) *Generator {
	return &Generator{places: places}
}

// Generate produces the deduplicated candidate pool. Core signature places
// bypass the corridor; type and region matches honour it.
func (g *Generator) Generate(ctx context.Context, req Request) ([]domain.ActivityCandidate, error) {
	d := req.Direction
	if d == nil {
		return nil, fmt.Errorf("generate pool: direction required")
	}
	buffer := req.BufferMeters
	if buffer <= 0 {
		buffer = d.BufferMeters
	}
	if buffer <= 0 {
		buffer = DefaultBufferMeters
	}

	seen := make(map[string]bool)
	var pool []domain.ActivityCandidate

	add := func(places []*domain.Place, prio domain.PoolPriority) {
		for _, p := range places {
			if seen[p.UUID] {
				continue
			}
			seen[p.UUID] = true
			pool = append(pool, Project(p, prio))
		}
	}

	if len(d.SignaturePois.Examples) > 0 {
		core, err := g.places.FindByUUIDs(ctx, d.SignaturePois.Examples)
		if err != nil {
			return nil, fmt.Errorf("fetch signature places: %w", err)
		}
		add(core, domain.PoolCore)
	}

	if len(d.SignaturePois.Types) > 0 {
		typed, err := g.places.FindByTypeAndCorridor(ctx, d.SignaturePois.Types, req.Regions, d.Corridor, buffer, typeMatchCap)
		if err != nil {
			return nil, fmt.Errorf("fetch type-matched places: %w", err)
		}
		add(typed, domain.PoolRecommended)
	}

	if len(req.Regions) == 0 && len(d.Regions) > 0 {
		regional, err := g.places.FindByRegionsAndCorridor(ctx, d.Regions, d.Corridor, buffer, regionMatchCap)
		if err != nil {
			return nil, fmt.Errorf("fetch region-matched places: %w", err)
		}
		add(regional, domain.PoolOptional)
	}

	return pool, nil
}
