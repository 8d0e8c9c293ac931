package contract

import (
	"github.com/alexanderramin/itinera/internal/domain"
)

// PlanRequest is the end-to-end planning contract: pick a direction, build
// the pool, and schedule one day starting from Origin.
type PlanRequest struct {
	RequestID   string
	CountryCode string
	Intent      DirectionIntent
	Month       *int
	Identity    *Identity

	Origin   domain.Point
	DayStart domain.ClockMin
	DayEnd   domain.ClockMin
	Timezone string

	Pacing            domain.UserPace
	EarliestFirstStop *domain.ClockMin
	Lunch             *LunchPolicy

	// Regions narrows pool generation; BufferMeters overrides the direction's
	// corridor buffer when positive.
	Regions      []string
	BufferMeters float64

	// MaxStops caps how many candidates are handed to the solver, highest
	// priority first. Zero means no cap.
	MaxStops int
}

// PlanResponse bundles everything a plan request produces.
type PlanResponse struct {
	Result      *OptimizationResult
	DecisionLog DecisionLog
	Terrain     TerrainFacts
	Trace       *Trace
}
