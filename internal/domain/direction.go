package domain

import (
	"fmt"
	"time"
)

// RouteDirection is a country-scoped itinerary template. Directions are
// created by the ingest tooling; the planner reads them and never mutates.
type RouteDirection struct {
	ID          string
	UUID        string
	CountryCode string
	Name        string
	NameCN      string
	NameEN      string

	Tags      []string
	Regions   []string
	EntryHubs []string

	Seasonality   Seasonality
	Hard          HardConstraints
	Soft          SoftConstraints
	Objectives    Objectives
	RiskProfile   RiskProfile
	SignaturePois SignaturePois
	Skeleton      ItinerarySkeleton

	Corridor       *Corridor
	BufferMeters   float64
	Status         DirectionStatus
	IsActiveLegacy bool
	Version        int
	RolloutPercent int
	Audience       AudienceFilter

	// Extensions carries unknown fields from the stored JSON so they
	// round-trip through updates by other tooling.
	Extensions map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Seasonality struct {
	BestMonths  []int `json:"best_months"`
	AvoidMonths []int `json:"avoid_months"`
}

type HardConstraints struct {
	MaxDailyRapidAscentM int  `json:"max_daily_rapid_ascent_m"`
	MaxSlopePct          int  `json:"max_slope_pct"`
	RequiresPermit       bool `json:"requires_permit"`
	RequiresGuide        bool `json:"requires_guide"`
	RapidAscentForbidden bool `json:"rapid_ascent_forbidden"`
}

type SoftConstraints struct {
	MaxDailyAscentM int `json:"max_daily_ascent_m"`
	MaxElevationM   int `json:"max_elevation_m"`
	BufferTimeMin   int `json:"buffer_time_min"`
}

type Objectives struct {
	Weights map[string]float64 `json:"weights"`
}

type RiskProfile struct {
	AltitudeSickness    bool  `json:"altitude_sickness"`
	RoadClosure         bool  `json:"road_closure"`
	FerryDependent      bool  `json:"ferry_dependent"`
	WeatherWindow       bool  `json:"weather_window"`
	WeatherWindowMonths []int `json:"weather_window_months"`
}

type SignaturePois struct {
	Types    []string           `json:"types"`
	Examples []string           `json:"examples"` // place UUIDs
	Weights  map[string]float64 `json:"weights"`
}

// Trivial reports whether the signature set carries no real signal. Pool
// cache TTL drops from 24h to 6h for trivial signatures.
func (s SignaturePois) Trivial() bool {
	return len(s.Types) == 0 && len(s.Examples) == 0
}

type ItinerarySkeleton struct {
	DayThemes        []string  `json:"day_themes"`
	DailyPace        DailyPace `json:"daily_pace"`
	RestDaysRequired []int     `json:"rest_days_required"`
}

type AudienceFilter struct {
	Persona []string `json:"persona"`
	Locale  []string `json:"locale"`
}

// HasHighRisk reports whether the direction carries a risk factor that a
// low-tolerance traveller should avoid.
func (d *RouteDirection) HasHighRisk() bool {
	return d.RiskProfile.AltitudeSickness || d.RiskProfile.RoadClosure
}

// Selectable reports whether the direction may be offered at all, before
// rollout and audience gating.
func (d *RouteDirection) Selectable() bool {
	return d.Status == DirectionActive || (d.Status != DirectionDeprecated && d.IsActiveLegacy)
}

// Validate enforces the structural invariants on a direction template.
func (d *RouteDirection) Validate() error {
	if d.CountryCode == "" {
		return fmt.Errorf("direction %s: country code required", d.ID)
	}
	if d.RolloutPercent < 0 || d.RolloutPercent > 100 {
		return fmt.Errorf("direction %s: rollout percent %d out of range", d.ID, d.RolloutPercent)
	}
	best := make(map[int]bool, len(d.Seasonality.BestMonths))
	for _, m := range d.Seasonality.BestMonths {
		if m < 1 || m > 12 {
			return fmt.Errorf("direction %s: best month %d out of range", d.ID, m)
		}
		best[m] = true
	}
	for _, m := range d.Seasonality.AvoidMonths {
		if m < 1 || m > 12 {
			return fmt.Errorf("direction %s: avoid month %d out of range", d.ID, m)
		}
		if best[m] {
			return fmt.Errorf("direction %s: month %d in both best and avoid sets", d.ID, m)
		}
	}
	if d.Corridor != nil {
		if err := d.Corridor.Validate(); err != nil {
			return fmt.Errorf("direction %s: %w", d.ID, err)
		}
	}
	return nil
}
