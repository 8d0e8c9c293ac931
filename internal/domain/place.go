package domain

import "time"

// Place is a stored point of interest. The planner only reads places; ingest
// scripts own the write path.
type Place struct {
	UUID        string
	Name        string
	NameEN      string
	CountryCode string
	Geo         Point
	Metadata    PlaceMetadata

	// Extensions round-trips fields the planner does not model.
	Extensions map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PlaceMetadata struct {
	CanonicalType string   `json:"canonical_type"`
	RegionKey     string   `json:"region_key"`
	ElevationM    float64  `json:"elevation_m"`
	Tags          []string `json:"tags"`
	Rating        *float64 `json:"rating,omitempty"`
	IndoorOutdoor string   `json:"indoor_outdoor,omitempty"`
}

// ActivityCandidate is a place projected into the solver's vocabulary by the
// POI generator.
type ActivityCandidate struct {
	UUID               string
	Name               string
	Geo                Point
	Type               string
	DurationMin        int
	RiskLevel          RiskLevel
	WeatherSensitivity int
	IndoorOutdoor      IndoorOutdoor
	IntentTags         []string
	QualityScore       float64
	Priority           PoolPriority
	MustSee            bool
	RegionKey          string
}
