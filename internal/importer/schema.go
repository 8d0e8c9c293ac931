// Package importer loads direction and place datasets from JSON files into
// the store, validating before any row is written.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/itinera/internal/domain"
)

// DatasetSchema is the top-level JSON structure for a dataset import file.
// Places come first so directions can reference them by UUID.
type DatasetSchema struct {
	Places     []PlaceImport     `json:"places"`
	Directions []DirectionImport `json:"directions"`
}

// PlaceImport defines a place row in the import file.
type PlaceImport struct {
	UUID        string   `json:"uuid"`
	Name        string   `json:"name"`
	NameEN      string   `json:"name_en,omitempty"`
	CountryCode string   `json:"country_code"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Type        string   `json:"type"`
	RegionKey   string   `json:"region_key"`
	ElevationM  float64  `json:"elevation_m,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// DirectionImport defines a route direction template in the import file.
type DirectionImport struct {
	ID          string `json:"id"`
	CountryCode string `json:"country_code"`
	Name        string `json:"name"`
	NameEN      string `json:"name_en,omitempty"`

	Tags      []string `json:"tags,omitempty"`
	Regions   []string `json:"regions,omitempty"`
	EntryHubs []string `json:"entry_hubs,omitempty"`

	BestMonths  []int `json:"best_months,omitempty"`
	AvoidMonths []int `json:"avoid_months,omitempty"`

	DailyPace      string          `json:"daily_pace,omitempty"`
	SignatureTypes []string        `json:"signature_types,omitempty"`
	SignatureRefs  []string        `json:"signature_refs,omitempty"` // place UUIDs
	RiskFactors    []string        `json:"risk_factors,omitempty"`
	Corridor       *CorridorImport `json:"corridor,omitempty"`
	BufferMeters   float64         `json:"buffer_meters,omitempty"`
	Soft           *SoftImport     `json:"soft,omitempty"`

	Status         string   `json:"status,omitempty"`
	RolloutPercent *int     `json:"rollout_percent,omitempty"`
	Persona        []string `json:"persona,omitempty"`
	Locale         []string `json:"locale,omitempty"`
}

// CorridorImport defines the optional direction geometry, GeoJSON-style.
type CorridorImport struct {
	Type  string        `json:"type"`
	Lines [][]PointPair `json:"lines"`
}

// PointPair is a [lat, lng] coordinate pair.
type PointPair [2]float64

// SoftImport defines terrain soft constraints on a direction.
type SoftImport struct {
	MaxDailyAscentM int `json:"max_daily_ascent_m,omitempty"`
	MaxElevationM   int `json:"max_elevation_m,omitempty"`
	BufferTimeMin   int `json:"buffer_time_min,omitempty"`
}

// LoadDatasetSchema reads and parses a dataset import JSON file.
func LoadDatasetSchema(path string) (*DatasetSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema DatasetSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing dataset file: %w", err)
	}
	return &schema, nil
}

var validPaces = map[string]domain.DailyPace{
	"LIGHT":     domain.PaceLight,
	"MODERATE":  domain.PaceModerate,
	"INTENSE":   domain.PaceIntense,
	"RELAX":     domain.PaceRelax,
	"BALANCED":  domain.PaceBalanced,
	"CHALLENGE": domain.PaceChallenge,
}

var validRiskFactors = map[string]bool{
	"altitude_sickness": true,
	"road_closure":      true,
	"ferry_dependent":   true,
	"weather_window":    true,
}

var validCorridorTypes = map[string]domain.CorridorType{
	"LineString":      domain.CorridorLineString,
	"MultiLineString": domain.CorridorMultiLineString,
	"Polygon":         domain.CorridorPolygon,
}

var validStatuses = map[string]domain.DirectionStatus{
	"draft":      domain.DirectionDraft,
	"active":     domain.DirectionActive,
	"deprecated": domain.DirectionDeprecated,
}
