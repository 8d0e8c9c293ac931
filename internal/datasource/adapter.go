// Package datasource routes weather, road, transit, and ferry queries to
// country-specific adapters registered by priority.
package datasource

import (
	"context"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Kind names one adapter service family.
type Kind string

const (
	KindWeather   Kind = "weather"
	KindRoad      Kind = "roadStatus"
	KindTransport Kind = "transportSchedule"
	KindFerry     Kind = "ferrySchedule"
)

// CountryUnknown is the sentinel for coordinates outside every configured
// bounding box. Wildcard adapters still serve it.
const CountryUnknown = "UNKNOWN"

// Wildcard in SupportedCountries matches any country code.
const Wildcard = "*"

// Adapter is the common capability surface every data-source adapter
// declares. Lower priority wins.
type Adapter interface {
	Name() string
	Priority() int
	SupportedCountries() []string
}

// Query is the shared request shape: a location and an optional day.
type Query struct {
	Point domain.Point
	Date  time.Time
}

type WeatherReport struct {
	Summary      string
	TempC        float64
	PrecipProb   float64
	WindSpeedKmh float64
	Advisories   []string
	ProviderName string
}

type RoadStatus struct {
	Open         bool
	Restrictions []string
	ProviderName string
}

type ScheduleEntry struct {
	Line      string
	Departure string // HH:MM local
	Arrival   string
	Notes     string
}

type Schedule struct {
	Entries      []ScheduleEntry
	ProviderName string
}

type WeatherAdapter interface {
	Adapter
	Weather(ctx context.Context, q Query) (WeatherReport, error)
}

type RoadAdapter interface {
	Adapter
	RoadStatus(ctx context.Context, q Query) (RoadStatus, error)
}

type TransportAdapter interface {
	Adapter
	TransportSchedule(ctx context.Context, q Query) (Schedule, error)
}

type FerryAdapter interface {
	Adapter
	FerrySchedule(ctx context.Context, q Query) (Schedule, error)
}

func supports(a Adapter, country string) (exact, wildcard bool) {
	for _, c := range a.SupportedCountries() {
		switch c {
		case country:
			exact = true
		case Wildcard:
			wildcard = true
		}
	}
	return exact, wildcard
}
