package datasource

import (
	"context"
)

// baseAdapter carries the declaration triple shared by the built-ins.
type baseAdapter struct {
	name      string
	priority  int
	countries []string
}

func (b baseAdapter) Name() string                 { return b.name }
func (b baseAdapter) Priority() int                { return b.priority }
func (b baseAdapter) SupportedCountries() []string { return b.countries }

// BaselineWeather is the wildcard weather fallback: climatological averages,
// no live data.
type BaselineWeather struct{ baseAdapter }

func NewBaselineWeather() *BaselineWeather {
	return &BaselineWeather{baseAdapter{name: "baseline-weather", priority: 100, countries: []string{Wildcard}}}
}

func (a *BaselineWeather) Weather(_ context.Context, q Query) (WeatherReport, error) {
	return WeatherReport{
		Summary:      "seasonal average, no live forecast",
		TempC:        15,
		PrecipProb:   0.3,
		ProviderName: a.name,
	}, nil
}

// BaselineRoad is the wildcard road fallback that assumes roads are open.
type BaselineRoad struct{ baseAdapter }

func NewBaselineRoad() *BaselineRoad {
	return &BaselineRoad{baseAdapter{name: "baseline-road", priority: 100, countries: []string{Wildcard}}}
}

func (a *BaselineRoad) RoadStatus(_ context.Context, _ Query) (RoadStatus, error) {
	return RoadStatus{Open: true, ProviderName: a.name}, nil
}

// JMAWeather serves Japan with a finer forecast shape.
type JMAWeather struct{ baseAdapter }

func NewJMAWeather() *JMAWeather {
	return &JMAWeather{baseAdapter{name: "jma-weather", priority: 10, countries: []string{"JP"}}}
}

func (a *JMAWeather) Weather(_ context.Context, q Query) (WeatherReport, error) {
	report := WeatherReport{
		Summary:      "JMA regional forecast",
		TempC:        18,
		PrecipProb:   0.2,
		ProviderName: a.name,
	}
	// Typhoon season advisory for the summer months.
	if m := q.Date.Month(); m >= 7 && m <= 10 {
		report.Advisories = append(report.Advisories, "typhoon season, check day-of forecast")
	}
	return report, nil
}

// JPTransit serves Japanese rail schedule lookups.
type JPTransit struct{ baseAdapter }

func NewJPTransit() *JPTransit {
	return &JPTransit{baseAdapter{name: "jp-transit", priority: 10, countries: []string{"JP"}}}
}

func (a *JPTransit) TransportSchedule(_ context.Context, q Query) (Schedule, error) {
	return Schedule{
		Entries: []ScheduleEntry{
			{Line: "local", Departure: "08:00", Arrival: "08:40"},
			{Line: "local", Departure: "09:00", Arrival: "09:40"},
		},
		ProviderName: a.name,
	}, nil
}

// BaselineTransit is the wildcard schedule fallback: no known departures.
type BaselineTransit struct{ baseAdapter }

func NewBaselineTransit() *BaselineTransit {
	return &BaselineTransit{baseAdapter{name: "baseline-transit", priority: 100, countries: []string{Wildcard}}}
}

func (a *BaselineTransit) TransportSchedule(_ context.Context, _ Query) (Schedule, error) {
	return Schedule{ProviderName: a.name}, nil
}

// BaselineFerry is the wildcard ferry fallback: no known crossings.
type BaselineFerry struct{ baseAdapter }

func NewBaselineFerry() *BaselineFerry {
	return &BaselineFerry{baseAdapter{name: "baseline-ferry", priority: 100, countries: []string{Wildcard}}}
}

func (a *BaselineFerry) FerrySchedule(_ context.Context, _ Query) (Schedule, error) {
	return Schedule{ProviderName: a.name}, nil
}

// JPFerry serves Japanese island crossings.
type JPFerry struct{ baseAdapter }

func NewJPFerry() *JPFerry {
	return &JPFerry{baseAdapter{name: "jp-ferry", priority: 10, countries: []string{"JP"}}}
}

func (a *JPFerry) FerrySchedule(_ context.Context, q Query) (Schedule, error) {
	entries := []ScheduleEntry{
		{Line: "morning crossing", Departure: "08:30", Arrival: "10:00"},
		{Line: "afternoon crossing", Departure: "14:30", Arrival: "16:00"},
	}
	// Winter swell cancels the afternoon run.
	if m := q.Date.Month(); m == 12 || m <= 2 {
		entries = entries[:1]
		entries[0].Notes = "winter timetable, afternoon crossing suspended"
	}
	return Schedule{Entries: entries, ProviderName: a.name}, nil
}

// RegisterBuiltins installs the stock adapters on a registry.
func RegisterBuiltins(r *Registry) {
	r.Register(KindWeather, NewBaselineWeather())
	r.Register(KindWeather, NewJMAWeather())
	r.Register(KindRoad, NewBaselineRoad())
	r.Register(KindTransport, NewBaselineTransit())
	r.Register(KindTransport, NewJPTransit())
	r.Register(KindFerry, NewBaselineFerry())
	r.Register(KindFerry, NewJPFerry())
}
