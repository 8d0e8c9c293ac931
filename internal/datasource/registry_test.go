package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

var (
	tokyo  = domain.Point{Lat: 35.68, Lng: 139.76}
	midSea = domain.Point{Lat: 0, Lng: -30}
	zurich = domain.Point{Lat: 47.37, Lng: 8.54}
)

func testRegistry() *Registry {
	return NewRegistry(NewGeocoder(config.Default().Countries))
}

type stubWeather struct {
	baseAdapter
	err error
}

func (s *stubWeather) Weather(_ context.Context, _ Query) (WeatherReport, error) {
	if s.err != nil {
		return WeatherReport{}, s.err
	}
	return WeatherReport{ProviderName: s.name}, nil
}

func TestGeocoderBoundingBoxes(t *testing.T) {
	g := NewGeocoder(config.Default().Countries)
	assert.Equal(t, "JP", g.Resolve(tokyo))
	assert.Equal(t, "CH", g.Resolve(zurich))
	assert.Equal(t, CountryUnknown, g.Resolve(midSea))
}

func TestAdapterForPrefersExactLowestPriority(t *testing.T) {
	r := testRegistry()
	r.Register(KindWeather, &stubWeather{baseAdapter: baseAdapter{name: "jp-low", priority: 20, countries: []string{"JP"}}})
	r.Register(KindWeather, &stubWeather{baseAdapter: baseAdapter{name: "jp-high", priority: 5, countries: []string{"JP"}}})
	r.Register(KindWeather, &stubWeather{baseAdapter: baseAdapter{name: "global", priority: 1, countries: []string{Wildcard}}})

	a, err := r.AdapterFor(KindWeather, "JP")
	require.NoError(t, err)
	assert.Equal(t, "jp-high", a.Name())
}

func TestAdapterForFallsBackToWildcard(t *testing.T) {
	r := testRegistry()
	r.Register(KindWeather, &stubWeather{baseAdapter: baseAdapter{name: "jp-only", priority: 1, countries: []string{"JP"}}})
	r.Register(KindWeather, &stubWeather{baseAdapter: baseAdapter{name: "global", priority: 50, countries: []string{Wildcard}}})

	a, err := r.AdapterFor(KindWeather, "CH")
	require.NoError(t, err)
	assert.Equal(t, "global", a.Name())

	a, err = r.AdapterFor(KindWeather, CountryUnknown)
	require.NoError(t, err)
	assert.Equal(t, "global", a.Name())
}

func TestAdapterForNoAdapter(t *testing.T) {
	r := testRegistry()
	r.Register(KindWeather, &stubWeather{baseAdapter: baseAdapter{name: "jp-only", priority: 1, countries: []string{"JP"}}})

	_, err := r.AdapterFor(KindWeather, "NZ")
	var pe *contract.PlanError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, contract.ErrNoAdapter, pe.Code)

	_, err = r.AdapterFor(KindFerry, "JP")
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, contract.ErrNoAdapter, pe.Code)
}

func TestAdapterForMemoisesAndInvalidates(t *testing.T) {
	r := testRegistry()
	r.Register(KindWeather, &stubWeather{baseAdapter: baseAdapter{name: "global", priority: 50, countries: []string{Wildcard}}})

	a, err := r.AdapterFor(KindWeather, "JP")
	require.NoError(t, err)
	assert.Equal(t, "global", a.Name())

	// A better adapter registered later replaces the memoised pick.
	r.Register(KindWeather, &stubWeather{baseAdapter: baseAdapter{name: "jp-live", priority: 1, countries: []string{"JP"}}})
	a, err = r.AdapterFor(KindWeather, "JP")
	require.NoError(t, err)
	assert.Equal(t, "jp-live", a.Name())
}

func TestWeatherDispatchByLocation(t *testing.T) {
	r := testRegistry()
	RegisterBuiltins(r)

	rep, err := r.Weather(context.Background(), Query{Point: tokyo, Date: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, "jma-weather", rep.ProviderName)
	assert.NotEmpty(t, rep.Advisories)

	rep, err = r.Weather(context.Background(), Query{Point: zurich})
	require.NoError(t, err)
	assert.Equal(t, "baseline-weather", rep.ProviderName)
}

func TestFerryDispatchByLocationAndSeason(t *testing.T) {
	r := testRegistry()
	RegisterBuiltins(r)

	sched, err := r.FerrySchedule(context.Background(), Query{Point: tokyo, Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, "jp-ferry", sched.ProviderName)
	assert.Len(t, sched.Entries, 2)

	sched, err = r.FerrySchedule(context.Background(), Query{Point: tokyo, Date: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Len(t, sched.Entries, 1)
	assert.NotEmpty(t, sched.Entries[0].Notes)

	sched, err = r.FerrySchedule(context.Background(), Query{Point: zurich})
	require.NoError(t, err)
	assert.Equal(t, "baseline-ferry", sched.ProviderName)
	assert.Empty(t, sched.Entries)
}

func TestSafetyAssessmentDegradesPerSource(t *testing.T) {
	r := testRegistry()
	r.Register(KindWeather, &stubWeather{
		baseAdapter: baseAdapter{name: "down", priority: 1, countries: []string{Wildcard}},
		err:         errors.New("upstream down"),
	})
	r.Register(KindRoad, NewBaselineRoad())
	// No transport adapter: the alerts source degrades to empty.

	svc := NewSafetyService(r, time.Second, nil)
	out := svc.Assess(context.Background(), Query{Point: tokyo})

	assert.True(t, out.RoadOpen)
	assert.Empty(t, out.Alerts)
	assert.ElementsMatch(t, []string{"weather", "alerts"}, out.DegradedBy)
}

func TestSafetyAssessmentHappyPath(t *testing.T) {
	r := testRegistry()
	RegisterBuiltins(r)

	svc := NewSafetyService(r, time.Second, nil)
	out := svc.Assess(context.Background(), Query{Point: tokyo, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)})

	assert.True(t, out.RoadOpen)
	assert.Equal(t, "jma-weather", out.Weather.ProviderName)
	assert.Empty(t, out.DegradedBy)
}
