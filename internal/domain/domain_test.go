package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, ClockMin(570), c)
	assert.Equal(t, "09:30", c.String())

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("12:60")
	assert.Error(t, err)
	_, err = ParseClock("noon")
	assert.Error(t, err)
}

func TestHaversineMeters(t *testing.T) {
	sapporo := Point{Lat: 43.0618, Lng: 141.3545}
	otaru := Point{Lat: 43.1907, Lng: 140.9947}

	d := HaversineMeters(sapporo, otaru)
	assert.InDelta(t, 32_600, d, 1_500)
	assert.Zero(t, HaversineMeters(sapporo, sapporo))
}

func TestCorridorValidate(t *testing.T) {
	line := &Corridor{
		Type:  CorridorLineString,
		Lines: [][]Point{{{Lat: 43.0, Lng: 141.3}, {Lat: 43.1, Lng: 141.4}}},
	}
	assert.NoError(t, line.Validate())

	var nilCorridor *Corridor
	assert.NoError(t, nilCorridor.Validate())

	bad := &Corridor{Type: "Circle", Lines: line.Lines}
	assert.ErrorContains(t, bad.Validate(), "unsupported corridor type")

	empty := &Corridor{Type: CorridorLineString}
	assert.ErrorContains(t, empty.Validate(), "no coordinates")

	// Polygon rings need three points; a line only needs two.
	twoPointRing := &Corridor{
		Type:  CorridorPolygon,
		Lines: [][]Point{{{Lat: 43.0, Lng: 141.3}, {Lat: 43.1, Lng: 141.4}}},
	}
	assert.ErrorContains(t, twoPointRing.Validate(), "need >= 3")
}

func TestCorridorDistanceMeters(t *testing.T) {
	c := &Corridor{
		Type:  CorridorLineString,
		Lines: [][]Point{{{Lat: 43.0, Lng: 141.0}, {Lat: 43.0, Lng: 141.5}}},
	}

	onLine := Point{Lat: 43.0, Lng: 141.25}
	assert.InDelta(t, 0, c.DistanceMeters(onLine), 50)

	// ~11km north of the line.
	north := Point{Lat: 43.1, Lng: 141.25}
	assert.InDelta(t, 11_100, c.DistanceMeters(north), 300)
}

func TestPolygonCorridorContainment(t *testing.T) {
	c := &Corridor{
		Type: CorridorPolygon,
		Lines: [][]Point{{
			{Lat: 43.0, Lng: 141.0},
			{Lat: 43.0, Lng: 141.5},
			{Lat: 43.3, Lng: 141.5},
			{Lat: 43.3, Lng: 141.0},
		}},
	}

	inside := Point{Lat: 43.15, Lng: 141.25}
	assert.Zero(t, c.DistanceMeters(inside))

	outside := Point{Lat: 43.5, Lng: 141.25}
	assert.Greater(t, c.DistanceMeters(outside), 10_000.0)
}

func TestDirectionValidate(t *testing.T) {
	d := &RouteDirection{ID: "d1", CountryCode: "JP", RolloutPercent: 100}
	assert.NoError(t, d.Validate())

	d.CountryCode = ""
	assert.ErrorContains(t, d.Validate(), "country code required")

	d.CountryCode = "JP"
	d.RolloutPercent = 101
	assert.ErrorContains(t, d.Validate(), "rollout percent")

	d.RolloutPercent = 50
	d.Seasonality.BestMonths = []int{7}
	d.Seasonality.AvoidMonths = []int{7}
	assert.ErrorContains(t, d.Validate(), "both best and avoid")
}

func TestDirectionSelectable(t *testing.T) {
	assert.True(t, (&RouteDirection{Status: DirectionActive}).Selectable())
	assert.False(t, (&RouteDirection{Status: DirectionDraft}).Selectable())
	assert.True(t, (&RouteDirection{Status: DirectionDraft, IsActiveLegacy: true}).Selectable())
	assert.False(t, (&RouteDirection{Status: DirectionDeprecated, IsActiveLegacy: true}).Selectable())
}

func TestPlanNodeHelpers(t *testing.T) {
	virtual := &PlanNode{ID: "m#w1", Meta: NodeMeta{OriginID: "m"}}
	assert.Equal(t, "m", virtual.Origin())

	real := &PlanNode{ID: "m"}
	assert.Equal(t, "m", real.Origin())

	assert.Equal(t, 5, (&PlanNode{}).EffectivePriority())
	assert.Equal(t, 2, (&PlanNode{Constraints: NodeConstraints{PriorityLevel: 2}}).EffectivePriority())
	assert.Equal(t, 5, (&PlanNode{Constraints: NodeConstraints{PriorityLevel: 9}}).EffectivePriority())
}

func TestPaceCompatibility(t *testing.T) {
	assert.Contains(t, PaceCompatibility[UserPaceRelaxed], PaceLight)
	assert.Contains(t, PaceCompatibility[UserPaceIntense], PaceChallenge)
	// Moderate route pace is acceptable at every user pace.
	for _, up := range []UserPace{UserPaceRelaxed, UserPaceModerate, UserPaceIntense} {
		assert.Contains(t, PaceCompatibility[up], PaceModerate)
	}
}
