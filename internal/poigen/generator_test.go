package poigen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/domain"
)

type stubPlaceRepo struct {
	byUUID    []*domain.Place
	byType    []*domain.Place
	byRegion  []*domain.Place
	typeCalls int
	lastLimit int
	lastRegs  []string
}

func (s *stubPlaceRepo) FindByUUIDs(_ context.Context, _ []string) ([]*domain.Place, error) {
	return s.byUUID, nil
}

func (s *stubPlaceRepo) FindByTypeAndCorridor(_ context.Context, _ []string, regions []string, _ *domain.Corridor, _ float64, limit int) ([]*domain.Place, error) {
	s.typeCalls++
	s.lastRegs = regions
	s.lastLimit = limit
	return s.byType, nil
}

func (s *stubPlaceRepo) FindByRegionsAndCorridor(_ context.Context, _ []string, _ *domain.Corridor, _ float64, limit int) ([]*domain.Place, error) {
	s.lastLimit = limit
	return s.byRegion, nil
}

func (s *stubPlaceRepo) Create(_ context.Context, _ *domain.Place) error { return nil }

func place(uuid, canonicalType string) *domain.Place {
	return &domain.Place{
		UUID:     uuid,
		Name:     uuid,
		Metadata: domain.PlaceMetadata{CanonicalType: canonicalType},
	}
}

func testDirection() *domain.RouteDirection {
	return &domain.RouteDirection{
		ID:      "rd-1",
		Regions: []string{"hokkaido"},
		SignaturePois: domain.SignaturePois{
			Types:    []string{"museum"},
			Examples: []string{"sig-1"},
		},
	}
}

func TestGeneratePhasesAndDedup(t *testing.T) {
	repo := &stubPlaceRepo{
		byUUID:   []*domain.Place{place("sig-1", "nature")},
		byType:   []*domain.Place{place("sig-1", "nature"), place("m-1", "museum")},
		byRegion: []*domain.Place{place("r-1", "lake")},
	}
	g := NewGenerator(repo)

	pool, err := g.Generate(context.Background(), Request{Direction: testDirection()})
	require.NoError(t, err)

	require.Len(t, pool, 3)
	byUUID := map[string]domain.ActivityCandidate{}
	for _, c := range pool {
		byUUID[c.UUID] = c
	}
	assert.Equal(t, domain.PoolCore, byUUID["sig-1"].Priority)
	assert.True(t, byUUID["sig-1"].MustSee)
	assert.Equal(t, domain.PoolRecommended, byUUID["m-1"].Priority)
	assert.Equal(t, domain.PoolOptional, byUUID["r-1"].Priority)
	assert.False(t, byUUID["r-1"].MustSee)
}

func TestGenerateRegionFilterSkipsOptionalPhase(t *testing.T) {
	repo := &stubPlaceRepo{
		byType:   []*domain.Place{place("m-1", "museum")},
		byRegion: []*domain.Place{place("r-1", "lake")},
	}
	g := NewGenerator(repo)

	pool, err := g.Generate(context.Background(), Request{
		Direction: testDirection(),
		Regions:   []string{"hokkaido"},
	})
	require.NoError(t, err)

	require.Len(t, pool, 2)
	assert.Equal(t, []string{"hokkaido"}, repo.lastRegs)
	for _, c := range pool {
		assert.NotEqual(t, domain.PoolOptional, c.Priority)
	}
}

func TestGenerateRequiresDirection(t *testing.T) {
	g := NewGenerator(&stubPlaceRepo{})
	_, err := g.Generate(context.Background(), Request{})
	assert.Error(t, err)
}

func TestProjectHeuristics(t *testing.T) {
	rating := 4.0
	p := &domain.Place{
		UUID: "p1",
		Name: "Lake Trail",
		Metadata: domain.PlaceMetadata{
			CanonicalType: "lake",
			ElevationM:    3500,
			Tags:          []string{"scenic"},
			Rating:        &rating,
			RegionKey:     "hokkaido",
		},
	}

	c := Project(p, domain.PoolRecommended)
	assert.Equal(t, 120, c.DurationMin)
	assert.Equal(t, domain.RiskMedium, c.RiskLevel)
	assert.Equal(t, 3, c.WeatherSensitivity)
	assert.Equal(t, domain.Outdoor, c.IndoorOutdoor)
	assert.Equal(t, 0.8, c.QualityScore)
	assert.Equal(t, "hokkaido", c.RegionKey)
	assert.Contains(t, c.IntentTags, "scenic")
	assert.Contains(t, c.IntentTags, "nature")
}

func TestProjectDefaults(t *testing.T) {
	c := Project(place("p2", "viewpoint"), domain.PoolOptional)
	assert.Equal(t, 60, c.DurationMin)
	assert.Equal(t, domain.RiskLow, c.RiskLevel)
	assert.Equal(t, 2, c.WeatherSensitivity)
	assert.Equal(t, domain.Mixed, c.IndoorOutdoor)
	assert.Equal(t, 0.5, c.QualityScore)
}

func TestProjectMuseumIndoor(t *testing.T) {
	c := Project(place("p3", "museum"), domain.PoolCore)
	assert.Equal(t, 90, c.DurationMin)
	assert.Equal(t, 0, c.WeatherSensitivity)
	assert.Equal(t, domain.Indoor, c.IndoorOutdoor)
	assert.True(t, c.MustSee)
}
