package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/domain"
)

func TestConvertDatasetSchema(t *testing.T) {
	ds := validDataset()
	out := ConvertDatasetSchema(ds)

	require.Len(t, out.Places, 1)
	p := out.Places[0]
	assert.Equal(t, "p-1", p.UUID)
	assert.Equal(t, "museum", p.Metadata.CanonicalType)
	assert.Equal(t, "sapporo", p.Metadata.RegionKey)
	require.NotNil(t, p.Metadata.Rating)
	assert.Equal(t, 4.5, *p.Metadata.Rating)

	require.Len(t, out.Directions, 1)
	d := out.Directions[0]
	assert.Equal(t, "jp-hokkaido-classic", d.ID)
	assert.NotEmpty(t, d.UUID)
	assert.Equal(t, domain.PaceModerate, d.Skeleton.DailyPace)
	assert.Equal(t, []string{"nature"}, d.SignaturePois.Types)
	assert.Equal(t, []string{"p-1"}, d.SignaturePois.Examples)
	assert.NoError(t, d.Validate())
}

func TestConvertDirectionDefaults(t *testing.T) {
	out := ConvertDatasetSchema(&DatasetSchema{
		Directions: []DirectionImport{
			{ID: "d1", CountryCode: "CH", Name: "Alps"},
		},
	})

	d := out.Directions[0]
	assert.Equal(t, domain.DirectionActive, d.Status)
	assert.Equal(t, 100, d.RolloutPercent)
	assert.Equal(t, 1, d.Version)
	assert.True(t, d.Selectable())
}

func TestConvertDirectionOverrides(t *testing.T) {
	rollout := 25
	out := ConvertDatasetSchema(&DatasetSchema{
		Directions: []DirectionImport{{
			ID:             "d1",
			CountryCode:    "NP",
			Name:           "Everest Base Camp",
			Status:         "draft",
			RolloutPercent: &rollout,
			RiskFactors:    []string{"altitude_sickness", "weather_window"},
			Soft:           &SoftImport{MaxElevationM: 5364, MaxDailyAscentM: 500},
			Persona:        []string{"trekking"},
		}},
	})

	d := out.Directions[0]
	assert.Equal(t, domain.DirectionDraft, d.Status)
	assert.Equal(t, 25, d.RolloutPercent)
	assert.True(t, d.RiskProfile.AltitudeSickness)
	assert.True(t, d.RiskProfile.WeatherWindow)
	assert.False(t, d.RiskProfile.RoadClosure)
	assert.Equal(t, 5364, d.Soft.MaxElevationM)
	assert.Equal(t, []string{"trekking"}, d.Audience.Persona)
	assert.True(t, d.HasHighRisk())
}

func TestConvertCorridor(t *testing.T) {
	out := ConvertDatasetSchema(&DatasetSchema{
		Directions: []DirectionImport{{
			ID:          "d1",
			CountryCode: "JP",
			Name:        "Coastal Drive",
			Corridor: &CorridorImport{
				Type: "LineString",
				Lines: [][]PointPair{
					{{43.0, 141.3}, {43.1, 141.5}},
				},
			},
		}},
	})

	c := out.Directions[0].Corridor
	require.NotNil(t, c)
	assert.Equal(t, domain.CorridorLineString, c.Type)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, domain.Point{Lat: 43.0, Lng: 141.3}, c.Lines[0][0])
	assert.NoError(t, c.Validate())
}
