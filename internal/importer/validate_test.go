package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDataset() *DatasetSchema {
	rating := 4.5
	return &DatasetSchema{
		Places: []PlaceImport{
			{
				UUID:        "p-1",
				Name:        "Historic Village",
				CountryCode: "JP",
				Lat:         43.05,
				Lng:         141.35,
				Type:        "museum",
				RegionKey:   "sapporo",
				Rating:      &rating,
			},
		},
		Directions: []DirectionImport{
			{
				ID:             "jp-hokkaido-classic",
				CountryCode:    "JP",
				Name:           "Hokkaido Classic",
				Tags:           []string{"nature"},
				Regions:        []string{"sapporo"},
				BestMonths:     []int{7, 8},
				DailyPace:      "MODERATE",
				SignatureTypes: []string{"nature"},
				SignatureRefs:  []string{"p-1"},
			},
		},
	}
}

func TestValidateDatasetSchemaClean(t *testing.T) {
	errs := ValidateDatasetSchema(validDataset())
	assert.Empty(t, errs)
}

func TestValidateDatasetSchemaMissingFields(t *testing.T) {
	ds := validDataset()
	ds.Places[0].UUID = ""
	ds.Places[0].CountryCode = ""
	ds.Directions[0].Name = ""

	errs := ValidateDatasetSchema(ds)
	require.Len(t, errs, 4)
	assert.ErrorContains(t, errs[0], "places[0].uuid is required")
	assert.ErrorContains(t, errs[1], "places[0].country_code is required")
	assert.ErrorContains(t, errs[2], "directions[0].name is required")
	// The signature ref no longer resolves once the place uuid is blank.
	assert.ErrorContains(t, errs[3], `unknown place "p-1"`)
}

func TestValidateDatasetSchemaDuplicates(t *testing.T) {
	ds := validDataset()
	ds.Places = append(ds.Places, ds.Places[0])
	ds.Directions = append(ds.Directions, ds.Directions[0])

	errs := ValidateDatasetSchema(ds)
	require.Len(t, errs, 2)
	assert.ErrorContains(t, errs[0], `duplicate "p-1"`)
	assert.ErrorContains(t, errs[1], `duplicate "jp-hokkaido-classic"`)
}

func TestValidateDatasetSchemaMonthConflicts(t *testing.T) {
	ds := validDataset()
	ds.Directions[0].BestMonths = []int{7, 13}
	ds.Directions[0].AvoidMonths = []int{7}

	errs := ValidateDatasetSchema(ds)
	require.Len(t, errs, 2)
	assert.ErrorContains(t, errs[0], "month 13 out of range")
	assert.ErrorContains(t, errs[1], "month 7 in both best and avoid sets")
}

func TestValidateDatasetSchemaEnumValues(t *testing.T) {
	rollout := 150
	ds := validDataset()
	ds.Directions[0].DailyPace = "SPRINT"
	ds.Directions[0].RiskFactors = []string{"volcano"}
	ds.Directions[0].Status = "paused"
	ds.Directions[0].RolloutPercent = &rollout

	errs := ValidateDatasetSchema(ds)
	require.Len(t, errs, 4)
	assert.ErrorContains(t, errs[0], `daily_pace: invalid value "SPRINT"`)
	assert.ErrorContains(t, errs[1], `unknown factor "volcano"`)
	assert.ErrorContains(t, errs[2], `status: invalid value "paused"`)
	assert.ErrorContains(t, errs[3], "rollout_percent 150 out of range")
}

func TestValidateDatasetSchemaCorridor(t *testing.T) {
	ds := validDataset()
	ds.Directions[0].Corridor = &CorridorImport{
		Type:  "Circle",
		Lines: [][]PointPair{{{43.0, 141.3}}},
	}

	errs := ValidateDatasetSchema(ds)
	require.Len(t, errs, 2)
	assert.ErrorContains(t, errs[0], `corridor.type: invalid value "Circle"`)
	assert.ErrorContains(t, errs[1], "needs at least 2 points")
}

func TestValidateDatasetSchemaCoordinateRange(t *testing.T) {
	ds := validDataset()
	ds.Places[0].Lat = 93
	ds.Places[0].Lng = -190

	errs := ValidateDatasetSchema(ds)
	require.Len(t, errs, 2)
	assert.ErrorContains(t, errs[0], "lat 93 out of range")
	assert.ErrorContains(t, errs[1], "lng -190 out of range")
}
