package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/repository"
	"github.com/alexanderramin/itinera/internal/testutil"
)

const sampleDataset = `{
  "places": [
    {
      "uuid": "p-1",
      "name": "Historic Village",
      "country_code": "JP",
      "lat": 43.05,
      "lng": 141.35,
      "type": "museum",
      "region_key": "sapporo",
      "rating": 4.5
    }
  ],
  "directions": [
    {
      "id": "jp-hokkaido-classic",
      "country_code": "JP",
      "name": "Hokkaido Classic",
      "tags": ["nature"],
      "regions": ["sapporo"],
      "best_months": [7, 8],
      "daily_pace": "MODERATE",
      "signature_types": ["nature"],
      "signature_refs": ["p-1"]
    }
  ]
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportDataset(t *testing.T) {
	database := testutil.NewTestDB(t)
	dirRepo := repository.NewSQLiteDirectionRepo(database)
	placeRepo := repository.NewSQLitePlaceRepo(database)
	svc := NewImportService(dirRepo, placeRepo)
	ctx := context.Background()

	summary, err := svc.ImportDataset(ctx, writeDataset(t, sampleDataset))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Places)
	assert.Equal(t, 1, summary.Directions)

	d, err := dirRepo.GetByID(ctx, "jp-hokkaido-classic")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, d.SignaturePois.Examples)

	places, err := placeRepo.FindByUUIDs(ctx, []string{"p-1"})
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "museum", places[0].Metadata.CanonicalType)
}

func TestImportDatasetRejectsInvalid(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(
		repository.NewSQLiteDirectionRepo(database),
		repository.NewSQLitePlaceRepo(database),
	)

	bad := `{"directions": [{"id": "d1", "name": "No Country"}]}`
	_, err := svc.ImportDataset(context.Background(), writeDataset(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dataset")
	assert.Contains(t, err.Error(), "country_code is required")
}

func TestImportDatasetMissingFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(
		repository.NewSQLiteDirectionRepo(database),
		repository.NewSQLitePlaceRepo(database),
	)

	_, err := svc.ImportDataset(context.Background(), "/nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading dataset")
}
