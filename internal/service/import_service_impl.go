package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/repository"
)

type importServiceImpl struct {
	directions repository.DirectionRepo
	places     repository.PlaceRepo
	observer   UseCaseObserver
}

func NewImportService(directions repository.DirectionRepo, places repository.PlaceRepo, observers ...UseCaseObserver) ImportService {
	return &importServiceImpl{
		directions: directions,
		places:     places,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *importServiceImpl) ImportDataset(ctx context.Context, path string) (summary *ImportSummary, err error) {
	start := time.Now()
	defer func() {
		fields := map[string]any{"path": path}
		if summary != nil {
			fields["places"] = summary.Places
			fields["directions"] = summary.Directions
		}
		observe(ctx, s.observer, "ImportDataset", start, err, fields)
	}()

	schema, err := importer.LoadDatasetSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	if errs := importer.ValidateDatasetSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid dataset: %w", errors.Join(errs...))
	}

	ds := importer.ConvertDatasetSchema(schema)
	for _, p := range ds.Places {
		if err := s.places.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("storing place %s: %w", p.UUID, err)
		}
	}
	for _, d := range ds.Directions {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if err := s.directions.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("storing direction %s: %w", d.ID, err)
		}
	}
	return &ImportSummary{Places: len(ds.Places), Directions: len(ds.Directions)}, nil
}
