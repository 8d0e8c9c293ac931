package service

import (
	"context"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/obs"
)

// DirectionService ranks route directions for a country, serving cached
// selections when the intent fingerprint matches.
type DirectionService interface {
	Select(ctx context.Context, req contract.SelectRequest) (contract.SelectResponse, error)
	Get(ctx context.Context, id string) (*domain.RouteDirection, error)
}

// CandidateService produces the activity pool for a direction, cache-gated by
// the direction fingerprint.
type CandidateService interface {
	Generate(ctx context.Context, d *domain.RouteDirection, regions []string, bufferMeters float64) ([]domain.ActivityCandidate, error)
}

// PlanService runs the full pipeline and the raw day solve.
type PlanService interface {
	PlanDay(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
	SolveDay(ctx context.Context, req contract.SolveRequest) (*contract.OptimizationResult, error)
}

// ImportService loads curated dataset files into the store.
type ImportService interface {
	ImportDataset(ctx context.Context, path string) (*ImportSummary, error)
}

// ImportSummary reports how many rows an import wrote.
type ImportSummary struct {
	Places     int
	Directions int
}

// TraceService reads stored traces and aggregate metrics.
type TraceService interface {
	Get(requestID string) *contract.Trace
	Report(requestID string) (*obs.Report, error)
	Metrics() obs.Snapshot
}
