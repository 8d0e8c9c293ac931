package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/obs"
	"github.com/alexanderramin/itinera/internal/solver"
	"github.com/alexanderramin/itinera/internal/timematrix"
)

type planServiceImpl struct {
	directions DirectionService
	candidates CandidateService
	matrix     *timematrix.Builder
	traces     *obs.Store
	metrics    *obs.Metrics
	observer   UseCaseObserver
}

// NewPlanService wires the full pipeline: selection, pool, matrix, solve.
func NewPlanService(
	directions DirectionService,
	candidates CandidateService,
	matrix *timematrix.Builder,
	traces *obs.Store,
	metrics *obs.Metrics,
	observers ...UseCaseObserver,
) PlanService {
	return &planServiceImpl{
		directions: directions,
		candidates: candidates,
		matrix:     matrix,
		traces:     traces,
		metrics:    metrics,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// SolveDay runs the solver directly over caller-supplied nodes with a
// straight-line estimated matrix.
func (s *planServiceImpl) SolveDay(ctx context.Context, req contract.SolveRequest) (*contract.OptimizationResult, error) {
	withOrigin := make([]*domain.PlanNode, 0, len(req.Nodes)+1)
	origin := &domain.PlanNode{ID: "__origin__", Name: "day origin"}
	if len(req.Nodes) > 0 {
		origin.Geo = req.Nodes[0].Geo
	}
	withOrigin = append(withOrigin, origin)
	for i := range req.Nodes {
		withOrigin = append(withOrigin, &req.Nodes[i])
	}

	m, err := s.matrix.Build(ctx, withOrigin)
	if err != nil {
		return nil, fmt.Errorf("building time matrix: %w", err)
	}
	return solver.Solve(req, m)
}

// PlanDay orchestrates one end-to-end plan: selection, pool, constraint
// injection, matrix, solve. Recoverable problems land in the trace; only
// precondition failures surface as errors. A deadline blown mid-pipeline
// returns a DEADLINE_EXCEEDED error together with an infeasible response
// carrying whatever trace was collected.
func (s *planServiceImpl) PlanDay(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	start := time.Now()
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	trace := s.traces.Open(req.RequestID)
	rec := obs.NewRecorder(trace)
	defer func() {
		s.traces.Close(trace)
		status := "error"
		poolSize, hard, soft := 0, 0, 0
		direction := ""
		if resp != nil && resp.Result != nil {
			status = string(resp.Result.Status)
			poolSize = trace.Quality.PoolSize
			hard = trace.Quality.HardHits
			soft = trace.Quality.SoftHits
			direction = trace.Quality.SelectedRdID
		}
		s.metrics.ObservePlan(status, time.Since(start).Milliseconds(), poolSize, hard, soft, 0, direction)
		observe(ctx, s.observer, "plan_day", start, err, map[string]any{
			"request_id": req.RequestID,
			"status":     status,
			"pool_size":  poolSize,
		})
	}()

	// Stage 1: direction selection.
	selStart := time.Now()
	selResp, err := s.directions.Select(ctx, contract.SelectRequest{
		CountryCode: req.CountryCode,
		Intent:      req.Intent,
		Month:       req.Month,
		Identity:    req.Identity,
	})
	rec.SelectLatency(time.Since(selStart))
	s.metrics.ObserveStage("rdSelect", time.Since(selStart).Milliseconds())
	if err != nil {
		rec.ErrorMessage(err.Error())
		return nil, err
	}
	if len(selResp.Recommendations) == 0 {
		err = &contract.PlanError{
			Code:    contract.ErrNoDirections,
			Message: "no direction passed gating for this request",
		}
		rec.ErrorMessage(err.Error())
		return nil, err
	}
	selected := selResp.Recommendations[0]
	rec.SelectedDirection(selected, selResp.Recommendations[1:])

	direction, err := s.directions.Get(ctx, selected.DirectionID)
	if err != nil {
		rec.ErrorMessage(err.Error())
		return nil, err
	}

	// An invalid corridor is recoverable: drop the geometry and continue
	// with an uncorridored pool.
	if direction.Corridor != nil {
		if cerr := direction.Corridor.Validate(); cerr != nil {
			rec.CorridorGeomInvalid()
			rec.ErrorMessage(fmt.Sprintf("corridor dropped: %v", cerr))
			s.metrics.ObserveError("corridor_geom_invalid")
			clone := *direction
			clone.Corridor = nil
			direction = &clone
		}
	}

	// Stage 2: candidate pool.
	poolStart := time.Now()
	pool, err := s.candidates.Generate(ctx, direction, req.Regions, req.BufferMeters)
	rec.PoolLatency(time.Since(poolStart))
	s.metrics.ObserveStage("poiPool", time.Since(poolStart).Milliseconds())
	if err != nil {
		if ctx.Err() != nil {
			// Pool timed out: continue with an empty pool per the
			// degradation contract.
			rec.PoiQueryTimeout()
			rec.ErrorMessage(fmt.Sprintf("pool query timeout: %v", err))
			s.metrics.ObserveError("poi_query_timeout")
			pool = nil
		} else {
			rec.ErrorMessage(err.Error())
			return nil, err
		}
	}

	// Stage 3: constraint injection.
	injectStart := time.Now()
	nodes, filters := injectConstraints(pool, req.Intent.RiskTolerance, req.MaxStops)
	rec.ConstraintsLatency(time.Since(injectStart))
	rec.PoolSize(len(nodes))
	rec.PoolEvolution(contract.PoolEvolution{
		Initial:          len(pool),
		AfterRdFilter:    len(pool),
		AfterConstraints: len(nodes),
		Final:            len(nodes),
		Filters:          filters,
	})

	// Stage 4: robust matrix over origin + pool.
	withOrigin := make([]*domain.PlanNode, 0, len(nodes)+1)
	withOrigin = append(withOrigin, &domain.PlanNode{ID: "__origin__", Name: "day origin", Geo: req.Origin})
	for i := range nodes {
		withOrigin = append(withOrigin, &nodes[i])
	}
	matrix, err := s.matrix.Build(ctx, withOrigin)
	if err != nil {
		err = fmt.Errorf("building time matrix: %w", err)
		rec.ErrorMessage(err.Error())
		return nil, err
	}
	if matrix.FallbackUsed {
		rec.FallbackUsed()
		for _, msg := range matrix.Messages {
			rec.ErrorMessage(msg)
		}
		s.metrics.ObserveError("travel_time_fallback")
	}

	// The matrix build yields a best-effort result under an expired deadline,
	// but the plan itself is no longer trustworthy: surface the typed error
	// alongside the partial trace instead of solving.
	if cerr := ctx.Err(); cerr != nil {
		err = &contract.PlanError{
			Code:    contract.ErrDeadlineExceeded,
			Message: fmt.Sprintf("request deadline exhausted during matrix build: %v", cerr),
		}
		rec.ErrorMessage(err.Error())
		s.metrics.ObserveError("deadline_exceeded")
		resp = &contract.PlanResponse{
			Result: &contract.OptimizationResult{Status: contract.StatusInfeasible},
			Trace:  trace,
		}
		return resp, err
	}

	// Stage 5: solve.
	solveStart := time.Now()
	result, err := solver.Solve(contract.SolveRequest{
		Nodes:             nodes,
		DayStart:          req.DayStart,
		DayEnd:            req.DayEnd,
		Timezone:          req.Timezone,
		Pacing:            req.Pacing,
		EarliestFirstStop: req.EarliestFirstStop,
		Lunch:             req.Lunch,
	}, matrix)
	rec.SolveLatency(time.Since(solveStart))
	s.metrics.ObserveStage("planGenerate", time.Since(solveStart).Milliseconds())
	if err != nil {
		rec.ErrorMessage(err.Error())
		return nil, err
	}
	hard, soft := hitCounts(nodes, result)
	rec.Hits(hard, soft)

	resp = &contract.PlanResponse{
		Result: result,
		DecisionLog: contract.DecisionLog{
			RouteDirection: contract.RouteDirectionDecision{
				Selected:     selected,
				Alternatives: selResp.Recommendations[1:],
				Rejected:     selResp.Rejected,
			},
		},
		Terrain: terrainFor(direction),
		Trace:   trace,
	}
	return resp, nil
}
