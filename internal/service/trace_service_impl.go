package service

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/obs"
)

type traceServiceImpl struct {
	store   *obs.Store
	metrics *obs.Metrics
}

// NewTraceService exposes the trace store and aggregate metrics.
func NewTraceService(store *obs.Store, metrics *obs.Metrics) TraceService {
	return &traceServiceImpl{store: store, metrics: metrics}
}

func (s *traceServiceImpl) Get(requestID string) *contract.Trace {
	return s.store.Get(requestID)
}

func (s *traceServiceImpl) Report(requestID string) (*obs.Report, error) {
	tr := s.store.Get(requestID)
	if tr == nil {
		return nil, fmt.Errorf("trace %s not found or evicted", requestID)
	}
	return obs.BuildReport(tr)
}

func (s *traceServiceImpl) Metrics() obs.Snapshot {
	return s.metrics.Snapshot()
}
