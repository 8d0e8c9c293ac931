package obs

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// rollingWindowSize bounds each in-process sample window.
const rollingWindowSize = 512

// rolling is a fixed-size sample window supporting avg and percentiles.
type rolling struct {
	mu      sync.Mutex
	samples []float64
	next    int
	full    bool
}

func newRolling() *rolling {
	return &rolling{samples: make([]float64, rollingWindowSize)}
}

func (r *rolling) add(v float64) {
	r.mu.Lock()
	r.samples[r.next] = v
	r.next = (r.next + 1) % len(r.samples)
	if r.next == 0 {
		r.full = true
	}
	r.mu.Unlock()
}

func (r *rolling) snapshot() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.next
	if r.full {
		n = len(r.samples)
	}
	out := make([]float64, n)
	copy(out, r.samples[:n])
	return out
}

// Stats summarises one rolling window.
type Stats struct {
	Count int
	Avg   float64
	P95   float64
	P99   float64
}

func (r *rolling) stats() Stats {
	vals := r.snapshot()
	if len(vals) == 0 {
		return Stats{}
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	sort.Float64s(vals)
	return Stats{
		Count: len(vals),
		Avg:   sum / float64(len(vals)),
		P95:   percentile(vals, 0.95),
		P99:   percentile(vals, 0.99),
	}
}

// percentile reads the nearest-rank percentile from sorted values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p*float64(len(sorted))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Metrics aggregates counters across requests, exported both through
// prometheus collectors and through in-process rolling windows for the
// report endpoint.
type Metrics struct {
	planLatency  *prometheus.HistogramVec
	planTotal    *prometheus.CounterVec
	errorTotal   *prometheus.CounterVec
	poolSize     prometheus.Histogram
	directionSel *prometheus.CounterVec

	latencyWindow *rolling
	poolWindow    *rolling
	hardWindow    *rolling
	softWindow    *rolling
	repairWindow  *rolling

	mu         sync.Mutex
	directions map[string]int
	errors     map[string]int
}

// NewMetrics builds and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		planLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "itinera",
			Name:      "plan_stage_duration_ms",
			Help:      "Per-stage plan pipeline latency in milliseconds.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
		}, []string{"stage"}),
		planTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itinera",
			Name:      "plan_requests_total",
			Help:      "Plan requests by final status.",
		}, []string{"status"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itinera",
			Name:      "plan_errors_total",
			Help:      "Recoverable pipeline errors by kind.",
		}, []string{"kind"}),
		poolSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "itinera",
			Name:      "candidate_pool_size",
			Help:      "Final candidate pool size per request.",
			Buckets:   prometheus.LinearBuckets(0, 10, 12),
		}),
		directionSel: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itinera",
			Name:      "direction_selected_total",
			Help:      "Selections per direction id.",
		}, []string{"direction"}),

		latencyWindow: newRolling(),
		poolWindow:    newRolling(),
		hardWindow:    newRolling(),
		softWindow:    newRolling(),
		repairWindow:  newRolling(),

		directions: make(map[string]int),
		errors:     make(map[string]int),
	}
	if reg != nil {
		reg.MustRegister(m.planLatency, m.planTotal, m.errorTotal, m.poolSize, m.directionSel)
	}
	return m
}

// ObserveStage records one stage latency.
func (m *Metrics) ObserveStage(stage string, ms int64) {
	m.planLatency.WithLabelValues(stage).Observe(float64(ms))
}

// ObservePlan folds a finished request into the aggregates.
func (m *Metrics) ObservePlan(status string, totalMs int64, poolSize, hardHits, softHits, repairActions int, directionID string) {
	m.planTotal.WithLabelValues(status).Inc()
	m.poolSize.Observe(float64(poolSize))
	if directionID != "" {
		m.directionSel.WithLabelValues(directionID).Inc()
	}

	m.latencyWindow.add(float64(totalMs))
	m.poolWindow.add(float64(poolSize))
	m.hardWindow.add(float64(hardHits))
	m.softWindow.add(float64(softHits))
	m.repairWindow.add(float64(repairActions))

	m.mu.Lock()
	if directionID != "" {
		m.directions[directionID]++
	}
	m.mu.Unlock()
}

// ObserveError counts one recoverable error.
func (m *Metrics) ObserveError(kind string) {
	m.errorTotal.WithLabelValues(kind).Inc()
	m.mu.Lock()
	m.errors[kind]++
	m.mu.Unlock()
}

// Snapshot is the in-process aggregate view served by the metrics command.
type Snapshot struct {
	Latency    Stats
	PoolSize   Stats
	HardHits   Stats
	SoftHits   Stats
	Repairs    Stats
	Directions map[string]int
	Errors     map[string]int
}

func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	dirs := make(map[string]int, len(m.directions))
	for k, v := range m.directions {
		dirs[k] = v
	}
	errs := make(map[string]int, len(m.errors))
	for k, v := range m.errors {
		errs[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		Latency:    m.latencyWindow.stats(),
		PoolSize:   m.poolWindow.stats(),
		HardHits:   m.hardWindow.stats(),
		SoftHits:   m.softWindow.stats(),
		Repairs:    m.repairWindow.stats(),
		Directions: dirs,
		Errors:     errs,
	}
}
