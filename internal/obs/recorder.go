package obs

import (
	"time"

	"github.com/alexanderramin/itinera/internal/contract"
)

// Recorder writes pipeline facts onto one trace. Every setter overwrites the
// previous value so a retried stage reports its latest attempt.
type Recorder struct {
	trace *contract.Trace
}

func NewRecorder(trace *contract.Trace) *Recorder {
	return &Recorder{trace: trace}
}

func (r *Recorder) Trace() *contract.Trace { return r.trace }

func (r *Recorder) SelectLatency(d time.Duration) {
	r.trace.Latencies.RdSelectMs = d.Milliseconds()
}

func (r *Recorder) PoolLatency(d time.Duration) {
	r.trace.Latencies.PoiPoolMs = d.Milliseconds()
}

func (r *Recorder) ConstraintsLatency(d time.Duration) {
	r.trace.Latencies.ConstraintsInjectMs = d.Milliseconds()
}

func (r *Recorder) SolveLatency(d time.Duration) {
	r.trace.Latencies.PlanGenerateMs = d.Milliseconds()
}

func (r *Recorder) RepairLatency(d time.Duration) {
	r.trace.Latencies.RepairMs = d.Milliseconds()
}

// SelectedDirection records which direction won and why.
func (r *Recorder) SelectedDirection(rec contract.Recommendation, alternatives []contract.Recommendation) {
	r.trace.Quality.SelectedRdID = rec.DirectionID
	r.trace.Quality.SelectedRdName = rec.Name
	r.trace.Decision = contract.DecisionContext{
		ScoreBreakdown: rec.Breakdown,
		Signals:        rec.Signals,
		Alternatives:   alternatives,
	}
}

func (r *Recorder) PoolSize(n int) {
	r.trace.Quality.PoolSize = n
}

func (r *Recorder) Hits(hard, soft int) {
	r.trace.Quality.HardHits = hard
	r.trace.Quality.SoftHits = soft
}

func (r *Recorder) RepairActions(n int) {
	r.trace.Quality.RepairActions = n
}

func (r *Recorder) PoolEvolution(ev contract.PoolEvolution) {
	r.trace.PoolEvolution = ev
}

func (r *Recorder) CorridorGeomInvalid() {
	r.trace.Errors.CorridorGeomInvalid = true
}

func (r *Recorder) PoiQueryTimeout() {
	r.trace.Errors.PoiQueryTimeout = true
}

func (r *Recorder) FallbackUsed() {
	r.trace.Errors.FallbackUsed = true
}

func (r *Recorder) ErrorMessage(msg string) {
	r.trace.Errors.Messages = append(r.trace.Errors.Messages, msg)
}
