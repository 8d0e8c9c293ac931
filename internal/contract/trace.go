package contract

import "time"

// Trace is the per-request decision record. It is created at request entry,
// closed at pipeline exit, and retained in a bounded store.
type Trace struct {
	RequestID string
	StartTime time.Time
	EndTime   *time.Time

	Latencies     TraceLatencies
	Quality       TraceQuality
	Errors        TraceErrors
	Decision      DecisionContext
	PoolEvolution PoolEvolution
}

// TraceLatencies holds per-stage wall-clock durations in milliseconds.
// Setting a stage twice overwrites with the latest value.
type TraceLatencies struct {
	RdSelectMs          int64
	PoiPoolMs           int64
	ConstraintsInjectMs int64
	PlanGenerateMs      int64
	RepairMs            int64
}

type TraceQuality struct {
	PoolSize       int
	HardHits       int
	SoftHits       int
	RepairActions  int
	SelectedRdID   string
	SelectedRdName string
}

type TraceErrors struct {
	CorridorGeomInvalid bool
	PoiQueryTimeout     bool
	FallbackUsed        bool
	Messages            []string
}

// DecisionContext preserves why the chosen direction won.
type DecisionContext struct {
	ScoreBreakdown ScoreBreakdown
	Signals        MatchedSignals
	Alternatives   []Recommendation
}

// PoolEvolution records how the candidate pool shrank stage by stage.
type PoolEvolution struct {
	Initial          int
	AfterRdFilter    int
	AfterConstraints int
	Final            int
	Filters          []PoolFilter
}

type PoolFilter struct {
	Stage   string
	Removed int
	Reason  string
}
