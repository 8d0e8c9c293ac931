package obs

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/itinera/internal/contract"
)

// Report answers the three post-mortem questions for one request from stored
// trace data alone: which stage dominated, why the direction won, and how the
// pool shrank.
type Report struct {
	RequestID      string
	DominantStage  string
	DominantMs     int64
	DirectionStory string
	PoolStory      string
}

// BuildReport renders a report for a stored trace. A nil trace yields an
// error so callers can distinguish eviction from an unknown id.
func BuildReport(tr *contract.Trace) (*Report, error) {
	if tr == nil {
		return nil, fmt.Errorf("trace not found")
	}
	stage, ms := dominantStage(tr.Latencies)
	return &Report{
		RequestID:      tr.RequestID,
		DominantStage:  stage,
		DominantMs:     ms,
		DirectionStory: directionStory(tr),
		PoolStory:      poolStory(tr.PoolEvolution),
	}, nil
}

func dominantStage(l contract.TraceLatencies) (string, int64) {
	stages := []struct {
		name string
		ms   int64
	}{
		{"rdSelect", l.RdSelectMs},
		{"poiPool", l.PoiPoolMs},
		{"constraintsInject", l.ConstraintsInjectMs},
		{"planGenerate", l.PlanGenerateMs},
		{"repair", l.RepairMs},
	}
	max := stages[0]
	for _, s := range stages[1:] {
		if s.ms > max.ms {
			max = s
		}
	}
	return max.name, max.ms
}

func directionStory(tr *contract.Trace) string {
	if tr.Quality.SelectedRdID == "" {
		return "no direction was selected"
	}
	bd := tr.Decision.ScoreBreakdown
	var b strings.Builder
	fmt.Fprintf(&b, "%s won with %.1f (tag %.0f, season %.0f, pace %.0f, risk %.0f)",
		tr.Quality.SelectedRdID, bd.Total,
		bd.TagMatch.Score, bd.Seasonality.Score, bd.Pace.Score, bd.Risk.Score)
	if len(tr.Decision.Signals.MatchedTags) > 0 {
		fmt.Fprintf(&b, "; matched tags: %s", strings.Join(tr.Decision.Signals.MatchedTags, ", "))
	}
	if tr.Decision.Signals.InBestSeason {
		b.WriteString("; in best season")
	}
	if len(tr.Decision.Alternatives) > 0 {
		fmt.Fprintf(&b, "; beat %d alternative(s)", len(tr.Decision.Alternatives))
	}
	return b.String()
}

func poolStory(ev contract.PoolEvolution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "pool %d -> %d -> %d -> %d",
		ev.Initial, ev.AfterRdFilter, ev.AfterConstraints, ev.Final)
	for _, f := range ev.Filters {
		fmt.Fprintf(&b, "; %s removed %d (%s)", f.Stage, f.Removed, f.Reason)
	}
	return b.String()
}
