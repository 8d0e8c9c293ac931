package contract

import (
	"github.com/alexanderramin/itinera/internal/domain"
)

// SolveStatus is the outcome class of a day solve. OPTIMAL is reserved for a
// future local-search pass; the greedy core emits FEASIBLE or INFEASIBLE.
type SolveStatus string

const (
	StatusFeasible   SolveStatus = "FEASIBLE"
	StatusOptimal    SolveStatus = "OPTIMAL"
	StatusInfeasible SolveStatus = "INFEASIBLE"
)

// LunchPolicy requests a synthetic break inside the given window.
type LunchPolicy struct {
	WindowOpen  domain.ClockMin
	WindowClose domain.ClockMin
	DurationMin int
}

// SolveRequest is the direct solver contract: schedule the given nodes inside
// [DayStart, DayEnd]. Policy overrides left nil are filled from the pacing
// preset.
type SolveRequest struct {
	Nodes    []domain.PlanNode
	DayStart domain.ClockMin
	DayEnd   domain.ClockMin
	Timezone string

	Pacing            domain.UserPace
	BufferFactor      *float64
	FixedBufferMin    *int
	WaitWeight        *float64
	EarliestFirstStop *domain.ClockMin
	Lunch             *LunchPolicy
}

// RouteNode is one scheduled visit in the solved day.
type RouteNode struct {
	Seq               int
	NodeID            string
	OriginID          string
	Name              string
	Arrival           domain.ClockMin
	StartService      domain.ClockMin
	EndService        domain.ClockMin
	WaitMin           int
	TravelMinFromPrev int
}

type TimelineEventType string

const (
	EventNode   TimelineEventType = "NODE"
	EventWait   TimelineEventType = "WAIT"
	EventLunch  TimelineEventType = "LUNCH"
	EventTravel TimelineEventType = "TRAVEL"
)

type TimelineEvent struct {
	Type        TimelineEventType
	Start       domain.ClockMin
	End         domain.ClockMin
	DurationMin int
	Description string
	NodeID      string
}

type DroppedNode struct {
	NodeID      string
	Name        string
	ReasonCode  DropReasonCode
	Penalty     int
	Explanation Explanation
}

type Summary struct {
	TotalTravelMin  int
	TotalWaitMin    int
	TotalServiceMin int
	VisitedCount    int
	DroppedCount    int
	RobustnessScore float64
}

type Diagnostics struct {
	CriticalWindows []string
	Assumptions     Assumptions
}

type Assumptions struct {
	BufferFactor   float64
	FixedBufferMin int
}

type SlackNode struct {
	NodeID   string
	Name     string
	SlackMin int
}

type Robustness struct {
	TotalBufferMinutes int
	TotalWaitMinutes   int
	Top3MinSlackNodes  []SlackNode
	RiskLevel          domain.RiskLevel
}

// OptimizationResult is the complete solver output for one day.
type OptimizationResult struct {
	Status      SolveStatus
	Summary     Summary
	Route       []RouteNode
	Timeline    []TimelineEvent
	Dropped     []DroppedNode
	Diagnostics Diagnostics
	Robustness  Robustness
}
