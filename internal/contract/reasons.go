package contract

// DropReasonCode classifies why a node was left out of the day route.
type DropReasonCode string

const (
	ReasonTimeWindowConflict     DropReasonCode = "TIME_WINDOW_CONFLICT"
	ReasonInsufficientTotalTime  DropReasonCode = "INSUFFICIENT_TOTAL_TIME"
	ReasonClosedDay              DropReasonCode = "CLOSED_DAY"
	ReasonHighWaitTime           DropReasonCode = "HIGH_WAIT_TIME"
	ReasonLowPriorityNotWorth    DropReasonCode = "LOW_PRIORITY_NOT_WORTH"
	ReasonHardNodeProtection     DropReasonCode = "HARD_NODE_PROTECTION"
	ReasonRobustTimeInfeasible   DropReasonCode = "ROBUST_TIME_INFEASIBLE"
	ReasonEarlyDepartureConflict DropReasonCode = "EARLY_DEPARTURE_CONFLICT"
)

// Explanation is the rendered form of a drop reason: a human sentence, the
// structured facts behind it, and stable suggestion strings.
type Explanation struct {
	Text        string
	Facts       map[string]any
	Suggestions []string
}
