package solver

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

// ExplainContext carries the facts behind one drop decision. Zero values mean
// the fact is unknown and is left out of the rendered explanation.
type ExplainContext struct {
	Arrival           domain.ClockMin
	WindowClose       domain.ClockMin
	WaitMin           int
	DayEnd            domain.ClockMin
	HardNodeCount     int
	BufferFactor      float64
	FixedBuffer       int
	RequiredDeparture domain.ClockMin
	EarliestStart     domain.ClockMin
}

// suggestionsByReason is the fixed suggestion catalogue per reason code.
// Suggestions are stable strings so callers can assert and dedupe on them.
var suggestionsByReason = map[contract.DropReasonCode][]string{
	contract.ReasonTimeWindowConflict: {
		"Start the day earlier",
		"Move this stop to another day",
		"Drop a lower-priority stop before it",
	},
	contract.ReasonInsufficientTotalTime: {
		"Extend the day end",
		"Reduce the number of requested stops",
	},
	contract.ReasonClosedDay: {
		"Pick a day when this place is open",
		"Replace it with a nearby alternative",
	},
	contract.ReasonHighWaitTime: {
		"Visit later in the day when it is open",
		"Swap in a stop without an opening constraint",
	},
	contract.ReasonLowPriorityNotWorth: {
		"Raise its priority if it matters to you",
		"Free up time by dropping another stop",
	},
	contract.ReasonHardNodeProtection: {
		"Relax a must-visit stop to optional",
		"Split must-visit stops across days",
	},
	contract.ReasonRobustTimeInfeasible: {
		"Choose a more intense pacing with smaller buffers",
		"Start the day earlier",
		"Accept the risk and pin the stop manually",
	},
	contract.ReasonEarlyDepartureConflict: {
		"Allow an earlier first departure",
		"Move the early stop to another day",
	},
}

// Explain renders a drop reason into a human sentence plus structured facts.
// It is pure: same inputs, same output.
func Explain(name string, code contract.DropReasonCode, ctx ExplainContext) contract.Explanation {
	facts := map[string]any{}
	var text string

	switch code {
	case contract.ReasonTimeWindowConflict:
		facts["close_time"] = ctx.WindowClose.String()
		facts["arrival_time"] = ctx.Arrival.String()
		text = fmt.Sprintf("%s closes at %s but the earliest arrival is %s.", name, ctx.WindowClose, ctx.Arrival)
	case contract.ReasonInsufficientTotalTime:
		facts["day_end"] = ctx.DayEnd.String()
		text = fmt.Sprintf("There is not enough time left in the day to fit %s before %s.", name, ctx.DayEnd)
	case contract.ReasonClosedDay:
		text = fmt.Sprintf("%s is closed for the whole planning day.", name)
	case contract.ReasonHighWaitTime:
		facts["wait_minutes"] = ctx.WaitMin
		text = fmt.Sprintf("Visiting %s now would mean waiting %d minutes for it to open.", name, ctx.WaitMin)
	case contract.ReasonLowPriorityNotWorth:
		text = fmt.Sprintf("%s is low priority and the time it needs is better spent elsewhere.", name)
	case contract.ReasonHardNodeProtection:
		facts["hard_node_count"] = ctx.HardNodeCount
		text = fmt.Sprintf("%s was dropped to keep %d must-visit stop(s) on schedule.", name, ctx.HardNodeCount)
	case contract.ReasonRobustTimeInfeasible:
		facts["buffer_factor"] = ctx.BufferFactor
		facts["fixed_buffer"] = ctx.FixedBuffer
		text = fmt.Sprintf("%s fits with ideal travel times but not once the %.1fx buffer and %d fixed minutes are applied.", name, ctx.BufferFactor, ctx.FixedBuffer)
	case contract.ReasonEarlyDepartureConflict:
		facts["required_departure"] = ctx.RequiredDeparture.String()
		facts["earliest_start"] = ctx.EarliestStart.String()
		text = fmt.Sprintf("%s requires departing by %s but the earliest allowed first stop is %s.", name, ctx.RequiredDeparture, ctx.EarliestStart)
	default:
		text = fmt.Sprintf("%s could not be scheduled.", name)
	}

	return contract.Explanation{
		Text:        text,
		Facts:       facts,
		Suggestions: suggestionsByReason[code],
	}
}
