package solver

import (
	"github.com/alexanderramin/itinera/internal/domain"
)

// PacingPreset fixes the buffer policy triple for a travel tempo.
type PacingPreset struct {
	BufferFactor   float64
	FixedBufferMin int
	WaitWeight     float64
}

// pacingPresets maps the user's pace to its preset. Unknown paces fall back
// to the normal triple.
var pacingPresets = map[domain.UserPace]PacingPreset{
	domain.UserPaceRelaxed:  {BufferFactor: 1.3, FixedBufferMin: 20, WaitWeight: 1.8},
	domain.UserPaceModerate: {BufferFactor: 1.2, FixedBufferMin: 15, WaitWeight: 1.5},
	domain.UserPaceIntense:  {BufferFactor: 1.1, FixedBufferMin: 10, WaitWeight: 1.2},
}

// PresetFor returns the pacing preset for a user pace.
func PresetFor(pace domain.UserPace) PacingPreset {
	if p, ok := pacingPresets[pace]; ok {
		return p
	}
	return pacingPresets[domain.UserPaceModerate]
}

// ObjectiveWeights weighs the terms of the soft-node selection score.
type ObjectiveWeights struct {
	Travel      float64
	Wait        float64
	Reward      float64
	SoftCost    float64
	DropPenalty float64
}

// DefaultObjectiveWeights returns the stock objective weighting.
func DefaultObjectiveWeights() ObjectiveWeights {
	return ObjectiveWeights{
		Travel:      1.0,
		Wait:        1.5,
		Reward:      1.0,
		SoftCost:    1.0,
		DropPenalty: 1.0,
	}
}

// policy is the effective solve policy after pacing projection: preset values
// fill any field the request left unspecified.
type policy struct {
	BufferFactor      float64
	FixedBufferMin    int
	Weights           ObjectiveWeights
	EarliestFirstStop *domain.ClockMin
}

func projectPolicy(pace domain.UserPace, bufferFactor *float64, fixedBufferMin *int, waitWeight *float64, earliest *domain.ClockMin) policy {
	preset := PresetFor(pace)
	w := DefaultObjectiveWeights()
	w.Wait = domain.Float64FromPtrWithDefault(preset.WaitWeight, waitWeight)
	return policy{
		BufferFactor:      domain.Float64FromPtrWithDefault(preset.BufferFactor, bufferFactor),
		FixedBufferMin:    domain.IntFromPtrWithDefault(preset.FixedBufferMin, fixedBufferMin),
		Weights:           w,
		EarliestFirstStop: earliest,
	}
}
