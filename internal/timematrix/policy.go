package timematrix

import (
	"strings"

	"github.com/alexanderramin/itinera/internal/config"
	"github.com/alexanderramin/itinera/internal/domain"
)

// SwitchKey identifies an ordered modal transition.
type SwitchKey struct {
	From domain.TravelMode
	To   domain.TravelMode
}

// Policy inflates raw travel durations into robust ones.
type Policy struct {
	BufferFactor       float64
	FixedBufferMin     int
	SwitchCostMin      map[SwitchKey]int
	CrossRegionCostMin int
}

// DefaultPolicy returns the stock inflation policy.
func DefaultPolicy() Policy {
	return PolicyFromConfig(config.Default().Transport)
}

// PolicyFromConfig converts the config representation, whose switch cost map
// is keyed "from>to".
func PolicyFromConfig(tc config.TransportConfig) Policy {
	p := Policy{
		BufferFactor:       tc.BufferFactor,
		FixedBufferMin:     tc.FixedBufferMin,
		CrossRegionCostMin: tc.CrossRegionCostMin,
		SwitchCostMin:      make(map[SwitchKey]int, len(tc.SwitchCostMin)),
	}
	for k, v := range tc.SwitchCostMin {
		from, to, ok := strings.Cut(k, ">")
		if !ok {
			continue
		}
		p.SwitchCostMin[SwitchKey{From: domain.TravelMode(from), To: domain.TravelMode(to)}] = v
	}
	return p
}

// SwitchCost returns the modal-switch penalty for the ordered pair, zero when
// modes match or no entry exists.
func (p Policy) SwitchCost(from, to domain.TravelMode) int {
	if from == to {
		return 0
	}
	return p.SwitchCostMin[SwitchKey{From: from, To: to}]
}

// ModeOf infers the travel mode a node anchors: metro for nodes tagged metro
// or station, walk for everything else.
func ModeOf(n *domain.PlanNode) domain.TravelMode {
	for _, t := range n.Meta.Tags {
		switch strings.ToLower(t) {
		case "metro", "station":
			return domain.ModeMetro
		}
	}
	return domain.ModeWalk
}
