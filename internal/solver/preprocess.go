package solver

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/domain"
)

// expNode is a post-expansion node: exactly one time window, plus the matrix
// position of its (possibly shared) origin.
type expNode struct {
	node      *domain.PlanNode
	window    domain.TimeWindow
	matrixPos int    // position in the MatrixView
	originID  string // real node behind this entry
	groupID   string // disjunction group, empty for single-window nodes
	inputIdx  int    // order of the origin in the request
}

// expand performs multi-window expansion: every node with more than one
// window becomes one virtual node per window, all sharing a disjunction
// group keyed by the original id. Nodes without windows stay as a single
// entry with the full day window so they remain schedulable anywhere.
func expand(nodes []domain.PlanNode, dayStart, dayEnd domain.ClockMin) []*expNode {
	var out []*expNode
	for i := range nodes {
		n := &nodes[i]
		pos := i + 1 // 0 is the day origin

		switch {
		case len(n.TimeWindows) == 0:
			out = append(out, &expNode{
				node:      n,
				window:    domain.TimeWindow{Open: dayStart, Close: dayEnd},
				matrixPos: pos,
				originID:  n.Origin(),
				groupID:   n.Meta.DisjunctionGroupID,
				inputIdx:  i,
			})
		case len(n.TimeWindows) == 1:
			out = append(out, &expNode{
				node:      n,
				window:    n.TimeWindows[0],
				matrixPos: pos,
				originID:  n.Origin(),
				groupID:   n.Meta.DisjunctionGroupID,
				inputIdx:  i,
			})
		default:
			for w, win := range n.TimeWindows {
				virtual := *n
				virtual.ID = fmt.Sprintf("%s#w%d", n.ID, w+1)
				virtual.Type = domain.NodeVirtual
				virtual.TimeWindows = []domain.TimeWindow{win}
				virtual.Meta.OriginID = n.ID
				virtual.Meta.DisjunctionGroupID = n.ID
				out = append(out, &expNode{
					node:      &virtual,
					window:    win,
					matrixPos: pos,
					originID:  n.ID,
					groupID:   n.ID,
					inputIdx:  i,
				})
			}
		}
	}
	return out
}

// earliestHardOpen returns the earliest window open across hard nodes, or nil
// when there are none.
func earliestHardOpen(nodes []domain.PlanNode) *domain.ClockMin {
	var earliest *domain.ClockMin
	for i := range nodes {
		if !nodes[i].Constraints.IsHardNode {
			continue
		}
		for _, w := range nodes[i].TimeWindows {
			open := w.Open
			if earliest == nil || open < *earliest {
				earliest = &open
			}
		}
	}
	return earliest
}

// closedForDay reports whether none of the node's windows intersect the day.
func closedForDay(n *domain.PlanNode, dayStart, dayEnd domain.ClockMin) bool {
	if len(n.TimeWindows) == 0 {
		return false
	}
	for _, w := range n.TimeWindows {
		if w.Close >= dayStart && w.Open <= dayEnd {
			return false
		}
	}
	return true
}
