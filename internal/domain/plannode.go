package domain

import "fmt"

// TimeWindow is a single [open, close] visiting window, day-local.
type TimeWindow struct {
	Open  ClockMin
	Close ClockMin
}

func (w TimeWindow) Contains(t ClockMin) bool {
	return t >= w.Open && t <= w.Close
}

// PlanNode is a point the solver may visit. Virtual nodes are produced by
// multi-window expansion and always reference their origin through
// Meta.OriginID and Meta.DisjunctionGroupID.
type PlanNode struct {
	ID                 string
	Name               string
	Type               NodeType
	Geo                Point
	ServiceDurationMin int
	TimeWindows        []TimeWindow
	Constraints        NodeConstraints
	Meta               NodeMeta
}

type NodeConstraints struct {
	IsHardNode    bool
	PriorityLevel int // 1 (highest) .. 5 (lowest)
	DropPenalty   *int
	Reward        *float64
}

type NodeMeta struct {
	RegionID           string
	Tags               []string
	OriginID           string
	DisjunctionGroupID string
}

// Origin resolves the real node id behind a possibly-virtual node.
func (n *PlanNode) Origin() string {
	if n.Meta.OriginID != "" {
		return n.Meta.OriginID
	}
	return n.ID
}

// EffectivePriority returns the priority level defaulting to 5 (lowest).
func (n *PlanNode) EffectivePriority() int {
	if n.Constraints.PriorityLevel >= 1 && n.Constraints.PriorityLevel <= 5 {
		return n.Constraints.PriorityLevel
	}
	return 5
}

// DropPenaltyValue is the configured penalty, or 1000*(6-priority).
func (n *PlanNode) DropPenaltyValue() int {
	if n.Constraints.DropPenalty != nil {
		return *n.Constraints.DropPenalty
	}
	return 1000 * (6 - n.EffectivePriority())
}

// Validate checks the node invariants: non-negative service time, ordered
// non-overlapping windows, and virtual nodes carrying their origin's
// disjunction group.
func (n *PlanNode) Validate() error {
	if n.ServiceDurationMin < 0 {
		return fmt.Errorf("node %s: negative service duration", n.ID)
	}
	for i, w := range n.TimeWindows {
		if w.Close < w.Open {
			return fmt.Errorf("node %s: window %d closes before it opens", n.ID, i)
		}
		if i > 0 && w.Open < n.TimeWindows[i-1].Close {
			return fmt.Errorf("node %s: windows %d and %d overlap", n.ID, i-1, i)
		}
	}
	if n.Meta.OriginID != "" && n.Meta.OriginID != n.ID && n.Meta.DisjunctionGroupID != n.Meta.OriginID {
		return fmt.Errorf("node %s: virtual node must carry disjunction group %s", n.ID, n.Meta.OriginID)
	}
	return nil
}
