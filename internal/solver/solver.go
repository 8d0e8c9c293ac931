package solver

import (
	"fmt"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

// visit is one committed stop in the running schedule.
type visit struct {
	entry       *expNode
	arrival     domain.ClockMin
	start       domain.ClockMin
	end         domain.ClockMin
	waitMin     int
	travelMin   int // robust travel from previous position
	idealTravel int
}

// lunchBreak is the synthetic mid-day break.
type lunchBreak struct {
	start domain.ClockMin
	end   domain.ClockMin
}

// state is the running schedule clock and bookkeeping during construction.
type state struct {
	clock          domain.ClockMin
	pos            int
	visits         []visit
	usedGroups     map[string]bool
	visitedOrigins map[string]bool
	lunch          *lunchBreak
}

// Solve schedules one day over the given nodes and matrix. The matrix is
// indexed with position 0 as the day origin and position k for the k-th node.
func Solve(req contract.SolveRequest, m MatrixView) (*contract.OptimizationResult, error) {
	if req.DayEnd <= req.DayStart {
		return nil, fmt.Errorf("day window %s-%s is empty", req.DayStart, req.DayEnd)
	}
	for i := range req.Nodes {
		if err := req.Nodes[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid plan node: %w", err)
		}
	}
	if m == nil {
		m = ZeroMatrix{}
	}

	pol := projectPolicy(req.Pacing, req.BufferFactor, req.FixedBufferMin, req.WaitWeight, req.EarliestFirstStop)

	// Early-departure gate: a hard node opening before the allowed first
	// departure makes the whole day infeasible.
	if pol.EarliestFirstStop != nil {
		if open := earliestHardOpen(req.Nodes); open != nil && *open < *pol.EarliestFirstStop {
			return earlyDepartureResult(req, pol, *open), nil
		}
	}

	expanded := expand(req.Nodes, req.DayStart, req.DayEnd)

	st := &state{
		clock:          req.DayStart,
		pos:            0,
		usedGroups:     make(map[string]bool),
		visitedOrigins: make(map[string]bool),
	}

	// Hard nodes first, in input order. Multi-window hard nodes try their
	// virtual members in window order; the first fit wins.
	hardOK := placeHardNodes(req, expanded, st, m)

	if hardOK {
		maybeLunch(req.Lunch, st, req.DayEnd)
		runSoftLoop(req, pol, expanded, st, m)
	}

	return buildResult(req, pol, expanded, st, m, hardOK), nil
}

// placeHardNodes commits every hard node or reports failure.
func placeHardNodes(req contract.SolveRequest, expanded []*expNode, st *state, m MatrixView) bool {
	seen := make(map[string]bool)
	for i := range req.Nodes {
		n := &req.Nodes[i]
		if !n.Constraints.IsHardNode || seen[n.ID] {
			continue
		}
		seen[n.ID] = true

		placed := false
		for _, e := range expanded {
			if e.originID != n.Origin() || e.inputIdx != i {
				continue
			}
			if v, ok := tryVisit(e, st, m, req.DayEnd); ok {
				commit(st, v)
				placed = true
				break
			}
		}
		if !placed {
			return false
		}
	}
	return true
}

// runSoftLoop greedily fills the remaining day with the best-scoring soft
// node until nothing fits.
func runSoftLoop(req contract.SolveRequest, pol policy, expanded []*expNode, st *state, m MatrixView) {
	for st.clock < req.DayEnd {
		maybeLunch(req.Lunch, st, req.DayEnd)

		var best *expNode
		var bestVisit visit
		bestScore := 0.0
		for _, e := range expanded {
			if e.node.Constraints.IsHardNode {
				continue
			}
			if st.visitedOrigins[e.originID] {
				continue
			}
			if e.groupID != "" && st.usedGroups[e.groupID] {
				continue
			}
			if closedForDay(e.node, req.DayStart, req.DayEnd) {
				continue
			}
			v, ok := tryVisit(e, st, m, req.DayEnd)
			if !ok {
				continue
			}
			score := rewardOf(e.node)*pol.Weights.Reward -
				float64(v.travelMin)*pol.Weights.Travel -
				float64(v.waitMin)*pol.Weights.Wait
			if best == nil || score > bestScore ||
				(score == bestScore && e.node.ID < best.node.ID) {
				best = e
				bestVisit = v
				bestScore = score
			}
		}
		if best == nil {
			return
		}
		commit(st, bestVisit)
	}
}

// tryVisit computes the visit an entry would produce from the current state,
// reporting false when the window or the day cannot accommodate it.
func tryVisit(e *expNode, st *state, m MatrixView, dayEnd domain.ClockMin) (visit, bool) {
	travel := m.Robust(st.pos, e.matrixPos)
	arrival := st.clock + domain.ClockMin(travel)
	if arrival > e.window.Close {
		return visit{}, false
	}
	start := arrival
	if e.window.Open > start {
		start = e.window.Open
	}
	end := start + domain.ClockMin(e.node.ServiceDurationMin)
	if end > dayEnd {
		return visit{}, false
	}
	return visit{
		entry:       e,
		arrival:     arrival,
		start:       start,
		end:         end,
		waitMin:     int(start - arrival),
		travelMin:   travel,
		idealTravel: m.Ideal(st.pos, e.matrixPos),
	}, true
}

func commit(st *state, v visit) {
	st.visits = append(st.visits, v)
	st.clock = v.end
	st.pos = v.entry.matrixPos
	st.visitedOrigins[v.entry.originID] = true
	if v.entry.groupID != "" {
		st.usedGroups[v.entry.groupID] = true
	}
}

// maybeLunch inserts the synthetic break once the clock enters the lunch
// window, provided the break still fits inside it.
func maybeLunch(lunch *contract.LunchPolicy, st *state, dayEnd domain.ClockMin) {
	if lunch == nil || st.lunch != nil {
		return
	}
	if st.clock < lunch.WindowOpen || st.clock > lunch.WindowClose {
		return
	}
	if st.clock+domain.ClockMin(lunch.DurationMin) > lunch.WindowClose {
		return
	}
	start := st.clock
	if lunch.WindowOpen > start {
		start = lunch.WindowOpen
	}
	end := start + domain.ClockMin(lunch.DurationMin)
	if end > dayEnd {
		return
	}
	st.lunch = &lunchBreak{start: start, end: end}
	st.clock = end
}

// rewardOf is the configured reward, defaulting to 6 - priority so higher
// priority nodes are worth more.
func rewardOf(n *domain.PlanNode) float64 {
	if n.Constraints.Reward != nil {
		return *n.Constraints.Reward
	}
	return float64(6 - n.EffectivePriority())
}

// inputOrigins returns the distinct origin ids of the input in input order.
func inputOrigins(nodes []domain.PlanNode) []string {
	var ids []string
	seen := make(map[string]bool)
	for i := range nodes {
		id := nodes[i].Origin()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
