package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

// highWaitThresholdMin is both the timeline WAIT event threshold and the
// HIGH_WAIT_TIME classification threshold.
const highWaitThresholdMin = 15

// criticalSlackMin marks a routed node as critical for robustness scoring.
const criticalSlackMin = 30

func buildResult(req contract.SolveRequest, pol policy, expanded []*expNode, st *state, m MatrixView, hardOK bool) *contract.OptimizationResult {
	res := &contract.OptimizationResult{
		Status: contract.StatusFeasible,
		Diagnostics: contract.Diagnostics{
			Assumptions: contract.Assumptions{
				BufferFactor:   pol.BufferFactor,
				FixedBufferMin: pol.FixedBufferMin,
			},
		},
	}

	visits := st.visits
	if !hardOK {
		// A hard node failed: the whole day is infeasible and every node,
		// already placed or not, becomes a drop.
		visits = nil
	}

	materializeRoute(res, visits, st)
	contexts := classifyDrops(req, res, expanded, visits, m)
	attachExplanations(req, pol, res, contexts)
	computeRobustness(req, res, visits)

	if !hardOK || len(res.Route) == 0 {
		res.Status = contract.StatusInfeasible
	}
	return res
}

// materializeRoute turns committed visits into route nodes and the timeline.
func materializeRoute(res *contract.OptimizationResult, visits []visit, st *state) {
	prevDeparture := domain.ClockMin(0)
	for i, v := range visits {
		travelReported := v.travelMin
		if i == 0 {
			travelReported = 0
		}
		origin := ""
		if v.entry.node.Meta.OriginID != "" && v.entry.node.Meta.OriginID != v.entry.node.ID {
			origin = v.entry.node.Meta.OriginID
		}
		res.Route = append(res.Route, contract.RouteNode{
			Seq:               i + 1,
			NodeID:            v.entry.node.ID,
			OriginID:          origin,
			Name:              v.entry.node.Name,
			Arrival:           v.arrival,
			StartService:      v.start,
			EndService:        v.end,
			WaitMin:           v.waitMin,
			TravelMinFromPrev: travelReported,
		})

		if i > 0 && v.travelMin > 0 {
			res.Timeline = append(res.Timeline, contract.TimelineEvent{
				Type:        contract.EventTravel,
				Start:       prevDeparture,
				End:         prevDeparture + domain.ClockMin(v.travelMin),
				DurationMin: v.travelMin,
				Description: fmt.Sprintf("Travel to %s", v.entry.node.Name),
				NodeID:      v.entry.node.ID,
			})
		}
		if v.waitMin > highWaitThresholdMin {
			res.Timeline = append(res.Timeline, contract.TimelineEvent{
				Type:        contract.EventWait,
				Start:       v.arrival,
				End:         v.start,
				DurationMin: v.waitMin,
				Description: fmt.Sprintf("Wait for %s to open", v.entry.node.Name),
				NodeID:      v.entry.node.ID,
			})
		}
		res.Timeline = append(res.Timeline, contract.TimelineEvent{
			Type:        contract.EventNode,
			Start:       v.start,
			End:         v.end,
			DurationMin: v.entry.node.ServiceDurationMin,
			Description: v.entry.node.Name,
			NodeID:      v.entry.node.ID,
		})

		res.Summary.TotalTravelMin += travelReported
		res.Summary.TotalWaitMin += v.waitMin
		res.Summary.TotalServiceMin += v.entry.node.ServiceDurationMin
		prevDeparture = v.end
	}
	res.Summary.VisitedCount = len(visits)

	if st.lunch != nil && len(visits) > 0 {
		res.Timeline = append(res.Timeline, contract.TimelineEvent{
			Type:        contract.EventLunch,
			Start:       st.lunch.start,
			End:         st.lunch.end,
			DurationMin: int(st.lunch.end - st.lunch.start),
			Description: "Lunch break",
		})
	}

	sort.SliceStable(res.Timeline, func(i, j int) bool {
		return res.Timeline[i].Start < res.Timeline[j].Start
	})
}

// dropContext carries the classification diagnostics for one dropped node.
type dropContext struct {
	reason      contract.DropReasonCode
	arrival     domain.ClockMin
	lastClose   domain.ClockMin
	waitMin     int
	robustBlock bool
}

// classifyDrops assigns a reason to every input node absent from the route.
// Diagnostics are computed against the node's intrinsic feasibility from the
// day origin, so a node squeezed out by hard-node processing reads as
// protected rather than as a window conflict.
func classifyDrops(req contract.SolveRequest, res *contract.OptimizationResult, expanded []*expNode, visits []visit, m MatrixView) []dropContext {
	routed := make(map[string]bool, len(visits))
	for _, v := range visits {
		routed[v.entry.originID] = true
	}

	hardCount := 0
	for i := range req.Nodes {
		if req.Nodes[i].Constraints.IsHardNode {
			hardCount++
		}
	}

	byOrigin := make(map[string][]*expNode)
	for _, e := range expanded {
		byOrigin[e.originID] = append(byOrigin[e.originID], e)
	}

	var contexts []dropContext
	for _, originID := range inputOrigins(req.Nodes) {
		if routed[originID] {
			continue
		}
		members := byOrigin[originID]
		if len(members) == 0 {
			continue
		}
		node := members[0].node
		dc := classifyDrop(node, members, hardCount, req.DayStart, req.DayEnd, m)
		res.Dropped = append(res.Dropped, contract.DroppedNode{
			NodeID:     originID,
			Name:       node.Name,
			ReasonCode: dc.reason,
			Penalty:    node.DropPenaltyValue(),
		})
		contexts = append(contexts, dc)
	}
	res.Summary.DroppedCount = len(res.Dropped)
	return contexts
}

// classifyDrop applies the reason priority cascade to one origin node.
func classifyDrop(node *domain.PlanNode, members []*expNode, hardCount int, dayStart, dayEnd domain.ClockMin, m MatrixView) dropContext {
	pos := members[0].matrixPos
	idealArr := dayStart + domain.ClockMin(m.Ideal(0, pos))
	robustArr := dayStart + domain.ClockMin(m.Robust(0, pos))
	svc := domain.ClockMin(node.ServiceDurationMin)

	lastClose := members[0].window.Close
	for _, e := range members[1:] {
		if e.window.Close > lastClose {
			lastClose = e.window.Close
		}
	}

	dc := dropContext{arrival: robustArr, lastClose: lastClose}

	if closedForDay(node, dayStart, dayEnd) {
		dc.reason = contract.ReasonClosedDay
		return dc
	}
	if idealArr > lastClose || idealArr > dayEnd {
		dc.reason = contract.ReasonTimeWindowConflict
		return dc
	}

	idealReach := reachable(idealArr, svc, members, dayEnd)
	robustReach := reachable(robustArr, svc, members, dayEnd)
	if idealReach && !robustReach {
		dc.reason = contract.ReasonRobustTimeInfeasible
		dc.robustBlock = true
		return dc
	}

	if hardCount > 0 && !node.Constraints.IsHardNode {
		dc.reason = contract.ReasonHardNodeProtection
		return dc
	}

	dc.waitMin = waitAt(robustArr, members)
	if dc.waitMin > highWaitThresholdMin {
		dc.reason = contract.ReasonHighWaitTime
		return dc
	}
	if node.EffectivePriority() >= 4 {
		dc.reason = contract.ReasonLowPriorityNotWorth
		return dc
	}
	dc.reason = contract.ReasonInsufficientTotalTime
	return dc
}

// reachable reports whether an arrival at arr can be serviced inside any
// member window before day end.
func reachable(arr, svc domain.ClockMin, members []*expNode, dayEnd domain.ClockMin) bool {
	for _, e := range members {
		if arr > e.window.Close {
			continue
		}
		start := arr
		if e.window.Open > start {
			start = e.window.Open
		}
		if start+svc <= dayEnd {
			return true
		}
	}
	return false
}

// waitAt returns the smallest wait over windows the arrival can still make.
func waitAt(arr domain.ClockMin, members []*expNode) int {
	best := -1
	for _, e := range members {
		if arr > e.window.Close {
			continue
		}
		w := 0
		if e.window.Open > arr {
			w = int(e.window.Open - arr)
		}
		if best < 0 || w < best {
			best = w
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// attachExplanations renders every drop through the explanation generator.
func attachExplanations(req contract.SolveRequest, pol policy, res *contract.OptimizationResult, contexts []dropContext) {
	for i := range res.Dropped {
		d := &res.Dropped[i]
		var dc dropContext
		if i < len(contexts) {
			dc = contexts[i]
		}
		d.Explanation = Explain(d.Name, d.ReasonCode, ExplainContext{
			Arrival:       dc.arrival,
			WindowClose:   dc.lastClose,
			WaitMin:       dc.waitMin,
			DayEnd:        req.DayEnd,
			HardNodeCount: countHard(req.Nodes),
			BufferFactor:  pol.BufferFactor,
			FixedBuffer:   pol.FixedBufferMin,
		})
	}
}

func countHard(nodes []domain.PlanNode) int {
	n := 0
	for i := range nodes {
		if nodes[i].Constraints.IsHardNode {
			n++
		}
	}
	return n
}

// computeRobustness fills robustness, critical windows, and the summary
// robustness score from the routed visits.
func computeRobustness(req contract.SolveRequest, res *contract.OptimizationResult, visits []visit) {
	res.Robustness.TotalWaitMinutes = res.Summary.TotalWaitMin
	for _, v := range visits {
		res.Robustness.TotalBufferMinutes += v.travelMin - v.idealTravel
	}

	if len(visits) == 0 {
		res.Robustness.RiskLevel = domain.RiskHigh
		return
	}

	slacks := make([]contract.SlackNode, 0, len(visits))
	totalSlack := 0
	critical := 0
	for _, v := range visits {
		slack := int(req.DayEnd - v.end)
		slacks = append(slacks, contract.SlackNode{
			NodeID:   v.entry.node.ID,
			Name:     v.entry.node.Name,
			SlackMin: slack,
		})
		totalSlack += slack
		if slack < criticalSlackMin {
			critical++
		}
		if windowSlack := int(v.entry.window.Close - v.start); windowSlack < criticalSlackMin {
			res.Diagnostics.CriticalWindows = append(res.Diagnostics.CriticalWindows,
				fmt.Sprintf("%s: window closes %s, service starts %s", v.entry.node.Name, v.entry.window.Close, v.start))
		}
	}
	sort.SliceStable(slacks, func(i, j int) bool { return slacks[i].SlackMin < slacks[j].SlackMin })
	top := 3
	if len(slacks) < top {
		top = len(slacks)
	}
	res.Robustness.Top3MinSlackNodes = slacks[:top]

	meanTop := 0.0
	for _, s := range slacks[:top] {
		meanTop += float64(s.SlackMin)
	}
	meanTop /= float64(top)
	switch {
	case meanTop < 30:
		res.Robustness.RiskLevel = domain.RiskHigh
	case meanTop < 60:
		res.Robustness.RiskLevel = domain.RiskMedium
	default:
		res.Robustness.RiskLevel = domain.RiskLow
	}

	avgSlack := float64(totalSlack) / float64(len(visits))
	criticalRatio := float64(critical) / float64(len(visits))
	res.Summary.RobustnessScore = 1 - 0.5*criticalRatio - 0.3*(1-math.Min(avgSlack/60, 1))
}

// earlyDepartureResult builds the INFEASIBLE result for the early-departure
// gate: every hard node is dropped with the conflict, soft nodes fall under
// hard-node protection.
func earlyDepartureResult(req contract.SolveRequest, pol policy, requiredDeparture domain.ClockMin) *contract.OptimizationResult {
	res := &contract.OptimizationResult{
		Status: contract.StatusInfeasible,
		Diagnostics: contract.Diagnostics{
			Assumptions: contract.Assumptions{
				BufferFactor:   pol.BufferFactor,
				FixedBufferMin: pol.FixedBufferMin,
			},
		},
		Robustness: contract.Robustness{RiskLevel: domain.RiskHigh},
	}
	hardCount := countHard(req.Nodes)
	for i := range req.Nodes {
		n := &req.Nodes[i]
		code := contract.ReasonHardNodeProtection
		if n.Constraints.IsHardNode {
			code = contract.ReasonEarlyDepartureConflict
		}
		ctx := ExplainContext{
			DayEnd:            req.DayEnd,
			HardNodeCount:     hardCount,
			BufferFactor:      pol.BufferFactor,
			FixedBuffer:       pol.FixedBufferMin,
			RequiredDeparture: requiredDeparture,
		}
		if pol.EarliestFirstStop != nil {
			ctx.EarliestStart = *pol.EarliestFirstStop
		}
		res.Dropped = append(res.Dropped, contract.DroppedNode{
			NodeID:      n.ID,
			Name:        n.Name,
			ReasonCode:  code,
			Penalty:     n.DropPenaltyValue(),
			Explanation: Explain(n.Name, code, ctx),
		})
	}
	res.Summary.DroppedCount = len(res.Dropped)
	return res
}
