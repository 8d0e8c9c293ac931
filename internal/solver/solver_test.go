package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

func dayRequest(nodes ...domain.PlanNode) contract.SolveRequest {
	return contract.SolveRequest{
		Nodes:    nodes,
		DayStart: domain.MustClock("09:00"),
		DayEnd:   domain.MustClock("18:00"),
		Timezone: "Asia/Tokyo",
	}
}

func softNode(id string, svcMin int, open, close string) domain.PlanNode {
	return domain.PlanNode{
		ID:                 id,
		Name:               id,
		Type:               domain.NodePOI,
		ServiceDurationMin: svcMin,
		TimeWindows: []domain.TimeWindow{
			{Open: domain.MustClock(open), Close: domain.MustClock(close)},
		},
	}
}

func hardNode(id string, svcMin int, open, close string) domain.PlanNode {
	n := softNode(id, svcMin, open, close)
	n.Constraints.IsHardNode = true
	return n
}

func fptr(v float64) *float64 { return &v }

func TestSolveSingleHappyVisit(t *testing.T) {
	req := dayRequest(softNode("A", 60, "10:00", "16:00"))
	req.BufferFactor = fptr(1.0)
	zero := 0
	req.FixedBufferMin = &zero

	res, err := Solve(req, ZeroMatrix{})
	require.NoError(t, err)

	assert.Equal(t, contract.StatusFeasible, res.Status)
	require.Len(t, res.Route, 1)
	rn := res.Route[0]
	assert.Equal(t, 1, rn.Seq)
	assert.Equal(t, "A", rn.NodeID)
	assert.Equal(t, domain.MustClock("09:00"), rn.Arrival)
	assert.Equal(t, domain.MustClock("10:00"), rn.StartService)
	assert.Equal(t, domain.MustClock("11:00"), rn.EndService)
	assert.Equal(t, 60, rn.WaitMin)
	assert.Equal(t, 0, rn.TravelMinFromPrev)

	var waits []contract.TimelineEvent
	for _, ev := range res.Timeline {
		if ev.Type == contract.EventWait {
			waits = append(waits, ev)
		}
	}
	require.Len(t, waits, 1)
	assert.Equal(t, 60, waits[0].DurationMin)

	assert.Equal(t, 1, res.Summary.VisitedCount)
	assert.Equal(t, 60, res.Summary.TotalWaitMin)
	assert.Equal(t, 60, res.Summary.TotalServiceMin)
	assert.Equal(t, 0, res.Summary.TotalTravelMin)
}

func TestSolveShortWaitHasNoWaitEvent(t *testing.T) {
	req := dayRequest(softNode("A", 30, "09:10", "16:00"))

	res, err := Solve(req, ZeroMatrix{})
	require.NoError(t, err)

	require.Len(t, res.Route, 1)
	assert.Equal(t, 10, res.Route[0].WaitMin)
	for _, ev := range res.Timeline {
		assert.NotEqual(t, contract.EventWait, ev.Type)
	}
}

func TestSolveHardNodeProtection(t *testing.T) {
	req := dayRequest(
		hardNode("H", 120, "09:00", "12:00"),
		softNode("S", 60, "09:00", "10:00"),
	)
	// Travel is free from the day origin but 180 minutes between H and S.
	m := FuncMatrix{RobustFn: func(i, j int) int {
		if i == 0 || j == 0 {
			return 0
		}
		if i != j {
			return 180
		}
		return 0
	}}

	res, err := Solve(req, m)
	require.NoError(t, err)

	assert.Equal(t, contract.StatusFeasible, res.Status)
	require.Len(t, res.Route, 1)
	assert.Equal(t, "H", res.Route[0].NodeID)

	require.Len(t, res.Dropped, 1)
	d := res.Dropped[0]
	assert.Equal(t, "S", d.NodeID)
	assert.Equal(t, contract.ReasonHardNodeProtection, d.ReasonCode)
	assert.Equal(t, 1, d.Explanation.Facts["hard_node_count"])
	assert.NotEmpty(t, d.Explanation.Suggestions)
}

func TestSolveEarlyDepartureConflict(t *testing.T) {
	req := dayRequest(hardNode("H", 60, "09:00", "12:00"))
	earliest := domain.MustClock("10:00")
	req.EarliestFirstStop = &earliest

	res, err := Solve(req, ZeroMatrix{})
	require.NoError(t, err)

	assert.Equal(t, contract.StatusInfeasible, res.Status)
	assert.Empty(t, res.Route)
	require.Len(t, res.Dropped, 1)
	d := res.Dropped[0]
	assert.Equal(t, contract.ReasonEarlyDepartureConflict, d.ReasonCode)
	assert.Equal(t, "09:00", d.Explanation.Facts["required_departure"])
}

func TestSolveRobustInfeasibility(t *testing.T) {
	// Ideal travel 150 minutes makes the 12:00 close, inflated travel 225
	// does not.
	node := softNode("A", 60, "09:00", "12:00")

	ideal := FuncMatrix{
		RobustFn: func(i, j int) int { return 150 },
		IdealFn:  func(i, j int) int { return 150 },
	}
	res, err := Solve(dayRequest(node), ideal)
	require.NoError(t, err)
	require.Len(t, res.Route, 1)
	assert.Equal(t, "A", res.Route[0].NodeID)

	inflated := FuncMatrix{
		RobustFn: func(i, j int) int { return 225 },
		IdealFn:  func(i, j int) int { return 150 },
	}
	req := dayRequest(node)
	req.BufferFactor = fptr(1.5)
	res, err = Solve(req, inflated)
	require.NoError(t, err)

	assert.Empty(t, res.Route)
	require.Len(t, res.Dropped, 1)
	d := res.Dropped[0]
	assert.Equal(t, contract.ReasonRobustTimeInfeasible, d.ReasonCode)
	assert.Equal(t, 1.5, d.Explanation.Facts["buffer_factor"])
	assert.Equal(t, 1.5, res.Diagnostics.Assumptions.BufferFactor)
}

func TestSolveLunchBreak(t *testing.T) {
	req := dayRequest(
		softNode("A", 180, "09:00", "12:00"),
		softNode("B", 60, "13:00", "18:00"),
	)
	req.Lunch = &contract.LunchPolicy{
		WindowOpen:  domain.MustClock("12:00"),
		WindowClose: domain.MustClock("14:00"),
		DurationMin: 60,
	}

	res, err := Solve(req, ZeroMatrix{})
	require.NoError(t, err)

	require.Len(t, res.Route, 2)
	assert.Equal(t, "A", res.Route[0].NodeID)
	assert.Equal(t, "B", res.Route[1].NodeID)
	// The break starts as soon as the clock enters the lunch window.
	assert.Equal(t, domain.MustClock("13:00"), res.Route[1].Arrival)

	var lunch *contract.TimelineEvent
	for i := range res.Timeline {
		if res.Timeline[i].Type == contract.EventLunch {
			lunch = &res.Timeline[i]
		}
	}
	require.NotNil(t, lunch)
	assert.Equal(t, domain.MustClock("12:00"), lunch.Start)
	assert.Equal(t, domain.MustClock("13:00"), lunch.End)
}

func TestSolveMultiWindowUsesOneWindow(t *testing.T) {
	n := domain.PlanNode{
		ID:                 "M",
		Name:               "M",
		ServiceDurationMin: 60,
		TimeWindows: []domain.TimeWindow{
			{Open: domain.MustClock("09:30"), Close: domain.MustClock("10:00")},
			{Open: domain.MustClock("14:00"), Close: domain.MustClock("15:00")},
		},
	}

	res, err := Solve(dayRequest(n), ZeroMatrix{})
	require.NoError(t, err)

	require.Len(t, res.Route, 1)
	assert.Equal(t, "M#w1", res.Route[0].NodeID)
	assert.Equal(t, "M", res.Route[0].OriginID)
	assert.Empty(t, res.Dropped)
}

func TestSolveTieBreakPrefersLowerID(t *testing.T) {
	req := dayRequest(
		softNode("b", 60, "09:00", "18:00"),
		softNode("a", 60, "09:00", "18:00"),
	)

	res, err := Solve(req, ZeroMatrix{})
	require.NoError(t, err)

	require.Len(t, res.Route, 2)
	assert.Equal(t, "a", res.Route[0].NodeID)
	assert.Equal(t, "b", res.Route[1].NodeID)
}

func TestSolveClosedDayDrop(t *testing.T) {
	res, err := Solve(dayRequest(softNode("N", 60, "19:00", "21:00")), ZeroMatrix{})
	require.NoError(t, err)

	assert.Equal(t, contract.StatusInfeasible, res.Status)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, contract.ReasonClosedDay, res.Dropped[0].ReasonCode)
}

func TestSolveInfeasibleHardNodeDropsEverything(t *testing.T) {
	req := dayRequest(
		hardNode("H", 120, "08:00", "08:30"),
		softNode("S", 60, "09:00", "18:00"),
	)

	res, err := Solve(req, ZeroMatrix{})
	require.NoError(t, err)

	assert.Equal(t, contract.StatusInfeasible, res.Status)
	assert.Empty(t, res.Route)
	require.Len(t, res.Dropped, 2)
	byID := map[string]contract.DropReasonCode{}
	for _, d := range res.Dropped {
		byID[d.NodeID] = d.ReasonCode
	}
	assert.Equal(t, contract.ReasonClosedDay, byID["H"])
	assert.Equal(t, contract.ReasonHardNodeProtection, byID["S"])
}

func TestDropPenaltyDefaults(t *testing.T) {
	n := softNode("P", 60, "19:00", "20:00")
	n.Constraints.PriorityLevel = 2

	res, err := Solve(dayRequest(n), ZeroMatrix{})
	require.NoError(t, err)

	require.Len(t, res.Dropped, 1)
	assert.Equal(t, 4000, res.Dropped[0].Penalty)
}

func TestPresetForUnknownPaceFallsBack(t *testing.T) {
	assert.Equal(t, PresetFor(domain.UserPaceModerate), PresetFor(domain.UserPace("skipping")))
	assert.Equal(t, 1.3, PresetFor(domain.UserPaceRelaxed).BufferFactor)
	assert.Equal(t, 10, PresetFor(domain.UserPaceIntense).FixedBufferMin)
}
