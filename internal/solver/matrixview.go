package solver

// MatrixView gives the solver robust and ideal travel minutes between matrix
// positions. Position 0 is the day origin; position k >= 1 corresponds to the
// k-th input node. Virtual nodes produced by multi-window expansion share
// their origin's position.
type MatrixView interface {
	// Robust is the inflated travel time used for scheduling.
	Robust(i, j int) int
	// Ideal is the raw travel time, used to classify drops that only the
	// inflation made infeasible.
	Ideal(i, j int) int
}

// ZeroMatrix is a MatrixView with no travel anywhere. Useful for single-site
// days and tests.
type ZeroMatrix struct{}

func (ZeroMatrix) Robust(i, j int) int { return 0 }
func (ZeroMatrix) Ideal(i, j int) int  { return 0 }

// FuncMatrix adapts two closures into a MatrixView.
type FuncMatrix struct {
	RobustFn func(i, j int) int
	IdealFn  func(i, j int) int
}

func (m FuncMatrix) Robust(i, j int) int {
	if m.RobustFn == nil {
		return 0
	}
	return m.RobustFn(i, j)
}

func (m FuncMatrix) Ideal(i, j int) int {
	if m.IdealFn == nil {
		return m.Robust(i, j)
	}
	return m.IdealFn(i, j)
}
