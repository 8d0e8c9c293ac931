package timematrix

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Components splits every robust entry into its additive parts so callers can
// distinguish "unreachable at all" from "unreachable only after inflation".
type Components struct {
	API         [][]int
	Buffer      [][]float64
	Fixed       [][]int
	Switch      [][]int
	CrossRegion [][]int
}

// RobustTimeMatrix is the N x N inflated travel-time matrix over an ordered
// node list. Entries are minutes; the diagonal is zero; the matrix is not
// required to be symmetric.
type RobustTimeMatrix struct {
	Unit       string
	Base       string
	Policy     Policy
	Matrix     [][]int
	Components Components

	// FallbackUsed is set when any pair fell back to the straight-line
	// estimate after a provider failure.
	FallbackUsed bool
	// Messages records per-pair provider failures for the trace.
	Messages []string
}

// Robust returns the inflated travel time from node i to node j.
func (m *RobustTimeMatrix) Robust(i, j int) int {
	return m.Matrix[i][j]
}

// Ideal returns the raw provider duration from node i to node j.
func (m *RobustTimeMatrix) Ideal(i, j int) int {
	return m.Components.API[i][j]
}

// Builder materialises robust matrices from a provider and a policy.
type Builder struct {
	provider Provider
	policy   Policy
}

// NewBuilder creates a Builder. A nil provider means straight-line estimates
// only.
func NewBuilder(provider Provider, policy Policy) *Builder {
	if provider == nil {
		provider = EstimateProvider{}
	}
	return &Builder{provider: provider, policy: policy}
}

// Policy exposes the builder's inflation policy.
func (b *Builder) Policy() Policy { return b.policy }

// Build computes T_robust(i,j) = round(T_api*alpha + beta + T_switch + T_cross)
// over the ordered node list. Provider failures degrade to the straight-line
// estimate and are recorded, never returned. An expired context degrades the
// same way: the remaining pairs are filled from the estimate so the caller
// always gets a complete best-effort matrix.
func (b *Builder) Build(ctx context.Context, nodes []*domain.PlanNode) (*RobustTimeMatrix, error) {
	n := len(nodes)
	m := &RobustTimeMatrix{
		Unit:   "minute",
		Base:   "api_duration",
		Policy: b.policy,
		Matrix: newIntGrid(n),
		Components: Components{
			API:         newIntGrid(n),
			Buffer:      newFloatGrid(n),
			Fixed:       newIntGrid(n),
			Switch:      newIntGrid(n),
			CrossRegion: newIntGrid(n),
		},
	}

	expired := false
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if !expired && ctx.Err() != nil {
				expired = true
				m.FallbackUsed = true
				m.Messages = append(m.Messages,
					fmt.Sprintf("time matrix: %v, remaining pairs use the straight-line estimate", ctx.Err()))
			}

			from, to := nodes[i], nodes[j]
			mode := ModeOf(from)

			var api int
			if expired {
				api = Estimate(from.Geo, to.Geo, mode)
			} else if got, err := b.provider.Duration(ctx, from.Geo, to.Geo, mode); err != nil {
				api = Estimate(from.Geo, to.Geo, mode)
				m.FallbackUsed = true
				m.Messages = append(m.Messages,
					fmt.Sprintf("travel %s->%s: fallback estimate after: %v", from.ID, to.ID, err))
			} else {
				api = got
			}

			switchCost := b.policy.SwitchCost(mode, ModeOf(to))
			crossCost := 0
			if from.Meta.RegionID != "" && to.Meta.RegionID != "" && from.Meta.RegionID != to.Meta.RegionID {
				crossCost = b.policy.CrossRegionCostMin
			}

			buffer := float64(api) * (b.policy.BufferFactor - 1)

			m.Components.API[i][j] = api
			m.Components.Buffer[i][j] = buffer
			m.Components.Fixed[i][j] = b.policy.FixedBufferMin
			m.Components.Switch[i][j] = switchCost
			m.Components.CrossRegion[i][j] = crossCost
			m.Matrix[i][j] = int(math.Round(float64(api)*b.policy.BufferFactor)) +
				b.policy.FixedBufferMin + switchCost + crossCost
		}
	}
	return m, nil
}

func newIntGrid(n int) [][]int {
	g := make([][]int, n)
	for i := range g {
		g[i] = make([]int, n)
	}
	return g
}

func newFloatGrid(n int) [][]float64 {
	g := make([][]float64, n)
	for i := range g {
		g[i] = make([]float64, n)
	}
	return g
}
