package service

import (
	"sort"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

// priorityLevelFor maps pool priority tiers onto solver priority levels.
func priorityLevelFor(p domain.PoolPriority) int {
	switch p {
	case domain.PoolCore:
		return 1
	case domain.PoolRecommended:
		return 3
	default:
		return 4
	}
}

// injectConstraints turns the candidate pool into solver nodes: must-see
// candidates become hard nodes, the rest soft with tiered priorities. High
// risk candidates are filtered for low-tolerance travellers and the pool is
// capped highest-value first.
func injectConstraints(pool []domain.ActivityCandidate, tolerance domain.RiskTolerance, maxStops int) ([]domain.PlanNode, []contract.PoolFilter) {
	var filters []contract.PoolFilter

	kept := make([]domain.ActivityCandidate, 0, len(pool))
	removedRisk := 0
	for _, c := range pool {
		if tolerance == domain.RiskToleranceLow && c.RiskLevel == domain.RiskHigh && !c.MustSee {
			removedRisk++
			continue
		}
		kept = append(kept, c)
	}
	if removedRisk > 0 {
		filters = append(filters, contract.PoolFilter{
			Stage:   "constraints",
			Removed: removedRisk,
			Reason:  "high risk level with low tolerance",
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].MustSee != kept[j].MustSee {
			return kept[i].MustSee
		}
		pi, pj := priorityLevelFor(kept[i].Priority), priorityLevelFor(kept[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return kept[i].QualityScore > kept[j].QualityScore
	})

	if maxStops > 0 && len(kept) > maxStops {
		filters = append(filters, contract.PoolFilter{
			Stage:   "constraints",
			Removed: len(kept) - maxStops,
			Reason:  "max stops cap",
		})
		kept = kept[:maxStops]
	}

	nodes := make([]domain.PlanNode, 0, len(kept))
	for _, c := range kept {
		nodes = append(nodes, domain.PlanNode{
			ID:                 c.UUID,
			Name:               c.Name,
			Type:               domain.NodePOI,
			Geo:                c.Geo,
			ServiceDurationMin: c.DurationMin,
			Constraints: domain.NodeConstraints{
				IsHardNode:    c.MustSee,
				PriorityLevel: priorityLevelFor(c.Priority),
			},
			Meta: domain.NodeMeta{
				RegionID: c.RegionKey,
				Tags:     c.IntentTags,
			},
		})
	}
	return nodes, filters
}

// hitCounts splits the routed visits into hard and soft counts.
func hitCounts(nodes []domain.PlanNode, result *contract.OptimizationResult) (hard, soft int) {
	hardIDs := make(map[string]bool)
	for i := range nodes {
		if nodes[i].Constraints.IsHardNode {
			hardIDs[nodes[i].ID] = true
		}
	}
	for _, rn := range result.Route {
		id := rn.NodeID
		if rn.OriginID != "" {
			id = rn.OriginID
		}
		if hardIDs[id] {
			hard++
		} else {
			soft++
		}
	}
	return hard, soft
}

// terrainFor derives the plan-facing terrain facts from direction
// constraints, zero-valued when the direction sets none.
func terrainFor(d *domain.RouteDirection) contract.TerrainFacts {
	return contract.TerrainFacts{
		MaxElevationM: d.Soft.MaxElevationM,
		TotalAscentM:  d.Soft.MaxDailyAscentM,
	}
}
