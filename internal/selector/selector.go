// Package selector ranks route directions against a user intent vector with a
// full score decomposition, applying gray-release and season gates first.
package selector

import (
	"sort"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

const (
	topRecommendations = 3
	maxRejected        = 3
)

// Select gates and ranks the given directions. Callers load the directions
// for the request's country first; deprecated and inactive rows should
// already be excluded, but Select re-checks selectability to be safe against
// stale caches.
func Select(directions []domain.RouteDirection, req contract.SelectRequest) contract.SelectResponse {
	type scored struct {
		dir       *domain.RouteDirection
		breakdown contract.ScoreBreakdown
		signals   contract.MatchedSignals
	}

	var ranked []scored
	for i := range directions {
		d := &directions[i]
		if !d.Selectable() {
			continue
		}
		if !passesRollout(d, req.Identity) || !passesAudience(d, req.Identity) {
			continue
		}
		if inAvoidSeason(d, req.Month) {
			continue
		}
		bd, sig := scoreDirection(d, req.Intent, req.Month)
		ranked = append(ranked, scored{dir: d, breakdown: bd, signals: sig})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].breakdown.Total != ranked[j].breakdown.Total {
			return ranked[i].breakdown.Total > ranked[j].breakdown.Total
		}
		return ranked[i].dir.ID < ranked[j].dir.ID
	})

	var resp contract.SelectResponse
	for rank, s := range ranked {
		if rank < topRecommendations {
			resp.Recommendations = append(resp.Recommendations, contract.Recommendation{
				DirectionID:   s.dir.ID,
				DirectionUUID: s.dir.UUID,
				Name:          s.dir.Name,
				NameEN:        s.dir.NameEN,
				Score:         s.breakdown.Total,
				Breakdown:     s.breakdown,
				Signals:       s.signals,
			})
			continue
		}
		if len(resp.Rejected) < maxRejected {
			resp.Rejected = append(resp.Rejected, contract.RejectedDirection{
				DirectionID:   s.dir.ID,
				Name:          s.dir.Name,
				Score:         s.breakdown.Total,
				PrimaryReason: primaryReason(s.breakdown),
			})
		}
	}
	return resp
}
