package selector

import (
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

// Component weights. They sum to 1 so the total stays on the 0-100 scale.
const (
	WeightTagMatch    = 0.4
	WeightSeasonality = 0.3
	WeightPace        = 0.2
	WeightRisk        = 0.1
)

const (
	paceCompatible   = "compatible"
	paceIncompatible = "incompatible"
	paceUnknown      = "unknown"
)

// scoreDirection produces the full breakdown and signals for one direction
// against the intent.
func scoreDirection(d *domain.RouteDirection, intent contract.DirectionIntent, month *int) (contract.ScoreBreakdown, contract.MatchedSignals) {
	var sig contract.MatchedSignals

	tag := scoreTagMatch(intent.Preferences, d.Tags, &sig)
	season := scoreSeasonality(d.Seasonality, month, &sig)
	pace := scorePace(intent.Pace, d.Skeleton.DailyPace, &sig)
	risk := scoreRisk(intent.RiskTolerance, d, &sig)

	bd := contract.ScoreBreakdown{
		TagMatch:    contract.ScoreComponent{Score: tag, Weight: WeightTagMatch},
		Seasonality: contract.ScoreComponent{Score: season, Weight: WeightSeasonality},
		Pace:        contract.ScoreComponent{Score: pace, Weight: WeightPace},
		Risk:        contract.ScoreComponent{Score: risk, Weight: WeightRisk},
	}
	bd.Total = tag*WeightTagMatch + season*WeightSeasonality + pace*WeightPace + risk*WeightRisk
	return bd, sig
}

func scoreTagMatch(prefs, tags []string, sig *contract.MatchedSignals) float64 {
	if len(prefs) == 0 {
		sig.UnmatchedTags = append([]string(nil), tags...)
		return 50
	}
	if len(tags) == 0 {
		return 30
	}
	prefSet := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		prefSet[p] = true
	}
	matched := 0
	for _, tg := range tags {
		if prefSet[tg] {
			matched++
			sig.MatchedTags = append(sig.MatchedTags, tg)
		} else {
			sig.UnmatchedTags = append(sig.UnmatchedTags, tg)
		}
	}
	denom := len(prefs)
	if len(tags) > denom {
		denom = len(tags)
	}
	return float64(matched) / float64(denom) * 100
}

func scoreSeasonality(s domain.Seasonality, month *int, sig *contract.MatchedSignals) float64 {
	if month == nil {
		return 50
	}
	for _, m := range s.AvoidMonths {
		if m == *month {
			sig.InAvoidSeason = true
			return 0
		}
	}
	for _, m := range s.BestMonths {
		if m == *month {
			sig.InBestSeason = true
			return 100
		}
	}
	return 33
}

func scorePace(user domain.UserPace, route domain.DailyPace, sig *contract.MatchedSignals) float64 {
	if user == "" || route == "" {
		sig.PaceCompatibility = paceUnknown
		return 50
	}
	accepted, ok := domain.PaceCompatibility[user]
	if !ok {
		sig.PaceCompatibility = paceUnknown
		return 50
	}
	for _, p := range accepted {
		if p == route {
			sig.PaceCompatibility = paceCompatible
			return 100
		}
	}
	sig.PaceCompatibility = paceIncompatible
	return 30
}

func scoreRisk(tol domain.RiskTolerance, d *domain.RouteDirection, sig *contract.MatchedSignals) float64 {
	sig.RiskFactors = riskFactors(d)
	switch tol {
	case domain.RiskToleranceLow:
		if !d.HasHighRisk() {
			return 100
		}
		return 30
	case domain.RiskToleranceMedium:
		return 70
	case domain.RiskToleranceHigh:
		if d.HasHighRisk() {
			return 100
		}
		return 30
	default:
		return 50
	}
}

func riskFactors(d *domain.RouteDirection) []string {
	var out []string
	if d.RiskProfile.AltitudeSickness {
		out = append(out, "altitude_sickness")
	}
	if d.RiskProfile.RoadClosure {
		out = append(out, "road_closure")
	}
	if d.RiskProfile.FerryDependent {
		out = append(out, "ferry_dependent")
	}
	if d.RiskProfile.WeatherWindow {
		out = append(out, "weather_window")
	}
	return out
}

// primaryReason names the component whose weighted contribution is smallest.
func primaryReason(bd contract.ScoreBreakdown) string {
	type weighted struct {
		name  string
		value float64
	}
	parts := []weighted{
		{"tagMatch", bd.TagMatch.Score * bd.TagMatch.Weight},
		{"seasonality", bd.Seasonality.Score * bd.Seasonality.Weight},
		{"pace", bd.Pace.Score * bd.Pace.Weight},
		{"risk", bd.Risk.Score * bd.Risk.Weight},
	}
	min := parts[0]
	for _, p := range parts[1:] {
		if p.value < min.value {
			min = p
		}
	}
	return min.name
}
