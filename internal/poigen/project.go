package poigen

import (
	"github.com/alexanderramin/itinera/internal/domain"
)

// canonical type groups driving the projection heuristics
var (
	natureTypes = map[string]bool{
		"nature": true, "mountain": true, "lake": true, "waterfall": true,
		"national_park": true, "beach": true, "gorge": true,
	}
	museumTypes = map[string]bool{
		"museum": true, "gallery": true, "memorial": true,
	}
	foodTypes = map[string]bool{
		"food": true, "restaurant": true, "market": true, "cafe": true,
	}
)

// Project turns a stored place into a solver-facing activity candidate using
// the canonical-type heuristics.
func Project(p *domain.Place, prio domain.PoolPriority) domain.ActivityCandidate {
	ct := p.Metadata.CanonicalType
	return domain.ActivityCandidate{
		UUID:               p.UUID,
		Name:               p.Name,
		Geo:                p.Geo,
		Type:               ct,
		DurationMin:        durationFor(ct),
		RiskLevel:          riskFor(p.Metadata.ElevationM),
		WeatherSensitivity: weatherSensitivityFor(ct),
		IndoorOutdoor:      indoorOutdoorFor(p),
		IntentTags:         intentTagsFor(p),
		QualityScore:       qualityFor(p.Metadata.Rating),
		Priority:           prio,
		MustSee:            prio == domain.PoolCore,
		RegionKey:          p.Metadata.RegionKey,
	}
}

func durationFor(canonicalType string) int {
	switch {
	case natureTypes[canonicalType]:
		return 120
	case museumTypes[canonicalType]:
		return 90
	case foodTypes[canonicalType]:
		return 60
	default:
		return 60
	}
}

func riskFor(elevationM float64) domain.RiskLevel {
	switch {
	case elevationM > 4000:
		return domain.RiskHigh
	case elevationM > 3000:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func weatherSensitivityFor(canonicalType string) int {
	switch {
	case natureTypes[canonicalType]:
		return 3
	case museumTypes[canonicalType]:
		return 0
	default:
		return 2
	}
}

func indoorOutdoorFor(p *domain.Place) domain.IndoorOutdoor {
	switch p.Metadata.IndoorOutdoor {
	case string(domain.Indoor):
		return domain.Indoor
	case string(domain.Outdoor):
		return domain.Outdoor
	case string(domain.Mixed):
		return domain.Mixed
	}
	ct := p.Metadata.CanonicalType
	switch {
	case natureTypes[ct]:
		return domain.Outdoor
	case museumTypes[ct]:
		return domain.Indoor
	default:
		return domain.Mixed
	}
}

// intentTagsFor merges the stored tags with the canonical-type heuristics.
func intentTagsFor(p *domain.Place) []string {
	tags := append([]string(nil), p.Metadata.Tags...)
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		seen[t] = true
	}
	addTag := func(t string) {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	ct := p.Metadata.CanonicalType
	switch {
	case natureTypes[ct]:
		addTag("nature")
		addTag("photography")
	case museumTypes[ct]:
		addTag("culture")
	case foodTypes[ct]:
		addTag("food")
	}
	return tags
}

func qualityFor(rating *float64) float64 {
	if rating == nil {
		return 0.5
	}
	return *rating / 5
}
