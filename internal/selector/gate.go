package selector

import (
	"hash/fnv"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

// userBucket maps a user id to a stable 1..100 bucket. The same user always
// lands in the same bucket so gray release is sticky across requests.
func userBucket(userID string) int {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return int(h.Sum32()%100) + 1
}

// passesRollout applies the gray-release percentage gate. Fully rolled-out
// directions skip the check; without an identity a partial rollout always
// excludes.
func passesRollout(d *domain.RouteDirection, id *contract.Identity) bool {
	if d.RolloutPercent >= 100 {
		return true
	}
	if id == nil || id.UserID == "" {
		return false
	}
	return userBucket(id.UserID) <= d.RolloutPercent
}

// passesAudience checks persona and locale overlap. A set filter with no
// overlapping user attribute excludes the direction.
func passesAudience(d *domain.RouteDirection, id *contract.Identity) bool {
	if len(d.Audience.Persona) > 0 {
		if id == nil || !intersects(d.Audience.Persona, id.Persona) {
			return false
		}
	}
	if len(d.Audience.Locale) > 0 {
		if id == nil || !intersects(d.Audience.Locale, id.Locale) {
			return false
		}
	}
	return true
}

// inAvoidSeason reports whether the travel month is explicitly avoided.
func inAvoidSeason(d *domain.RouteDirection, month *int) bool {
	if month == nil {
		return false
	}
	for _, m := range d.Seasonality.AvoidMonths {
		if m == *month {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
