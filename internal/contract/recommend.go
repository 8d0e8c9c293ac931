package contract

import "github.com/alexanderramin/itinera/internal/domain"

// DirectionIntent is the user's stated preference vector for direction
// selection.
type DirectionIntent struct {
	Preferences   []string
	Pace          domain.UserPace
	RiskTolerance domain.RiskTolerance
	DurationDays  int
}

// Identity gates gray-released directions. A missing identity excludes every
// direction with RolloutPercent < 100.
type Identity struct {
	UserID  string
	Persona []string
	Locale  []string
}

// SelectRequest asks for ranked directions in a country.
type SelectRequest struct {
	CountryCode string
	Intent      DirectionIntent
	Month       *int // 1..12, nil when the travel month is unknown
	Identity    *Identity
}

// ScoreComponent is one normalised 0-100 scoring axis with its weight.
type ScoreComponent struct {
	Score  float64
	Weight float64
}

// ScoreBreakdown decomposes a direction's total score.
type ScoreBreakdown struct {
	TagMatch    ScoreComponent
	Seasonality ScoreComponent
	Pace        ScoreComponent
	Risk        ScoreComponent
	Total       float64
}

// MatchedSignals records why the scoring came out the way it did.
type MatchedSignals struct {
	MatchedTags       []string
	UnmatchedTags     []string
	InBestSeason      bool
	InAvoidSeason     bool
	PaceCompatibility string
	RiskFactors       []string
}

// Recommendation is a ranked direction with its full decomposition.
type Recommendation struct {
	DirectionID   string
	DirectionUUID string
	Name          string
	NameEN        string
	Score         float64
	Breakdown     ScoreBreakdown
	Signals       MatchedSignals
}

// RejectedDirection is a rank 4-6 entry with the component that sank it.
type RejectedDirection struct {
	DirectionID   string
	Name          string
	Score         float64
	PrimaryReason string
}

type SelectResponse struct {
	Recommendations []Recommendation
	Rejected        []RejectedDirection
}

// DecisionLog explains the direction choice attached to a plan.
type DecisionLog struct {
	RouteDirection RouteDirectionDecision
}

type RouteDirectionDecision struct {
	Selected     Recommendation
	Alternatives []Recommendation
	Rejected     []RejectedDirection
}

// TerrainFacts surfaces direction constraints on plan days, zero-valued when
// the direction has none.
type TerrainFacts struct {
	MaxElevationM int
	TotalAscentM  int
}
