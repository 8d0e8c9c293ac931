package domain

type DirectionStatus string

const (
	DirectionDraft      DirectionStatus = "draft"
	DirectionActive     DirectionStatus = "active"
	DirectionDeprecated DirectionStatus = "deprecated"
)

type DailyPace string

const (
	PaceLight    DailyPace = "LIGHT"
	PaceModerate DailyPace = "MODERATE"
	PaceIntense  DailyPace = "INTENSE"
	// Legacy pace labels still present in older direction rows.
	PaceRelax     DailyPace = "RELAX"
	PaceBalanced  DailyPace = "BALANCED"
	PaceChallenge DailyPace = "CHALLENGE"
)

type UserPace string

const (
	UserPaceRelaxed  UserPace = "relaxed"
	UserPaceModerate UserPace = "moderate"
	UserPaceIntense  UserPace = "intense"
)

// PaceCompatibility maps a user pace to the set of route paces it accepts.
var PaceCompatibility = map[UserPace][]DailyPace{
	UserPaceRelaxed:  {PaceLight, PaceRelax, PaceModerate},
	UserPaceModerate: {PaceModerate, PaceBalanced},
	UserPaceIntense:  {PaceIntense, PaceChallenge, PaceModerate},
}

type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "low"
	RiskToleranceMedium RiskTolerance = "medium"
	RiskToleranceHigh   RiskTolerance = "high"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type NodeType string

const (
	NodePOI        NodeType = "poi"
	NodeRestaurant NodeType = "restaurant"
	NodeHotel      NodeType = "hotel"
	NodeBreak      NodeType = "break"
	NodeVirtual    NodeType = "virtual"
)

type TravelMode string

const (
	ModeWalk    TravelMode = "walk"
	ModeDrive   TravelMode = "drive"
	ModeTransit TravelMode = "transit"
	ModeMetro   TravelMode = "metro"
)

type PoolPriority string

const (
	PoolCore        PoolPriority = "core"
	PoolRecommended PoolPriority = "recommended"
	PoolOptional    PoolPriority = "optional"
)

type IndoorOutdoor string

const (
	Indoor  IndoorOutdoor = "indoor"
	Outdoor IndoorOutdoor = "outdoor"
	Mixed   IndoorOutdoor = "mixed"
)
