package models

type MotivationCategory string

const (
	MotivationMoney       MotivationCategory = "money"
	MotivationWinning     MotivationCategory = "winning"
	MotivationLoyalty     MotivationCategory = "loyalty"
	MotivationRole        MotivationCategory = "role"
	MotivationStarPairing MotivationCategory = "starPairing"
	MotivationCoaching    MotivationCategory = "coaching"
	MotivationMarket      MotivationCategory = "market"
	MotivationLegacy      MotivationCategory = "legacy"
)

// MotivationCategories lists every category in a fixed order so that weighted
// draws and recomputations iterate deterministically.
var MotivationCategories = []MotivationCategory{
	MotivationMoney,
	MotivationWinning,
	MotivationLoyalty,
	MotivationRole,
	MotivationStarPairing,
	MotivationCoaching,
	MotivationMarket,
	MotivationLegacy,
}

// Motivation pairs a long-lived weight with a context-dependent satisfaction.
// Weight is fixed at generation and only moves through career-event shifts;
// satisfaction is recomputed against a supplied context every time a retention
// score is requested. The two are never conflated.
type Motivation struct {
	Category     MotivationCategory `json:"category"`
	Weight       float64            `json:"weight"`
	Satisfaction float64            `json:"satisfaction"`
}
