package service

import (
	"frontoffice/internal/models"
	"frontoffice/internal/valuation"
)

// fallbackPickValue covers picks whose metadata is unknown to the valuer.
const fallbackPickValue = 20.0

// pickEquity is the baseline value curve for draft capital: first-rounders are
// worth a rotation player, second-rounders a flyer, and equity decays the
// further out the pick conveys.
func pickEquity(pick models.DraftPick, seasonYear int) float64 {
	base := 12.0
	if pick.Round <= 1 {
		base = 40.0
	}
	yearsOut := pick.Year - seasonYear
	if yearsOut < 0 {
		yearsOut = 0
	}
	for i := 0; i < yearsOut; i++ {
		base *= 0.92
	}
	return base
}

// PickValuerFrom indexes every pick the league currently holds and returns a
// valuer over pick ids. Unknown ids get the fallback value.
func PickValuerFrom(teams []models.Team, seasonYear int) valuation.PickValuer {
	index := map[string]models.DraftPick{}
	for _, t := range teams {
		for _, pick := range t.Picks {
			index[pick.ID] = pick
		}
	}
	return func(id string) float64 {
		pick, ok := index[id]
		if !ok {
			return fallbackPickValue
		}
		return pickEquity(pick, seasonYear)
	}
}
