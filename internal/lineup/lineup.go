// Package lineup selects starting fives, classifies substitution strategies
// and handles fatigue-aware replacement. It never mutates the roster; swaps
// come back as values the caller applies.
package lineup

import (
	"sort"

	"frontoffice/internal/league"
	"frontoffice/internal/models"
)

const (
	// FatigueCaution is the fatigue level above which ratings start to decay.
	FatigueCaution = 50.0
	// FatigueRest flags a player who should sit.
	FatigueRest = 70.0
	// fatiguePenaltyRate is rating points lost per fatigue point above caution.
	fatiguePenaltyRate = 0.5
	// freshnessSwapMargin is how much fresher a bench player must be to take a
	// healthy starter's spot in the daily refresh.
	freshnessSwapMargin = 20.0
)

// EffectiveRating discounts the overall rating for fatigue above the caution
// threshold, floored at zero.
func EffectiveRating(p models.Player) float64 {
	r := float64(p.RatingOr(70))
	if p.Fatigue > FatigueCaution {
		r -= fatiguePenaltyRate * (p.Fatigue - FatigueCaution)
	}
	if r < 0 {
		return 0
	}
	return r
}

// ShouldRest reports whether the player has crossed the rest threshold.
func ShouldRest(p models.Player) bool {
	return p.Fatigue >= FatigueRest
}

// Lineup maps the five canonical slots to assigned players; a slot is nil
// only when the roster cannot field five healthy bodies.
type Lineup [5]*models.Player

// SelectBestLineup fills the canonical positions in two passes. Pass one
// prefers a fresh, healthy position match, taking a resting match only when
// no fresh one exists for the slot. Pass two fills leftovers with the best
// remaining healthy player regardless of position. A player is never assigned
// twice and an injured player is never assigned.
func SelectBestLineup(roster []models.Player) Lineup {
	var lineup Lineup
	used := map[string]bool{}

	for slot, pos := range models.LineupPositions {
		var fresh, resting *models.Player
		for i := range roster {
			p := &roster[i]
			if used[p.ID] || p.Injured || !p.PlaysPosition(pos) {
				continue
			}
			if ShouldRest(*p) {
				if resting == nil || EffectiveRating(*p) > EffectiveRating(*resting) {
					resting = p
				}
				continue
			}
			if fresh == nil || EffectiveRating(*p) > EffectiveRating(*fresh) {
				fresh = p
			}
		}
		pick := fresh
		if pick == nil {
			pick = resting
		}
		if pick != nil {
			lineup[slot] = pick
			used[pick.ID] = true
		}
	}

	for slot := range lineup {
		if lineup[slot] != nil {
			continue
		}
		var best *models.Player
		for i := range roster {
			p := &roster[i]
			if used[p.ID] || p.Injured {
				continue
			}
			if best == nil || EffectiveRating(*p) > EffectiveRating(*best) {
				best = p
			}
		}
		if best != nil {
			lineup[slot] = best
			used[best.ID] = true
		}
	}
	return lineup
}

// FindReplacement ranks eligible non-starters for a slot: rested before
// resting, primary-position matches before out-of-position bodies, then by
// effective rating. Injured players are never eligible.
func FindReplacement(roster []models.Player, starterIDs map[string]bool, pos models.Position) *models.Player {
	var candidates []*models.Player
	for i := range roster {
		p := &roster[i]
		if starterIDs[p.ID] || p.Injured {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := ShouldRest(*candidates[i]), ShouldRest(*candidates[j])
		if ri != rj {
			return !ri
		}
		mi, mj := candidates[i].Position == pos, candidates[j].Position == pos
		if mi != mj {
			return mi
		}
		return EffectiveRating(*candidates[i]) > EffectiveRating(*candidates[j])
	})
	return candidates[0]
}

// Swap is a single rotation change for the caller to apply.
type Swap struct {
	Slot     int             `json:"slot"`
	Position models.Position `json:"position"`
	OutID    string          `json:"out_id"`
	InID     string          `json:"in_id"`
	Forced   bool            `json:"forced"` // injury-driven
}

// RefreshStarters is the proactive daily pass over the first five roster
// entries: a starter is swapped out when injured, or when a replacement is at
// least freshnessSwapMargin fatigue points fresher.
func RefreshStarters(roster []models.Player) []Swap {
	if len(roster) < 5 {
		return nil
	}
	starterIDs := map[string]bool{}
	for _, p := range roster[:5] {
		starterIDs[p.ID] = true
	}

	var swaps []Swap
	for slot := 0; slot < 5; slot++ {
		starter := roster[slot]
		pos := models.LineupPositions[slot]
		repl := FindReplacement(roster, starterIDs, pos)
		if repl == nil {
			continue
		}
		switch {
		case starter.Injured:
			swaps = append(swaps, Swap{Slot: slot, Position: pos, OutID: starter.ID, InID: repl.ID, Forced: true})
		case starter.Fatigue-repl.Fatigue >= freshnessSwapMargin:
			swaps = append(swaps, Swap{Slot: slot, Position: pos, OutID: starter.ID, InID: repl.ID})
		default:
			continue
		}
		starterIDs[repl.ID] = true
		delete(starterIDs, starter.ID)
	}
	return swaps
}

// ReplaceInjured is the reactive path: an immediate swap at the injured
// player's slot, or nil when the player is not a current starter or nobody
// can step in.
func ReplaceInjured(roster []models.Player, injuredID string) *Swap {
	if len(roster) < 5 {
		return nil
	}
	slot := -1
	for i := 0; i < 5; i++ {
		if roster[i].ID == injuredID {
			slot = i
			break
		}
	}
	if slot < 0 {
		return nil
	}
	starterIDs := map[string]bool{}
	for _, p := range roster[:5] {
		starterIDs[p.ID] = true
	}
	pos := models.LineupPositions[slot]
	repl := FindReplacement(roster, starterIDs, pos)
	if repl == nil {
		return nil
	}
	return &Swap{Slot: slot, Position: pos, OutID: injuredID, InID: repl.ID, Forced: true}
}

// SubstitutionStrategy classifies how a roster should rotate minutes.
type SubstitutionStrategy string

const (
	DeepBench     SubstitutionStrategy = "deep_bench"
	TightRotation SubstitutionStrategy = "tight_rotation"
	Platoon       SubstitutionStrategy = "platoon"
	Staggered     SubstitutionStrategy = "staggered"
)

// SelectSubstitutionStrategy classifies the roster: a deep bench when ten or
// more players rate 65+, a tight rotation when the top two starters are stars
// with a wide gap to the bench, a 30% random platoon, and staggered otherwise.
func SelectSubstitutionStrategy(roster []models.Player, r league.Rand) SubstitutionStrategy {
	quality := 0
	for _, p := range roster {
		if p.RatingOr(70) >= 65 {
			quality++
		}
	}
	if quality >= 10 {
		return DeepBench
	}

	if len(roster) >= 6 {
		starters := make([]models.Player, 5)
		copy(starters, roster[:5])
		sort.SliceStable(starters, func(i, j int) bool {
			return starters[i].RatingOr(70) > starters[j].RatingOr(70)
		})
		bestBench := 0
		for _, p := range roster[5:] {
			if p.RatingOr(70) > bestBench {
				bestBench = p.RatingOr(70)
			}
		}
		if starters[0].RatingOr(70) >= 85 && starters[1].RatingOr(70) >= 85 &&
			starters[1].RatingOr(70)-bestBench > 15 {
			return TightRotation
		}
	}

	if r != nil && r.Float64() < 0.30 {
		return Platoon
	}
	return Staggered
}
