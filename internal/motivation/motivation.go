// Package motivation models what keeps a player with a franchise: a fixed set
// of weighted motivations assigned at generation, satisfaction recomputed
// against league context, and a 0-100 retention score blending the two.
package motivation

import (
	"frontoffice/internal/league"
	"frontoffice/internal/models"
)

// Archetype names a motivation profile drawn at player generation.
type Archetype string

const (
	ArchetypeBalanced   Archetype = "balanced"
	ArchetypeMercenary  Archetype = "mercenary"
	ArchetypeRingChaser Archetype = "ring_chaser"
	ArchetypeLoyalist   Archetype = "loyalist"
	ArchetypeSpotlight  Archetype = "spotlight"
	ArchetypeRoleFirst  Archetype = "role_first"
)

// archetypeBases fixes the per-category base weights. Categories absent from a
// profile are absent from the player; jitter never introduces them.
var archetypeBases = map[Archetype]map[models.MotivationCategory]float64{
	ArchetypeBalanced: {
		models.MotivationMoney:       0.5,
		models.MotivationWinning:     0.5,
		models.MotivationLoyalty:     0.5,
		models.MotivationRole:        0.5,
		models.MotivationStarPairing: 0.5,
		models.MotivationCoaching:    0.5,
		models.MotivationMarket:      0.5,
		models.MotivationLegacy:      0.5,
	},
	ArchetypeMercenary: {
		models.MotivationMoney:   0.90,
		models.MotivationRole:    0.50,
		models.MotivationMarket:  0.50,
		models.MotivationWinning: 0.30,
		models.MotivationLoyalty: 0.20,
	},
	ArchetypeRingChaser: {
		models.MotivationWinning:     0.90,
		models.MotivationLegacy:      0.75,
		models.MotivationStarPairing: 0.60,
		models.MotivationMoney:       0.30,
		models.MotivationLoyalty:     0.25,
	},
	ArchetypeLoyalist: {
		models.MotivationLoyalty:  0.90,
		models.MotivationCoaching: 0.60,
		models.MotivationMarket:   0.50,
		models.MotivationWinning:  0.45,
		models.MotivationMoney:    0.35,
	},
	ArchetypeSpotlight: {
		models.MotivationMarket:      0.85,
		models.MotivationStarPairing: 0.70,
		models.MotivationMoney:       0.60,
		models.MotivationLegacy:      0.50,
		models.MotivationWinning:     0.40,
	},
	ArchetypeRoleFirst: {
		models.MotivationRole:     0.85,
		models.MotivationCoaching: 0.70,
		models.MotivationWinning:  0.50,
		models.MotivationLoyalty:  0.40,
		models.MotivationMoney:    0.35,
	},
}

// drawOrder keeps the weighted archetype draw deterministic for a given
// random sequence.
var drawOrder = []Archetype{
	ArchetypeBalanced,
	ArchetypeMercenary,
	ArchetypeRingChaser,
	ArchetypeLoyalist,
	ArchetypeSpotlight,
	ArchetypeRoleFirst,
}

func drawWeights(p models.Player) map[Archetype]float64 {
	w := map[Archetype]float64{
		ArchetypeBalanced:   5,
		ArchetypeMercenary:  1,
		ArchetypeRingChaser: 1,
		ArchetypeLoyalist:   1,
		ArchetypeSpotlight:  1,
		ArchetypeRoleFirst:  1,
	}
	if p.AgeOr(25) >= 32 {
		w[ArchetypeRingChaser] += 2
	}
	if p.RatingOr(70) >= 85 {
		w[ArchetypeRingChaser] += 1
		w[ArchetypeSpotlight] += 1
	}
	return w
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Generate draws an archetype and materializes jittered category weights.
// Called once at player generation; weights only move afterwards through
// ApplyWeightShifts.
func Generate(p models.Player, r league.Rand) []models.Motivation {
	weights := drawWeights(p)
	total := 0.0
	for _, a := range drawOrder {
		total += weights[a]
	}
	pick := r.Float64() * total
	chosen := ArchetypeBalanced
	for _, a := range drawOrder {
		pick -= weights[a]
		if pick < 0 {
			chosen = a
			break
		}
	}

	base := archetypeBases[chosen]
	out := make([]models.Motivation, 0, len(base))
	for _, cat := range models.MotivationCategories {
		b, ok := base[cat]
		if !ok {
			continue
		}
		jitter := (r.Float64()*2 - 1) * 0.15
		out = append(out, models.Motivation{
			Category:     cat,
			Weight:       clamp(b+jitter, 0.05, 1.0),
			Satisfaction: 0.5,
		})
	}
	return out
}

// MarketSize tiers a franchise's media market.
type MarketSize string

const (
	MarketSmall  MarketSize = "small"
	MarketMedium MarketSize = "medium"
	MarketLarge  MarketSize = "large"
)

// Context supplies everything satisfaction formulas read. The caller builds it
// from standings, rotations and franchise metadata.
type Context struct {
	TeamWinPct       float64
	InPlayoffRace    bool
	MinutesShare     float64
	TeammatesOver80  int
	CoachingStable   bool
	MarketSize       MarketSize
	Championships    int
	SalaryVsExpected float64 // actual over expected; 1.0 means paid to expectation
}

// Recalculate recomputes every present category's satisfaction from context
// and returns a new motivation slice. The input player is not mutated; the
// caller decides whether to persist the result.
func Recalculate(p models.Player, ctx Context) []models.Motivation {
	out := make([]models.Motivation, len(p.Motivations))
	for i, m := range p.Motivations {
		m.Satisfaction = satisfactionFor(m.Category, ctx)
		out[i] = m
	}
	return out
}

func satisfactionFor(cat models.MotivationCategory, ctx Context) float64 {
	switch cat {
	case models.MotivationMoney:
		ratio := ctx.SalaryVsExpected
		if ratio <= 0 {
			ratio = 1
		}
		return clamp(0.5+1.25*(ratio-1), 0, 1)
	case models.MotivationWinning:
		s := 0.15 + 0.7*ctx.TeamWinPct
		if ctx.InPlayoffRace {
			s += 0.15
		}
		return clamp(s, 0, 1)
	case models.MotivationLoyalty:
		s := 0.45
		if ctx.CoachingStable {
			s += 0.30
		}
		if ctx.Championships > 0 {
			s += 0.10
		}
		return clamp(s, 0, 1)
	case models.MotivationRole:
		return clamp(1.5*ctx.MinutesShare, 0, 1)
	case models.MotivationStarPairing:
		return clamp(0.25*float64(ctx.TeammatesOver80), 0, 1)
	case models.MotivationCoaching:
		if ctx.CoachingStable {
			return 0.80
		}
		return 0.35
	case models.MotivationMarket:
		switch ctx.MarketSize {
		case MarketLarge:
			return 0.90
		case MarketMedium:
			return 0.60
		default:
			return 0.35
		}
	case models.MotivationLegacy:
		champs := ctx.Championships
		if champs > 3 {
			champs = 3
		}
		return clamp(0.25+0.15*float64(champs)+0.4*ctx.TeamWinPct, 0, 1)
	default:
		return 0.5
	}
}

// incumbentBonus is the flat edge the current franchise holds in every
// retention estimate.
const incumbentBonus = 12.0

// RetentionScore estimates 0-100 how likely the player stays. A player with
// no motivations scores exactly 50.
func RetentionScore(p models.Player) float64 {
	if len(p.Motivations) == 0 {
		return 50
	}
	weightSum, weighted := 0.0, 0.0
	for _, m := range p.Motivations {
		weightSum += m.Weight
		weighted += m.Weight * m.Satisfaction
	}
	if weightSum == 0 {
		return 50
	}
	return clamp(weighted/weightSum*100+incumbentBonus, 0, 100)
}

// Event is a career milestone that permanently nudges motivation weights.
type Event string

const (
	EventAgedSeason      Event = "aged_season"
	EventTraded          Event = "traded"
	EventWonChampionship Event = "won_championship"
)

// ApplyWeightShifts permanently nudges category weights for career events and
// returns a new motivation slice; satisfaction values are untouched. Aging
// raises the winning weight, a trade erodes loyalty, a championship raises
// money and relaxes winning.
func ApplyWeightShifts(mots []models.Motivation, events []Event) []models.Motivation {
	out := make([]models.Motivation, len(mots))
	copy(out, mots)
	shift := func(cat models.MotivationCategory, delta float64) {
		for i := range out {
			if out[i].Category == cat {
				out[i].Weight = clamp(out[i].Weight+delta, 0.05, 1.0)
			}
		}
	}
	for _, ev := range events {
		switch ev {
		case EventAgedSeason:
			shift(models.MotivationWinning, 0.08)
		case EventTraded:
			shift(models.MotivationLoyalty, -0.15)
		case EventWonChampionship:
			shift(models.MotivationMoney, 0.10)
			shift(models.MotivationWinning, -0.10)
		}
	}
	return out
}
