package motivation

import (
	"testing"

	"frontoffice/internal/models"
)

// constRand always returns the same value, pinning every draw.
type constRand struct{ v float64 }

func (r constRand) Float64() float64 { return r.v }

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestRetentionScoreNoMotivations(t *testing.T) {
	if got := RetentionScore(models.Player{}); got != 50 {
		t.Fatalf("RetentionScore with no motivations = %v, want 50", got)
	}
}

func TestRetentionScoreBounds(t *testing.T) {
	fullySatisfied := models.Player{Motivations: []models.Motivation{
		{Category: models.MotivationMoney, Weight: 1, Satisfaction: 1},
		{Category: models.MotivationWinning, Weight: 0.8, Satisfaction: 1},
	}}
	if got := RetentionScore(fullySatisfied); got != 100 {
		t.Fatalf("fully satisfied player = %v, want clamp at 100", got)
	}

	miserable := models.Player{Motivations: []models.Motivation{
		{Category: models.MotivationMoney, Weight: 1, Satisfaction: 0},
	}}
	got := RetentionScore(miserable)
	if got < 0 || got > 100 {
		t.Fatalf("retention out of bounds: %v", got)
	}
	// Zero satisfaction still carries the incumbent edge.
	if got != 12 {
		t.Fatalf("fully dissatisfied player = %v, want 12", got)
	}
}

func TestRecalculateDoesNotMutateInput(t *testing.T) {
	p := models.Player{Motivations: []models.Motivation{
		{Category: models.MotivationWinning, Weight: 0.7, Satisfaction: 0.5},
		{Category: models.MotivationMarket, Weight: 0.4, Satisfaction: 0.5},
	}}
	ctx := Context{TeamWinPct: 0.9, InPlayoffRace: true, MarketSize: MarketLarge}

	out := Recalculate(p, ctx)

	for _, m := range p.Motivations {
		if m.Satisfaction != 0.5 {
			t.Fatalf("input mutated: %+v", m)
		}
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 motivations back, got %d", len(out))
	}
	if out[0].Satisfaction <= 0.5 {
		t.Fatalf("winning satisfaction should rise on a winner, got %v", out[0].Satisfaction)
	}
	if out[1].Satisfaction != 0.90 {
		t.Fatalf("large market satisfaction = %v, want 0.90", out[1].Satisfaction)
	}
	// Weights never move through recalculation.
	if out[0].Weight != 0.7 || out[1].Weight != 0.4 {
		t.Fatalf("weights changed: %+v", out)
	}
}

func TestSatisfactionFormulas(t *testing.T) {
	neutral := Context{TeamWinPct: 0.5, SalaryVsExpected: 1.0, MarketSize: MarketMedium}

	if got := satisfactionFor(models.MotivationMoney, neutral); got != 0.5 {
		t.Fatalf("money at expectation = %v, want 0.5", got)
	}
	if got := satisfactionFor(models.MotivationWinning, neutral); !approx(got, 0.5) {
		t.Fatalf("winning at .500 outside the race = %v, want 0.5", got)
	}
	race := neutral
	race.InPlayoffRace = true
	if got := satisfactionFor(models.MotivationWinning, race); !approx(got, 0.65) {
		t.Fatalf("winning in the race = %v, want 0.65", got)
	}
	if got := satisfactionFor(models.MotivationMarket, neutral); got != 0.60 {
		t.Fatalf("medium market = %v, want 0.60", got)
	}
	starved := Context{MinutesShare: 0.1}
	fed := Context{MinutesShare: 0.6}
	if satisfactionFor(models.MotivationRole, starved) >= satisfactionFor(models.MotivationRole, fed) {
		t.Fatalf("role satisfaction should grow with minutes")
	}
}

func TestApplyWeightShifts(t *testing.T) {
	mots := []models.Motivation{
		{Category: models.MotivationWinning, Weight: 0.5, Satisfaction: 0.4},
		{Category: models.MotivationLoyalty, Weight: 0.5, Satisfaction: 0.6},
	}

	out := ApplyWeightShifts(mots, []Event{EventAgedSeason, EventTraded})

	if mots[0].Weight != 0.5 || mots[1].Weight != 0.5 {
		t.Fatalf("input mutated: %+v", mots)
	}
	if !approx(out[0].Weight, 0.58) {
		t.Fatalf("aged season winning weight = %v, want 0.58", out[0].Weight)
	}
	if !approx(out[1].Weight, 0.35) {
		t.Fatalf("traded loyalty weight = %v, want 0.35", out[1].Weight)
	}
	// Satisfaction is untouched by weight shifts.
	if out[0].Satisfaction != 0.4 || out[1].Satisfaction != 0.6 {
		t.Fatalf("satisfaction changed: %+v", out)
	}
}

func TestApplyWeightShiftsClampsFloor(t *testing.T) {
	mots := []models.Motivation{
		{Category: models.MotivationLoyalty, Weight: 0.10, Satisfaction: 0.5},
	}
	out := ApplyWeightShifts(mots, []Event{EventTraded})
	if out[0].Weight != 0.05 {
		t.Fatalf("loyalty weight = %v, want floor 0.05", out[0].Weight)
	}
}

func TestGenerateDeterministicUnderFixedDraws(t *testing.T) {
	p := models.Player{ID: "p1", Age: 25, Rating: 70}

	// A zero draw always lands on the balanced archetype with maximum negative
	// jitter on every category.
	mots := Generate(p, constRand{0})
	if len(mots) != len(models.MotivationCategories) {
		t.Fatalf("balanced archetype should carry all categories, got %d", len(mots))
	}
	for _, m := range mots {
		if !approx(m.Weight, 0.35) {
			t.Fatalf("weight = %v, want 0.35 for category %s", m.Weight, m.Category)
		}
		if m.Satisfaction != 0.5 {
			t.Fatalf("initial satisfaction = %v, want 0.5", m.Satisfaction)
		}
	}

	again := Generate(p, constRand{0})
	for i := range mots {
		if mots[i] != again[i] {
			t.Fatalf("same draws produced different motivations")
		}
	}
}

func TestGenerateWeightsStayInRange(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 0.999} {
		p := models.Player{ID: "p", Age: 34, Rating: 88}
		for _, m := range Generate(p, constRand{v}) {
			if m.Weight < 0.05 || m.Weight > 1.0 {
				t.Fatalf("weight %v outside [0.05,1.0]", m.Weight)
			}
		}
	}
}
