package trade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"frontoffice/internal/direction"
	"frontoffice/internal/league"
	"frontoffice/internal/models"
	"frontoffice/internal/valuation"
)

type constRand struct{ v float64 }

func (r constRand) Float64() float64 { return r.v }

func lookupFrom(teams ...models.Team) valuation.PlayerLookup {
	index := map[string]models.Player{}
	for _, t := range teams {
		for _, p := range t.Roster {
			index[p.ID] = p
		}
	}
	return func(id string) *models.Player {
		p, ok := index[id]
		if !ok {
			return nil
		}
		return &p
	}
}

func flatPicks(v float64) valuation.PickValuer {
	return func(string) float64 { return v }
}

func newTestEngine(t *testing.T, taxLine decimal.Decimal, rnd league.Rand, teams ...models.Team) *Engine {
	t.Helper()
	e, err := NewEngine(league.DifficultyRookie, taxLine, lookupFrom(teams...), flatPicks(30), rnd, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestNewEngineValidatesCollaborators(t *testing.T) {
	if _, err := NewEngine(league.DifficultyPro, decimal.Zero, nil, flatPicks(1), constRand{0}, nil); err != ErrNoPlayerLookup {
		t.Fatalf("expected ErrNoPlayerLookup, got %v", err)
	}
	if _, err := NewEngine(league.DifficultyPro, decimal.Zero, lookupFrom(), nil, constRand{0}, nil); err != ErrNoPickValuer {
		t.Fatalf("expected ErrNoPickValuer, got %v", err)
	}
	if _, err := NewEngine(league.DifficultyPro, decimal.Zero, lookupFrom(), flatPicks(1), nil, nil); err != ErrNoRand {
		t.Fatalf("expected ErrNoRand, got %v", err)
	}
}

func TestTradingBlockExemptsResignableExpiring(t *testing.T) {
	// An expiring 80-rated player the team can likely keep is never shopped,
	// even on a rebuilding team whose rules would otherwise list him.
	keeper := models.Player{
		ID: "keeper", Rating: 80, Age: 30, ContractYears: 1,
		Motivations: []models.Motivation{
			{Category: models.MotivationWinning, Weight: 1, Satisfaction: 0.5},
		},
	}
	flightRisk := models.Player{
		ID: "risk", Rating: 80, Age: 30, ContractYears: 1,
		Motivations: []models.Motivation{
			{Category: models.MotivationWinning, Weight: 1, Satisfaction: 0.2},
		},
	}
	team := models.Team{Abbr: "RBD", Roster: []models.Player{keeper, flightRisk}}
	e := newTestEngine(t, decimal.Zero, constRand{0}, team)

	block := e.ComputeAITradingBlock(team, direction.Rebuilding)

	for _, id := range block {
		if id == "keeper" {
			t.Fatalf("resignable expiring player was shopped")
		}
	}
	found := false
	for _, id := range block {
		if id == "risk" {
			found = true
		}
	}
	if !found {
		t.Fatalf("flight-risk expiring player should be shopped, block=%v", block)
	}
}

func TestComputeAITradingBlockByDirection(t *testing.T) {
	agingVet := models.Player{ID: "vet", Rating: 72, Age: 30, ContractYears: 2}
	prospect := models.Player{ID: "kid", Rating: 70, Age: 22, ContractYears: 3}
	star := models.Player{ID: "star", Rating: 88, Age: 27, ContractYears: 3}
	team := models.Team{Abbr: "T", Roster: []models.Player{agingVet, prospect, star}}
	e := newTestEngine(t, decimal.Zero, constRand{0}, team)

	rebuild := e.ComputeAITradingBlock(team, direction.Rebuilding)
	if len(rebuild) != 1 || rebuild[0] != "vet" {
		t.Fatalf("rebuilding block = %v, want [vet]", rebuild)
	}
	contend := e.ComputeAITradingBlock(team, direction.TitleContender)
	if len(contend) != 1 || contend[0] != "kid" {
		t.Fatalf("contender block = %v, want [kid]", contend)
	}
}

func TestExpireStaleProposalsExactlyOnce(t *testing.T) {
	now := time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC)
	resolved := now.Add(-10 * 24 * time.Hour)
	proposals := []models.TradeProposal{
		{ID: "due", Status: models.ProposalPending, ExpiresAt: now.Add(-time.Hour)},
		{ID: "live", Status: models.ProposalPending, ExpiresAt: now.Add(time.Hour)},
		{ID: "done", Status: models.ProposalRejected, ExpiresAt: now.Add(-48 * time.Hour), ResolvedAt: &resolved},
	}

	updated, expired := ExpireStaleProposals(proposals, now)

	if len(expired) != 1 || expired[0].ID != "due" {
		t.Fatalf("expired = %v, want exactly [due]", expired)
	}
	if expired[0].Status != models.ProposalExpired || expired[0].ResolvedAt == nil {
		t.Fatalf("expired proposal not finalized: %+v", expired[0])
	}
	// The input slice is untouched; the returned copy carries the transition.
	if proposals[0].Status != models.ProposalPending {
		t.Fatalf("input mutated")
	}
	if updated[1].Status != models.ProposalPending || updated[2].Status != models.ProposalRejected {
		t.Fatalf("unrelated proposals touched: %+v", updated)
	}

	// A second pass over the updated set finds nothing new.
	_, again := ExpireStaleProposals(updated, now)
	if len(again) != 0 {
		t.Fatalf("proposal expired twice: %v", again)
	}
}

// tradePartners builds two mirror-image rebuilding teams, each shopping one
// aging veteran, so a straight swap clears both evaluations.
func tradePartners() (models.Team, models.Team) {
	build := func(abbr, prefix string) models.Team {
		roster := []models.Player{
			{ID: prefix + "vet", Rating: 72, Age: 30, Position: models.Center, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
			{ID: prefix + "c2", Rating: 74, Age: 28, Position: models.Center, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
			{ID: prefix + "p1", Rating: 76, Age: 28, Position: models.PointGuard, Salary: decimal.NewFromInt(10_000_000), ContractYears: 2},
			{ID: prefix + "p2", Rating: 75, Age: 28, Position: models.ShootingGuard, Salary: decimal.NewFromInt(10_000_000), ContractYears: 2},
			{ID: prefix + "p3", Rating: 74, Age: 28, Position: models.SmallForward, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
			{ID: prefix + "p4", Rating: 73, Age: 28, Position: models.PowerForward, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
			{ID: prefix + "p5", Rating: 71, Age: 27, Position: models.PointGuard, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
			{ID: prefix + "p6", Rating: 70, Age: 26, Position: models.ShootingGuard, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
		}
		return models.Team{Abbr: abbr, Roster: roster}
	}
	return build("AAA", "a"), build("BBB", "b")
}

func lostSeasonContext(abbrs ...string) league.Context {
	records := map[string]league.Record{}
	for _, abbr := range abbrs {
		records[abbr] = league.Record{Wins: 2, Losses: 60}
	}
	return league.Context{Records: records, GamesPlayed: 62, SeasonYear: 2025, Phase: league.PhaseRegular}
}

func TestMatchAITradesSettlesMirrorSwap(t *testing.T) {
	a, b := tradePartners()
	e := newTestEngine(t, decimal.NewFromInt(500_000_000), constRand{0}, a, b)
	ctx := lostSeasonContext("AAA", "BBB")
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	deals := e.MatchAITrades([]models.Team{a, b}, ctx, now)

	if len(deals) != 1 {
		t.Fatalf("deals = %d, want 1", len(deals))
	}
	deal := deals[0]
	if deal.Pattern != "swap" {
		t.Fatalf("pattern = %q, want swap", deal.Pattern)
	}
	if len(deal.AGives) != 1 || len(deal.BGives) != 1 {
		t.Fatalf("swap should move one player each way: %+v", deal)
	}
}

func TestMatchAITradesRespectsLuxuryTax(t *testing.T) {
	a, b := tradePartners()
	// A tax line below current payroll blocks every deal.
	e := newTestEngine(t, decimal.NewFromInt(1), constRand{0}, a, b)
	ctx := lostSeasonContext("AAA", "BBB")
	now := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	if deals := e.MatchAITrades([]models.Team{a, b}, ctx, now); len(deals) != 0 {
		t.Fatalf("deal settled over the tax line: %+v", deals)
	}
}

func TestMatchAITradesQuietAfterDeadline(t *testing.T) {
	a, b := tradePartners()
	e := newTestEngine(t, decimal.Zero, constRand{0}, a, b)
	ctx := lostSeasonContext("AAA", "BBB")
	after := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	if deals := e.MatchAITrades([]models.Team{a, b}, ctx, after); len(deals) != 0 {
		t.Fatalf("trades settled after the deadline: %+v", deals)
	}
}
