package trade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"frontoffice/internal/models"
)

// rebuildingProposer is an AI team whose direction resolves to rebuilding and
// whose roster offers a tradeable mid-tier player plus a pick.
func rebuildingProposer() models.Team {
	roster := []models.Player{
		{ID: "t1", Rating: 80, Age: 27, Position: models.PointGuard, Salary: decimal.NewFromInt(18_000_000), ContractYears: 3},
		{ID: "t2", Rating: 79, Age: 27, Position: models.ShootingGuard, Salary: decimal.NewFromInt(10_000_000), ContractYears: 3},
		{ID: "t3", Rating: 78, Age: 27, Position: models.SmallForward, Salary: decimal.NewFromInt(10_000_000), ContractYears: 3},
		{ID: "offer", Rating: 76, Age: 28, Position: models.PowerForward, Salary: decimal.NewFromInt(10_000_000), ContractYears: 2},
		{ID: "t5", Rating: 74, Age: 27, Position: models.Center, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
		{ID: "t6", Rating: 73, Age: 27, Position: models.PointGuard, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
		{ID: "t7", Rating: 72, Age: 26, Position: models.ShootingGuard, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
		{ID: "t8", Rating: 70, Age: 26, Position: models.Center, Salary: decimal.NewFromInt(5_000_000), ContractYears: 2},
	}
	return models.Team{
		Abbr:   "AIT",
		Roster: roster,
		Picks:  []models.DraftPick{{ID: "pick-1", Year: 2026, Round: 1}},
	}
}

func userWithYoungGuard() models.Team {
	roster := []models.Player{
		{ID: "young", Rating: 74, Age: 22, Position: models.PointGuard, Salary: decimal.NewFromInt(5_000_000), ContractYears: 3},
		{ID: "u2", Rating: 81, Age: 29, Position: models.ShootingGuard, Salary: decimal.NewFromInt(18_000_000), ContractYears: 2},
		{ID: "u3", Rating: 78, Age: 27, Position: models.SmallForward, Salary: decimal.NewFromInt(10_000_000), ContractYears: 2},
		{ID: "u4", Rating: 76, Age: 28, Position: models.PowerForward, Salary: decimal.NewFromInt(10_000_000), ContractYears: 2},
		{ID: "u5", Rating: 75, Age: 27, Position: models.Center, Salary: decimal.NewFromInt(10_000_000), ContractYears: 2},
	}
	return models.Team{Abbr: "USR", Roster: roster}
}

func TestGenerateProposalsTargetsRebuildNeed(t *testing.T) {
	ai := rebuildingProposer()
	user := userWithYoungGuard()
	e := newTestEngine(t, decimal.Zero, constRand{0}, ai, user)
	ctx := lostSeasonContext("AIT")
	now := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

	proposals := e.GenerateProposals([]models.Team{ai}, user, ctx, nil, now)

	if len(proposals) != 1 {
		t.Fatalf("proposals = %d, want 1", len(proposals))
	}
	p := proposals[0]
	if p.TeamAbbr != "AIT" {
		t.Fatalf("proposer = %q", p.TeamAbbr)
	}
	if p.TargetPlayerID != "young" {
		t.Fatalf("rebuilding team targeted %q, want the young guard", p.TargetPlayerID)
	}
	if p.Status != models.ProposalPending {
		t.Fatalf("status = %q, want pending", p.Status)
	}
	if !p.ExpiresAt.Equal(now.Add(ProposalTTL)) {
		t.Fatalf("expiry = %v, want now+%v", p.ExpiresAt, ProposalTTL)
	}
	if p.ID == "" {
		t.Fatalf("proposal id not assigned")
	}
	receives := p.ReceivesAssets()
	if len(receives) != 1 || receives[0].PlayerID != "young" {
		t.Fatalf("receives = %+v", receives)
	}
	if len(p.GivesAssets()) == 0 {
		t.Fatalf("proposal offers nothing back")
	}
	if p.Reason == "" {
		t.Fatalf("proposal carries no reason")
	}
}

func TestGenerateProposalsHonorsTeamCooldown(t *testing.T) {
	ai := rebuildingProposer()
	user := userWithYoungGuard()
	e := newTestEngine(t, decimal.Zero, constRand{0}, ai, user)
	ctx := lostSeasonContext("AIT")
	now := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

	rejected := now.Add(-10 * 24 * time.Hour)
	history := []models.TradeProposal{
		{ID: "old", TeamAbbr: "AIT", Status: models.ProposalRejected, ResolvedAt: &rejected},
	}

	if got := e.GenerateProposals([]models.Team{ai}, user, ctx, history, now); len(got) != 0 {
		t.Fatalf("proposal emitted during cooldown: %+v", got)
	}

	// Outside the window the team may ask again.
	longAgo := now.Add(-40 * 24 * time.Hour)
	history[0].ResolvedAt = &longAgo
	if got := e.GenerateProposals([]models.Team{ai}, user, ctx, history, now); len(got) != 1 {
		t.Fatalf("cooldown should have lapsed, got %d proposals", len(got))
	}
}

func TestGenerateProposalsIgnoresOtherTeamsHistory(t *testing.T) {
	ai := rebuildingProposer()
	user := userWithYoungGuard()
	e := newTestEngine(t, decimal.Zero, constRand{0}, ai, user)
	ctx := lostSeasonContext("AIT")
	now := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

	rejected := now.Add(-5 * 24 * time.Hour)
	history := []models.TradeProposal{
		{ID: "old", TeamAbbr: "OTH", Status: models.ProposalRejected, TargetPlayerID: "young", ResolvedAt: &rejected},
		{ID: "live", TeamAbbr: "OTH", Status: models.ProposalPending},
	}

	// Another team's rejection or open ask does not gate this team.
	if got := e.GenerateProposals([]models.Team{ai}, user, ctx, history, now); len(got) != 1 {
		t.Fatalf("unrelated cooldown applied, got %d proposals", len(got))
	}
}

func TestGenerateProposalsBlocksWhileProposalPending(t *testing.T) {
	ai := rebuildingProposer()
	user := userWithYoungGuard()
	e := newTestEngine(t, decimal.Zero, constRand{0}, ai, user)
	ctx := lostSeasonContext("AIT")
	now := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

	history := []models.TradeProposal{
		{ID: "live", TeamAbbr: "AIT", Status: models.ProposalPending},
	}
	if got := e.GenerateProposals([]models.Team{ai}, user, ctx, history, now); len(got) != 0 {
		t.Fatalf("proposal emitted while one is already open: %+v", got)
	}
}

func TestGenerateProposalsSilentAfterDeadline(t *testing.T) {
	ai := rebuildingProposer()
	user := userWithYoungGuard()
	e := newTestEngine(t, decimal.Zero, constRand{0}, ai, user)
	ctx := lostSeasonContext("AIT")
	after := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	if got := e.GenerateProposals([]models.Team{ai}, user, ctx, nil, after); len(got) != 0 {
		t.Fatalf("proposals emitted after the deadline: %+v", got)
	}
}

func TestGenerateProposalsSkipsThinRosters(t *testing.T) {
	ai := rebuildingProposer()
	ai.Roster = ai.Roster[:5]
	user := userWithYoungGuard()
	e := newTestEngine(t, decimal.Zero, constRand{0}, ai, user)
	ctx := lostSeasonContext("AIT")
	now := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)

	if got := e.GenerateProposals([]models.Team{ai}, user, ctx, nil, now); len(got) != 0 {
		t.Fatalf("thin roster still proposed: %+v", got)
	}
}
