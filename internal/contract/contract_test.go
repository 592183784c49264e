package contract

import (
	"testing"

	"github.com/shopspring/decimal"

	"frontoffice/internal/direction"
	"frontoffice/internal/models"
)

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestExpectedSalaryTiers(t *testing.T) {
	cases := []struct {
		rating int
		want   int64
	}{
		{92, 38_000_000},
		{85, 28_000_000},
		{80, 18_000_000},
		{75, 10_000_000},
		{70, 5_000_000},
		{65, 2_000_000},
	}
	for _, c := range cases {
		got := ExpectedSalary(c.rating, nil)
		if !got.Equal(money(c.want)) {
			t.Fatalf("ExpectedSalary(%d) = %s, want %d", c.rating, got, c.want)
		}
	}
}

func TestProductionFactor(t *testing.T) {
	if got := ProductionFactor(80, nil); got != 1.0 {
		t.Fatalf("no stats = %v, want 1.0", got)
	}
	thin := &models.SeasonStats{GamesPlayed: 5, PointsPerGame: 30}
	if got := ProductionFactor(80, thin); got != 1.0 {
		t.Fatalf("small sample = %v, want 1.0", got)
	}
	big := &models.SeasonStats{GamesPlayed: 40, PointsPerGame: 30, ReboundsPerGame: 8, AssistsPerGame: 6}
	if got := ProductionFactor(80, big); got != 1.2 {
		t.Fatalf("overproducer = %v, want clamp at 1.2", got)
	}
	cold := &models.SeasonStats{GamesPlayed: 40, PointsPerGame: 2}
	if got := ProductionFactor(80, cold); got != 0.8 {
		t.Fatalf("underproducer = %v, want clamp at 0.8", got)
	}
}

func TestBuildOfferAgeScaling(t *testing.T) {
	young := models.Player{ID: "y", Rating: 80, Age: 24}
	offer := BuildOffer(young, direction.Rebuilding)
	if !offer.Salary.Equal(money(18_000_000).Mul(decimal.NewFromFloat(1.10)).Round(2)) {
		t.Fatalf("young premium salary = %s", offer.Salary)
	}
	if offer.Years != 4 {
		t.Fatalf("seller should lock up a young player for 4 years, got %d", offer.Years)
	}

	old := models.Player{ID: "o", Rating: 80, Age: 34}
	offer = BuildOffer(old, direction.WinNow)
	if !offer.Salary.Equal(money(18_000_000).Mul(decimal.NewFromFloat(0.85)).Round(2)) {
		t.Fatalf("veteran discount salary = %s", offer.Salary)
	}
	if offer.Years != 1 {
		t.Fatalf("a 34-year-old gets 1 year, got %d", offer.Years)
	}
}

func fullRoster(n int) []models.Player {
	out := make([]models.Player, n)
	for i := range out {
		out[i] = models.Player{ID: string(rune('a' + i)), Rating: 75, Age: 26, Position: models.PointGuard, ContractYears: 2}
	}
	return out
}

func TestShouldResignVetoes(t *testing.T) {
	team := models.Team{Abbr: "T", Roster: fullRoster(12)}

	overpaid := models.Player{ID: "x", Rating: 72, Age: 27, Salary: money(10_000_000), ContractYears: 1}
	if ok, reason := ShouldResign(overpaid, team, direction.WinNow); ok || reason != "massively overpaid" {
		t.Fatalf("overpaid veto failed: ok=%v reason=%q", ok, reason)
	}

	agingVet := models.Player{ID: "v", Rating: 76, Age: 31, Salary: money(8_000_000), ContractYears: 1}
	if ok, reason := ShouldResign(agingVet, team, direction.Rebuilding); ok || reason != "veteran does not fit rebuild" {
		t.Fatalf("rebuild veto failed: ok=%v reason=%q", ok, reason)
	}

	depth := models.Player{ID: "d", Rating: 72, Age: 34, Salary: money(3_000_000), ContractYears: 1}
	if ok, reason := ShouldResign(depth, team, direction.TitleContender); ok || reason != "aging depth piece" {
		t.Fatalf("buyer veto failed: ok=%v reason=%q", ok, reason)
	}

	keeper := models.Player{ID: "k", Rating: 78, Age: 27, Salary: money(9_000_000), ContractYears: 1}
	if ok, _ := ShouldResign(keeper, team, direction.WinNow); !ok {
		t.Fatalf("solid contributor should be re-signed")
	}
}

func TestShouldResignDesperationOverridesVetoes(t *testing.T) {
	thin := models.Team{Abbr: "T", Roster: fullRoster(6)}
	overpaid := models.Player{ID: "x", Rating: 72, Age: 27, Salary: money(10_000_000), ContractYears: 1}
	if ok, _ := ShouldResign(overpaid, thin, direction.WinNow); !ok {
		t.Fatalf("a team below the roster cap keeps who it has")
	}
}

func TestProcessTeamCapsSignings(t *testing.T) {
	// Six rostered players under contract, none expiring: six open slots but
	// at most three signings per pass.
	team := models.Team{Abbr: "T", Roster: fullRoster(6)}
	freeAgents := []models.Player{
		{ID: "fa1", Rating: 76, Age: 25, Position: models.ShootingGuard},
		{ID: "fa2", Rating: 75, Age: 26, Position: models.SmallForward},
		{ID: "fa3", Rating: 74, Age: 24, Position: models.PowerForward},
		{ID: "fa4", Rating: 73, Age: 25, Position: models.Center},
		{ID: "fa5", Rating: 73, Age: 27, Position: models.Center},
	}

	decisions := ProcessTeam(team, freeAgents, direction.Ascending)

	signs := 0
	for _, d := range decisions {
		if d.Action == ActionSign {
			signs++
			if d.Offer == nil {
				t.Fatalf("sign decision without an offer: %+v", d)
			}
		}
	}
	if signs != MaxNewSignings {
		t.Fatalf("signings = %d, want %d", signs, MaxNewSignings)
	}
	// Highest-rated eligible free agents first.
	if decisions[0].PlayerID != "fa1" {
		t.Fatalf("first signing = %s, want fa1", decisions[0].PlayerID)
	}
}

func TestProcessTeamResolvesExpiringFirst(t *testing.T) {
	roster := fullRoster(11)
	expiring := models.Player{ID: "exp", Rating: 77, Age: 27, Position: models.Center, Salary: money(9_000_000), ContractYears: 1}
	roster = append(roster, expiring)
	team := models.Team{Abbr: "T", Roster: roster}

	decisions := ProcessTeam(team, nil, direction.WinNow)

	if len(decisions) != 1 {
		t.Fatalf("expected exactly one decision, got %d", len(decisions))
	}
	d := decisions[0]
	if d.PlayerID != "exp" || d.Action != ActionResign {
		t.Fatalf("expiring player not re-signed: %+v", d)
	}
	if d.Offer == nil || d.Offer.Years != 3 {
		t.Fatalf("27-year-old should get 3 years: %+v", d.Offer)
	}
}
