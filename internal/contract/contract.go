// Package contract sizes offers and decides re-signings and free-agent
// pursuits. Like every engine component it is a pure function library: the
// caller supplies snapshots and persists the returned decisions.
package contract

import (
	"sort"

	"github.com/shopspring/decimal"

	"frontoffice/internal/direction"
	"frontoffice/internal/models"
)

const (
	// RosterCap is the roster size an AI team fills toward.
	RosterCap = 12
	// MaxNewSignings bounds free-agent additions per processing pass.
	MaxNewSignings = 3

	// minProductionGames is the sample below which season stats are ignored.
	minProductionGames = 10
)

// tierSalary is the expected-salary step function of rating, in dollars.
func tierSalary(rating int) decimal.Decimal {
	switch {
	case rating >= 90:
		return decimal.NewFromInt(38_000_000)
	case rating >= 85:
		return decimal.NewFromInt(28_000_000)
	case rating >= 80:
		return decimal.NewFromInt(18_000_000)
	case rating >= 75:
		return decimal.NewFromInt(10_000_000)
	case rating >= 70:
		return decimal.NewFromInt(5_000_000)
	default:
		return decimal.NewFromInt(2_000_000)
	}
}

// ProductionFactor adjusts rating-tier expectations by realized production,
// clamped to [0.8,1.2]. Composite production is points plus 0.7 weight on
// rebounds and assists, measured against a rating-proportional baseline.
func ProductionFactor(rating int, stats *models.SeasonStats) float64 {
	if stats == nil || stats.GamesPlayed < minProductionGames {
		return 1.0
	}
	baseline := 0.25 * float64(rating)
	if baseline <= 0 {
		return 1.0
	}
	composite := stats.PointsPerGame + 0.7*(stats.ReboundsPerGame+stats.AssistsPerGame)
	factor := composite / baseline
	if factor < 0.8 {
		return 0.8
	}
	if factor > 1.2 {
		return 1.2
	}
	return factor
}

// ExpectedSalary is the production-adjusted market salary for a rating.
func ExpectedSalary(rating int, stats *models.SeasonStats) decimal.Decimal {
	base := tierSalary(rating)
	factor := ProductionFactor(rating, stats)
	return base.Mul(decimal.NewFromFloat(factor)).Round(2)
}

// Offer is a sized contract proposal.
type Offer struct {
	Salary decimal.Decimal `json:"salary"`
	Years  int             `json:"years"`
}

// BuildOffer scales base salary by age and assigns years from an
// age/direction lookup, capped at 4.
func BuildOffer(p models.Player, dir direction.Direction) Offer {
	rating := p.RatingOr(72)
	age := p.AgeOr(25)

	salary := ExpectedSalary(rating, p.Stats)
	switch {
	case age <= 25:
		salary = salary.Mul(decimal.NewFromFloat(1.10))
	case age >= 32:
		salary = salary.Mul(decimal.NewFromFloat(0.85))
	}

	years := offerYears(age, dir)
	return Offer{Salary: salary.Round(2), Years: years}
}

func offerYears(age int, dir direction.Direction) int {
	var years int
	switch {
	case age <= 25:
		years = 3
		if dir.IsSeller() {
			years = 4
		}
	case age <= 30:
		years = 3
	case age <= 33:
		years = 2
	default:
		years = 1
	}
	if years > 4 {
		years = 4
	}
	return years
}

// ShouldResign decides whether a team keeps an expiring player. The reason
// string explains a veto.
func ShouldResign(p models.Player, team models.Team, dir direction.Direction) (bool, string) {
	rating := p.RatingOr(72)
	desperate := len(team.Roster) < RosterCap

	adequate := rating >= 70
	if !adequate && p.Stats != nil && p.Stats.GamesPlayed >= 20 && p.Stats.PointsPerGame >= 8 {
		adequate = true
	}
	if !adequate && !desperate {
		return false, "below performance bar"
	}

	expected := ExpectedSalary(rating, p.Stats)
	overpaidLine := expected.Mul(decimal.NewFromFloat(1.5))
	if p.Salary.GreaterThan(overpaidLine) && !desperate {
		return false, "massively overpaid"
	}

	age := p.AgeOr(25)
	if dir == direction.Rebuilding && age >= 30 && rating < 80 {
		return false, "veteran does not fit rebuild"
	}
	if dir.IsBuyer() && age >= 33 && rating < 75 {
		return false, "aging depth piece"
	}
	return true, ""
}

// ShouldSignFreeAgent gates a free-agent pursuit on a direction-appropriate
// rating bar and a positional need. Rebuilding teams relax the bar for young
// upside plays.
func ShouldSignFreeAgent(p models.Player, team models.Team, dir direction.Direction) bool {
	if team.CountAtPosition(p.Position) >= 2 {
		return false
	}
	rating := p.RatingOr(70)
	age := p.AgeOr(25)

	bar := 72
	switch dir {
	case direction.TitleContender:
		bar = 78
	case direction.WinNow:
		bar = 75
	case direction.Ascending:
		bar = 72
	case direction.Rebuilding:
		bar = 70
		if age <= 24 {
			bar = 65
		}
	}
	return rating >= bar
}

// DecisionAction enumerates contract outcomes.
type DecisionAction string

const (
	ActionResign  DecisionAction = "resign"
	ActionRelease DecisionAction = "release"
	ActionSign    DecisionAction = "sign"
)

// Decision records one contract outcome for the caller to apply.
type Decision struct {
	PlayerID string         `json:"player_id"`
	Action   DecisionAction `json:"action"`
	Offer    *Offer         `json:"offer,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

// ProcessTeam runs a team's season-boundary contract pass: expiring players
// are resolved first, then remaining roster slots are filled from the
// highest-rated eligible free agents, capped by RosterCap and MaxNewSignings.
func ProcessTeam(team models.Team, freeAgents []models.Player, dir direction.Direction) []Decision {
	var decisions []Decision
	kept := 0
	for _, p := range team.Roster {
		if p.YearsRemainingOr(1) > 1 {
			kept++
			continue
		}
		ok, reason := ShouldResign(p, team, dir)
		if !ok {
			decisions = append(decisions, Decision{PlayerID: p.ID, Action: ActionRelease, Reason: reason})
			continue
		}
		offer := BuildOffer(p, dir)
		decisions = append(decisions, Decision{PlayerID: p.ID, Action: ActionResign, Offer: &offer})
		kept++
	}

	slots := RosterCap - kept
	if slots <= 0 {
		return decisions
	}

	pool := make([]models.Player, len(freeAgents))
	copy(pool, freeAgents)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].RatingOr(70) > pool[j].RatingOr(70)
	})

	signed := 0
	for _, fa := range pool {
		if signed >= MaxNewSignings || slots <= 0 {
			break
		}
		if !ShouldSignFreeAgent(fa, team, dir) {
			continue
		}
		offer := BuildOffer(fa, dir)
		decisions = append(decisions, Decision{PlayerID: fa.ID, Action: ActionSign, Offer: &offer})
		signed++
		slots--
	}
	return decisions
}
