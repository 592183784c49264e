// Package trade generates AI-to-user proposals, matches AI-to-AI deals and
// manages proposal lifecycle. All state lives in caller-supplied snapshots;
// randomness comes from the injected source so runs replay under a seed.
package trade

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"frontoffice/internal/direction"
	"frontoffice/internal/league"
	"frontoffice/internal/models"
	"frontoffice/internal/motivation"
	"frontoffice/internal/valuation"
)

const (
	// CooldownDays is how long a team waits after a declined proposal before
	// approaching the user again (per team, and per team+player pair).
	CooldownDays = 30
	// ProposalTTL is how long an emitted proposal stays open.
	ProposalTTL = 72 * time.Hour
	// minRosterForTrade is the roster floor below which a team will not deal.
	minRosterForTrade = 8
	// protectedTopN is how many of a team's best players are never offered.
	protectedTopN = 3
)

var (
	ErrNoPlayerLookup = errors.New("trade: player lookup function is required")
	ErrNoPickValuer   = errors.New("trade: pick value function is required")
	ErrNoRand         = errors.New("trade: random source is required")
)

// Engine evaluates and authors trades for AI franchises.
type Engine struct {
	Difficulty    league.Difficulty
	LuxuryTaxLine decimal.Decimal
	Logger        *zap.Logger

	lookupPlayer valuation.PlayerLookup
	pickValue    valuation.PickValuer
	rand         league.Rand
	retention    func(models.Player) float64
}

func NewEngine(difficulty league.Difficulty, luxuryTaxLine decimal.Decimal, lookup valuation.PlayerLookup, picks valuation.PickValuer, rnd league.Rand, logger *zap.Logger) (*Engine, error) {
	if lookup == nil {
		return nil, ErrNoPlayerLookup
	}
	if picks == nil {
		return nil, ErrNoPickValuer
	}
	if rnd == nil {
		return nil, ErrNoRand
	}
	return &Engine{
		Difficulty:    difficulty,
		LuxuryTaxLine: luxuryTaxLine,
		Logger:        logger,
		lookupPlayer:  lookup,
		pickValue:     picks,
		rand:          rnd,
		retention:     motivation.RetentionScore,
	}, nil
}

// WithRetention swaps the retention estimator, mirroring valuation.Pricer.
func (e *Engine) WithRetention(fn func(models.Player) float64) *Engine {
	if fn != nil {
		e.retention = fn
	}
	return e
}

func (e *Engine) pricerFor(team models.Team, dir direction.Direction) *valuation.Pricer {
	pr, _ := valuation.NewPricer(team, dir, e.Difficulty.Settings(), e.lookupPlayer, e.pickValue)
	return pr.WithRetention(e.retention)
}

// AvailableFromRoster applies trade-availability gating to a roster: a player
// is always available below a rating of 82, on the trading block, unhappy,
// expiring, or a flight risk; otherwise protected.
func (e *Engine) AvailableFromRoster(team models.Team) []models.Player {
	var out []models.Player
	for _, p := range team.Roster {
		if e.isAvailable(team, p) {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) isAvailable(team models.Team, p models.Player) bool {
	if p.RatingOr(75) < 82 {
		return true
	}
	if team.OnTradingBlock(p.ID) {
		return true
	}
	if p.Morale > 0 && p.Morale < 50 {
		return true
	}
	if p.YearsRemainingOr(2) == 1 {
		return true
	}
	return e.retention(p) < 55
}

// ComputeAITradingBlock decides which players an AI team actively shops.
// An expiring player the team can likely re-sign (rating >= 78 with retention
// above 50) is never shopped, whatever the direction says.
func (e *Engine) ComputeAITradingBlock(team models.Team, dir direction.Direction) []string {
	var block []string
	for _, p := range team.Roster {
		rating := p.RatingOr(75)
		age := p.AgeOr(25)
		expiring := p.YearsRemainingOr(2) == 1

		if expiring && rating >= 78 && e.retention(p) > 50 {
			continue
		}

		switch dir {
		case direction.Rebuilding:
			if age >= 29 && rating >= 70 {
				block = append(block, p.ID)
				continue
			}
			if expiring {
				block = append(block, p.ID)
			}
		case direction.Ascending:
			if age >= 30 && rating < 80 {
				block = append(block, p.ID)
			}
		case direction.TitleContender, direction.WinNow:
			if age <= 23 && rating < 78 {
				block = append(block, p.ID)
			}
		}
	}
	return block
}

// postTradePayroll recomputes a team's payroll after sending gives and taking
// receives. Pick assets carry no salary.
func (e *Engine) postTradePayroll(team models.Team, gives, receives []models.Asset) decimal.Decimal {
	payroll := team.Payroll()
	for _, a := range gives {
		if a.Type != models.AssetPlayer {
			continue
		}
		if p := e.lookupPlayer(a.PlayerID); p != nil {
			payroll = payroll.Sub(p.Salary)
		}
	}
	for _, a := range receives {
		if a.Type != models.AssetPlayer {
			continue
		}
		if p := e.lookupPlayer(a.PlayerID); p != nil {
			payroll = payroll.Add(p.Salary)
		}
	}
	return payroll
}

// underTaxAfter reports whether the team stays at or below the luxury-tax
// line after the exchange. A zero line disables the check.
func (e *Engine) underTaxAfter(team models.Team, gives, receives []models.Asset) bool {
	if e.LuxuryTaxLine.IsZero() {
		return true
	}
	return e.postTradePayroll(team, gives, receives).LessThanOrEqual(e.LuxuryTaxLine)
}

func protectedIDs(team models.Team) map[string]bool {
	out := make(map[string]bool, protectedTopN)
	for _, p := range team.TopByRating(protectedTopN) {
		out[p.ID] = true
	}
	return out
}

func (e *Engine) logDebug(msg string, fields ...zap.Field) {
	if e.Logger != nil {
		e.Logger.Debug(msg, fields...)
	}
}
