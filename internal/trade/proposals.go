package trade

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"frontoffice/internal/contract"
	"frontoffice/internal/direction"
	"frontoffice/internal/league"
	"frontoffice/internal/models"
)

// needKind labels what an AI team is shopping for.
type needKind string

const (
	needPositionUpgrade needKind = "position_upgrade"
	needYoungCheap      needKind = "young_cheap"
)

type rosterNeed struct {
	kind      needKind
	position  models.Position
	minRating int
}

// GenerateProposals runs the weekly AI-to-user pass. history must contain the
// user's pending proposals plus proposals resolved inside the cooldown window;
// the caller persists whatever comes back.
func (e *Engine) GenerateProposals(aiTeams []models.Team, user models.Team, ctx league.Context, history []models.TradeProposal, now time.Time) []models.TradeProposal {
	var out []models.TradeProposal
	for _, team := range aiTeams {
		if team.Abbr == user.Abbr || len(team.Roster) < minRosterForTrade {
			continue
		}
		if hasTeamCooldown(history, team.Abbr, now) {
			continue
		}
		dir := direction.Classify(team, ctx)
		if !e.rollProposalGate(dir, ctx, now) {
			continue
		}

		need := e.identifyNeed(team, dir)
		target, ok := e.pickTarget(team, user, need)
		if !ok {
			continue
		}
		if hasPlayerCooldown(history, team.Abbr, target.ID, now) {
			continue
		}

		proposal, ok := e.buildProposal(team, dir, target, need, now)
		if !ok {
			continue
		}
		e.logDebug("proposal generated",
			zap.String("team", team.Abbr),
			zap.String("direction", string(dir)),
			zap.String("target", target.ID),
		)
		out = append(out, proposal)
	}
	return out
}

// hasTeamCooldown blocks a team with a live proposal or one declined inside
// the cooldown window.
func hasTeamCooldown(history []models.TradeProposal, teamAbbr string, now time.Time) bool {
	cutoff := now.AddDate(0, 0, -CooldownDays)
	for _, p := range history {
		if p.TeamAbbr != teamAbbr {
			continue
		}
		if p.Status == models.ProposalPending {
			return true
		}
		if p.Status == models.ProposalRejected && p.ResolvedAt != nil && p.ResolvedAt.After(cutoff) {
			return true
		}
	}
	return false
}

// hasPlayerCooldown blocks re-asking for a player the user declined recently.
func hasPlayerCooldown(history []models.TradeProposal, teamAbbr, playerID string, now time.Time) bool {
	cutoff := now.AddDate(0, 0, -CooldownDays)
	for _, p := range history {
		if p.TeamAbbr != teamAbbr || p.TargetPlayerID != playerID {
			continue
		}
		if p.Status == models.ProposalRejected && p.ResolvedAt != nil && p.ResolvedAt.After(cutoff) {
			return true
		}
	}
	return false
}

// rollProposalGate rolls the direction-specific proposal probability, boosted
// near the trade deadline and zeroed after it.
func (e *Engine) rollProposalGate(dir direction.Direction, ctx league.Context, now time.Time) bool {
	base := 0.2
	switch dir {
	case direction.TitleContender:
		base = 0.35
	case direction.WinNow:
		base = 0.30
	case direction.Rebuilding:
		base = 0.25
	case direction.Ascending:
		base = 0.20
	}
	days := league.DaysToDeadline(ctx.SeasonYear, now)
	switch {
	case days < 0:
		return false
	case days <= 14:
		base *= 1.75
	case days <= 30:
		base *= 1.3
	}
	if base > 0.9 {
		base = 0.9
	}
	return e.rand.Float64() < base
}

// identifyNeed picks the structural hole the team shops to fill: the weakest
// starting position for buyers, young-and-cheap for rebuilders, the weakest
// position with a lower bar otherwise.
func (e *Engine) identifyNeed(team models.Team, dir direction.Direction) rosterNeed {
	if dir == direction.Rebuilding {
		return rosterNeed{kind: needYoungCheap, minRating: 70}
	}
	pos, best := weakestPosition(team)
	minRating := best + 1
	if dir.IsBuyer() {
		minRating = best + 3
		if minRating < 78 {
			minRating = 78
		}
	} else if minRating < 72 {
		minRating = 72
	}
	return rosterNeed{kind: needPositionUpgrade, position: pos, minRating: minRating}
}

// weakestPosition finds the canonical slot with the lowest best-available
// rating, along with that rating.
func weakestPosition(team models.Team) (models.Position, int) {
	weakest := models.PointGuard
	weakestBest := math.MaxInt
	for _, pos := range models.LineupPositions {
		best := 0
		for _, p := range team.Roster {
			if p.PlaysPosition(pos) && p.RatingOr(70) > best {
				best = p.RatingOr(70)
			}
		}
		if best < weakestBest {
			weakest = pos
			weakestBest = best
		}
	}
	if weakestBest == math.MaxInt {
		weakestBest = 0
	}
	return weakest, weakestBest
}

// pickTarget filters the user roster through availability gating and the
// team's need, preferring flight risks (lower retention first).
func (e *Engine) pickTarget(team models.Team, user models.Team, need rosterNeed) (models.Player, bool) {
	var candidates []models.Player
	for _, p := range e.AvailableFromRoster(user) {
		if !e.matchesNeed(p, need) {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return models.Player{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := e.retention(candidates[i]), e.retention(candidates[j])
		if ri != rj {
			return ri < rj
		}
		return candidates[i].RatingOr(70) > candidates[j].RatingOr(70)
	})
	return candidates[0], true
}

func (e *Engine) matchesNeed(p models.Player, need rosterNeed) bool {
	switch need.kind {
	case needYoungCheap:
		if p.AgeOr(25) > 24 || p.RatingOr(70) < need.minRating {
			return false
		}
		// Cheap means at or below the expected-salary curve.
		expected := contract.ExpectedSalary(p.RatingOr(70), p.Stats)
		return p.Salary.LessThanOrEqual(expected)
	default:
		return p.PlaysPosition(need.position) && p.RatingOr(70) >= need.minRating
	}
}

// buildProposal assembles a reciprocal offer for the target and self-verifies
// it from the AI team's own perspective before emitting.
func (e *Engine) buildProposal(team models.Team, dir direction.Direction, target models.Player, need rosterNeed, now time.Time) (models.TradeProposal, bool) {
	pricer := e.pricerFor(team, dir)
	targetValue := pricer.ReceivingValue([]models.Asset{models.PlayerAsset(target.ID)})
	if targetValue <= 0 {
		return models.TradeProposal{}, false
	}

	gives, offerValue := e.assembleOffer(team, dir, targetValue)
	if len(gives) == 0 {
		return models.TradeProposal{}, false
	}
	// Sweeten a light offer with a pick when one is left.
	if offerValue < 0.8*targetValue {
		if pick, ok := sparePick(team, gives); ok {
			gives = append(gives, models.PickAsset(pick.ID))
		}
	}

	receives := []models.Asset{models.PlayerAsset(target.ID)}
	if verdict := pricer.EvaluateTrade(gives, receives); !verdict.Accept {
		e.logDebug("proposal failed self-check", zap.String("team", team.Abbr), zap.Float64("net", verdict.Net))
		return models.TradeProposal{}, false
	}

	proposal := models.TradeProposal{
		ID:             uuid.NewString(),
		TeamAbbr:       team.Abbr,
		Status:         models.ProposalPending,
		TargetPlayerID: target.ID,
		Reason:         proposalReason(dir, need, target),
		CreatedAt:      now,
		ExpiresAt:      now.Add(ProposalTTL),
	}
	proposal.SetAssets(gives, receives)
	return proposal, true
}

// assembleOffer finds a value-comparable player outside the team's protected
// top three, falling back to the best available pick.
func (e *Engine) assembleOffer(team models.Team, dir direction.Direction, targetValue float64) ([]models.Asset, float64) {
	protected := protectedIDs(team)
	pricer := e.pricerFor(team, dir)

	var bestPlayer *models.Player
	bestDistance := math.MaxFloat64
	for i := range team.Roster {
		p := team.Roster[i]
		if protected[p.ID] || p.Injured {
			continue
		}
		v := pricer.GivingValue([]models.Asset{models.PlayerAsset(p.ID)})
		if v < 0.5*targetValue || v > 1.5*targetValue {
			continue
		}
		if d := math.Abs(v - targetValue); d < bestDistance {
			bestDistance = d
			bestPlayer = &team.Roster[i]
		}
	}
	if bestPlayer != nil {
		asset := models.PlayerAsset(bestPlayer.ID)
		return []models.Asset{asset}, pricer.GivingValue([]models.Asset{asset})
	}

	if pick, ok := bestPick(team); ok {
		asset := models.PickAsset(pick.ID)
		return []models.Asset{asset}, pricer.GivingValue([]models.Asset{asset})
	}
	return nil, 0
}

func bestPick(team models.Team) (models.DraftPick, bool) {
	if len(team.Picks) == 0 {
		return models.DraftPick{}, false
	}
	best := team.Picks[0]
	for _, pk := range team.Picks[1:] {
		if pk.Round < best.Round || (pk.Round == best.Round && pk.Year < best.Year) {
			best = pk
		}
	}
	return best, true
}

// sparePick returns a pick not already part of the offer.
func sparePick(team models.Team, gives []models.Asset) (models.DraftPick, bool) {
	used := map[string]bool{}
	for _, a := range gives {
		if a.Type == models.AssetPick {
			used[a.PickID] = true
		}
	}
	for _, pk := range team.Picks {
		if !used[pk.ID] {
			return pk, true
		}
	}
	return models.DraftPick{}, false
}

func proposalReason(dir direction.Direction, need rosterNeed, target models.Player) string {
	if need.kind == needYoungCheap {
		return fmt.Sprintf("%s fits our rebuild timeline", target.Name)
	}
	switch dir {
	case direction.TitleContender:
		return fmt.Sprintf("%s shores up our weakest starting spot for a title run", target.Name)
	case direction.WinNow:
		return fmt.Sprintf("%s is the upgrade at %s we need to stay in the race", target.Name, need.position)
	default:
		return fmt.Sprintf("%s improves us at %s", target.Name, need.position)
	}
}
