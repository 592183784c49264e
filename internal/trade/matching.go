package trade

import (
	"math"
	"time"

	"go.uber.org/zap"

	"frontoffice/internal/direction"
	"frontoffice/internal/league"
	"frontoffice/internal/models"
)

// AIDeal is one settled AI-to-AI exchange, expressed from team A's point of
// view. The caller applies both sides atomically.
type AIDeal struct {
	TeamA     string         `json:"team_a"`
	TeamB     string         `json:"team_b"`
	AGives    []models.Asset `json:"a_gives"`
	BGives    []models.Asset `json:"b_gives"`
	Reason    string         `json:"reason"`
	Pattern   string         `json:"pattern"`
	CreatedAt time.Time      `json:"created_at"`
}

// MatchAITrades pairs AI teams (shuffled so a round settles a bounded number
// of deals) and attempts trade patterns in a fixed priority order: straight
// swap, player-for-picks, then player-plus-pick-for-player. A deal settles
// only when both sides independently accept and neither side's post-trade
// payroll crosses the luxury-tax line.
func (e *Engine) MatchAITrades(aiTeams []models.Team, ctx league.Context, now time.Time) []AIDeal {
	teams := make([]models.Team, len(aiTeams))
	copy(teams, aiTeams)
	league.Shuffle(e.rand, len(teams), func(i, j int) {
		teams[i], teams[j] = teams[j], teams[i]
	})

	var deals []AIDeal
	for i := 0; i+1 < len(teams); i += 2 {
		a, b := teams[i], teams[i+1]
		if len(a.Roster) < minRosterForTrade || len(b.Roster) < minRosterForTrade {
			continue
		}
		dirA := direction.Classify(a, ctx)
		dirB := direction.Classify(b, ctx)
		if !e.rollMatchGate(dirA, dirB, ctx, now) {
			continue
		}
		if deal, ok := e.tryPatterns(a, dirA, b, dirB, now); ok {
			e.logDebug("ai deal settled",
				zap.String("team_a", deal.TeamA),
				zap.String("team_b", deal.TeamB),
				zap.String("pattern", deal.Pattern),
			)
			deals = append(deals, deal)
		}
	}
	return deals
}

func (e *Engine) rollMatchGate(dirA, dirB direction.Direction, ctx league.Context, now time.Time) bool {
	p := 0.15
	days := league.DaysToDeadline(ctx.SeasonYear, now)
	if days < 0 {
		return false
	}
	// Buyers press harder as the deadline closes in.
	if days <= 30 && (dirA.IsBuyer() || dirB.IsBuyer()) {
		p *= 2
	}
	return e.rand.Float64() < p
}

// tryPatterns attempts the patterns in priority order. The order is fixed so
// a matching round is deterministic for a given random sequence.
func (e *Engine) tryPatterns(a models.Team, dirA direction.Direction, b models.Team, dirB direction.Direction, now time.Time) (AIDeal, bool) {
	if deal, ok := e.trySwap(a, dirA, b, dirB, now); ok {
		return deal, true
	}
	if deal, ok := e.tryPlayerForPicks(a, dirA, b, dirB, now); ok {
		return deal, true
	}
	if deal, ok := e.tryPlayerPlusPick(a, dirA, b, dirB, now); ok {
		return deal, true
	}
	return AIDeal{}, false
}

// settle runs both sides' independent evaluations plus the luxury-tax check.
func (e *Engine) settle(a models.Team, dirA direction.Direction, aGives []models.Asset, b models.Team, dirB direction.Direction, bGives []models.Asset, pattern, reason string, now time.Time) (AIDeal, bool) {
	if !e.underTaxAfter(a, aGives, bGives) || !e.underTaxAfter(b, bGives, aGives) {
		return AIDeal{}, false
	}
	if verdict := e.pricerFor(a, dirA).EvaluateTrade(aGives, bGives); !verdict.Accept {
		return AIDeal{}, false
	}
	if verdict := e.pricerFor(b, dirB).EvaluateTrade(bGives, aGives); !verdict.Accept {
		return AIDeal{}, false
	}
	return AIDeal{
		TeamA:     a.Abbr,
		TeamB:     b.Abbr,
		AGives:    aGives,
		BGives:    bGives,
		Reason:    reason,
		Pattern:   pattern,
		CreatedAt: now,
	}, true
}

// trySwap exchanges one shopped player from each side when their values sit
// close enough for both evaluations to clear.
func (e *Engine) trySwap(a models.Team, dirA direction.Direction, b models.Team, dirB direction.Direction, now time.Time) (AIDeal, bool) {
	shopA := e.shoppedPlayers(a, dirA)
	shopB := e.shoppedPlayers(b, dirB)
	if len(shopA) == 0 || len(shopB) == 0 {
		return AIDeal{}, false
	}
	pricerA := e.pricerFor(a, dirA)

	for _, pa := range shopA {
		giveA := []models.Asset{models.PlayerAsset(pa.ID)}
		va := pricerA.GivingValue(giveA)
		for _, pb := range shopB {
			giveB := []models.Asset{models.PlayerAsset(pb.ID)}
			vb := pricerA.ReceivingValue(giveB)
			if vb < 0.75*va || vb > 1.35*va {
				continue
			}
			if deal, ok := e.settle(a, dirA, giveA, b, dirB, giveB, "swap", "one-for-one roster swap", now); ok {
				return deal, true
			}
		}
	}
	return AIDeal{}, false
}

// tryPlayerForPicks lets a buyer purchase a shopped player from a seller for
// one or two picks, sized by the target's rating.
func (e *Engine) tryPlayerForPicks(a models.Team, dirA direction.Direction, b models.Team, dirB direction.Direction, now time.Time) (AIDeal, bool) {
	buyer, seller := a, b
	buyerDir, sellerDir := dirA, dirB
	buyerIsA := true
	if !buyerDir.IsBuyer() || !sellerDir.IsSeller() {
		buyer, seller = b, a
		buyerDir, sellerDir = dirB, dirA
		buyerIsA = false
		if !buyerDir.IsBuyer() || !sellerDir.IsSeller() {
			return AIDeal{}, false
		}
	}

	shopped := e.shoppedPlayers(seller, sellerDir)
	if len(shopped) == 0 || len(buyer.Picks) == 0 {
		return AIDeal{}, false
	}

	for _, target := range shopped {
		wanted := 1
		if target.RatingOr(75) >= 82 {
			wanted = 2
		}
		if len(buyer.Picks) < wanted {
			continue
		}
		picks := make([]models.Asset, 0, wanted)
		for _, pk := range buyer.Picks[:wanted] {
			picks = append(picks, models.PickAsset(pk.ID))
		}
		targetAsset := []models.Asset{models.PlayerAsset(target.ID)}
		var deal AIDeal
		var ok bool
		if buyerIsA {
			deal, ok = e.settle(buyer, buyerDir, picks, seller, sellerDir, targetAsset, "player_for_picks", "veteran moved for draft capital", now)
		} else {
			deal, ok = e.settle(seller, sellerDir, targetAsset, buyer, buyerDir, picks, "player_for_picks", "veteran moved for draft capital", now)
		}
		if ok {
			return deal, true
		}
	}
	return AIDeal{}, false
}

// tryPlayerPlusPick targets a shopped player and sends back a cheaper player
// (0.4x-0.85x of the target's value) plus a pick, protecting each side's top
// three.
func (e *Engine) tryPlayerPlusPick(a models.Team, dirA direction.Direction, b models.Team, dirB direction.Direction, now time.Time) (AIDeal, bool) {
	shopB := e.shoppedPlayers(b, dirB)
	if len(shopB) == 0 || len(a.Picks) == 0 {
		return AIDeal{}, false
	}
	pricerA := e.pricerFor(a, dirA)
	protectedA := protectedIDs(a)

	for _, target := range shopB {
		targetAsset := []models.Asset{models.PlayerAsset(target.ID)}
		targetValue := pricerA.ReceivingValue(targetAsset)
		if targetValue <= 0 {
			continue
		}
		var back *models.Player
		bestDistance := math.MaxFloat64
		for i := range a.Roster {
			p := a.Roster[i]
			if protectedA[p.ID] || p.Injured {
				continue
			}
			v := pricerA.GivingValue([]models.Asset{models.PlayerAsset(p.ID)})
			if v < 0.4*targetValue || v > 0.85*targetValue {
				continue
			}
			if d := math.Abs(v - 0.6*targetValue); d < bestDistance {
				bestDistance = d
				back = &a.Roster[i]
			}
		}
		if back == nil {
			continue
		}
		gives := []models.Asset{models.PlayerAsset(back.ID), models.PickAsset(a.Picks[0].ID)}
		if deal, ok := e.settle(a, dirA, gives, b, dirB, targetAsset, "player_plus_pick", "talent consolidation", now); ok {
			return deal, true
		}
	}
	return AIDeal{}, false
}

// shoppedPlayers resolves a team's effective shop list: the explicit trading
// block union the computed one.
func (e *Engine) shoppedPlayers(team models.Team, dir direction.Direction) []models.Player {
	ids := map[string]bool{}
	for _, id := range team.TradingBlock {
		ids[id] = true
	}
	for _, id := range e.ComputeAITradingBlock(team, dir) {
		ids[id] = true
	}
	var out []models.Player
	for _, p := range team.Roster {
		if ids[p.ID] && !p.Injured {
			out = append(out, p)
		}
	}
	return out
}
