package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"frontoffice/internal/contract"
	"frontoffice/internal/direction"
	"frontoffice/internal/league"
	"frontoffice/internal/lineup"
	"frontoffice/internal/models"
	"frontoffice/internal/motivation"
	"frontoffice/internal/repository"
	"frontoffice/internal/trade"
)

// CycleService drives the daily and weekly franchise cycles for every
// AI-managed team. Engine packages stay pure; this service loads snapshots,
// runs them and persists the results.
type CycleService struct {
	Repo       repository.Repository
	Logger     *zap.Logger
	Engine     *trade.Engine
	Difficulty league.Difficulty
	UserTeam   string
	SeasonYear int
	Rand       league.Rand
}

func (s *CycleService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// loadLeague pulls every team with its roster and flattens standings into a
// league context.
func (s *CycleService) loadLeague(ctx context.Context) ([]models.Team, league.Context, error) {
	teams, err := s.Repo.ListTeams(ctx)
	if err != nil {
		return nil, league.Context{}, fmt.Errorf("load teams: %w", err)
	}
	standings := make([]league.Standing, 0, len(teams))
	for _, t := range teams {
		standings = append(standings, league.Standing{TeamAbbr: t.Abbr, Wins: t.Wins, Losses: t.Losses})
	}
	lctx := league.BuildContext(standings, teams, s.SeasonYear, league.PhaseRegular)
	return teams, lctx, nil
}

// safeTeam isolates one team's cycle work: a panic in a single franchise never
// takes down the round for the rest of the league.
func (s *CycleService) safeTeam(abbr string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.log().Error("team cycle panicked",
				zap.String("team", abbr),
				zap.Any("panic", r))
		}
	}()
	if err := fn(); err != nil {
		s.log().Warn("team cycle failed", zap.String("team", abbr), zap.Error(err))
	}
}

// RunDaily refreshes starters and substitution strategies for every AI team.
func (s *CycleService) RunDaily(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	teams, _, err := s.loadLeague(ctx)
	if err != nil {
		return err
	}
	for i := range teams {
		team := teams[i]
		if !team.AIManaged || team.Abbr == s.UserTeam {
			continue
		}
		s.safeTeam(team.Abbr, func() error {
			return s.runTeamDaily(ctx, team)
		})
	}
	return nil
}

func (s *CycleService) runTeamDaily(ctx context.Context, team models.Team) error {
	swaps := lineup.RefreshStarters(team.Roster)
	if len(swaps) > 0 {
		applySwaps(team.Roster, swaps)
		if err := s.Repo.UpsertPlayers(ctx, team.Roster); err != nil {
			return fmt.Errorf("persist rotation: %w", err)
		}
	}
	strategy := lineup.SelectSubstitutionStrategy(team.Roster, s.Rand)
	s.log().Debug("daily rotation",
		zap.String("team", team.Abbr),
		zap.Int("swaps", len(swaps)),
		zap.String("strategy", string(strategy)))
	return nil
}

// applySwaps reorders roster slots so the swapped-in player occupies the
// vacated starter slot. RosterSlot values are rewritten to match the new
// ordering.
func applySwaps(roster []models.Player, swaps []lineup.Swap) {
	index := make(map[string]int, len(roster))
	for i, p := range roster {
		index[p.ID] = i
	}
	for _, sw := range swaps {
		out, okOut := index[sw.OutID]
		in, okIn := index[sw.InID]
		if !okOut || !okIn {
			continue
		}
		roster[out], roster[in] = roster[in], roster[out]
		index[sw.OutID], index[sw.InID] = in, out
	}
	for i := range roster {
		roster[i].RosterSlot = i
	}
}

// RunWeekly is the trade round: stale proposals expire, AI teams shop the
// user's roster, AI pairs settle deals among themselves and player
// satisfaction is recomputed against the fresh standings.
func (s *CycleService) RunWeekly(ctx context.Context) error {
	if s == nil || s.Repo == nil || s.Engine == nil {
		return nil
	}
	now := time.Now().UTC()

	expired, err := s.Repo.ExpireDueProposals(ctx, now)
	if err != nil {
		return fmt.Errorf("expire proposals: %w", err)
	}
	if expired > 0 {
		s.log().Info("proposals expired", zap.Int64("count", expired))
	}

	teams, lctx, err := s.loadLeague(ctx)
	if err != nil {
		return err
	}
	var user models.Team
	aiTeams := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if t.Abbr == s.UserTeam {
			user = t
			continue
		}
		if t.AIManaged {
			aiTeams = append(aiTeams, t)
		}
	}

	since := now.Add(-45 * 24 * time.Hour)
	history, err := s.Repo.ListProposals(ctx, repository.ListProposalsParams{Since: &since, Limit: 500})
	if err != nil {
		return fmt.Errorf("load proposal history: %w", err)
	}

	if user.Abbr != "" {
		proposals := s.Engine.GenerateProposals(aiTeams, user, lctx, history, now)
		for i := range proposals {
			if err := s.Repo.InsertProposal(ctx, &proposals[i]); err != nil {
				s.log().Warn("insert proposal failed",
					zap.String("team", proposals[i].TeamAbbr), zap.Error(err))
				continue
			}
			s.log().Info("proposal created",
				zap.String("team", proposals[i].TeamAbbr),
				zap.String("target", proposals[i].TargetPlayerID))
		}
	}

	deals := s.Engine.MatchAITrades(aiTeams, lctx, now)
	for _, deal := range deals {
		s.safeTeam(deal.TeamA, func() error {
			return s.applyDeal(ctx, teams, deal)
		})
	}

	s.recalcSatisfaction(ctx, teams, lctx)
	return nil
}

// applyDeal moves the settled assets both ways and persists the affected
// players and teams.
func (s *CycleService) applyDeal(ctx context.Context, teams []models.Team, deal trade.AIDeal) error {
	a := findTeam(teams, deal.TeamA)
	b := findTeam(teams, deal.TeamB)
	if a == nil || b == nil {
		return fmt.Errorf("deal references unknown team %s/%s", deal.TeamA, deal.TeamB)
	}
	var moved []models.Player
	moved = append(moved, transferAssets(a, b, deal.AGives)...)
	moved = append(moved, transferAssets(b, a, deal.BGives)...)
	if err := s.Repo.UpsertPlayers(ctx, moved); err != nil {
		return fmt.Errorf("persist traded players: %w", err)
	}
	if err := s.Repo.UpsertTeam(ctx, a); err != nil {
		return fmt.Errorf("persist team %s: %w", a.Abbr, err)
	}
	if err := s.Repo.UpsertTeam(ctx, b); err != nil {
		return fmt.Errorf("persist team %s: %w", b.Abbr, err)
	}
	s.log().Info("ai trade settled",
		zap.String("team_a", deal.TeamA),
		zap.String("team_b", deal.TeamB),
		zap.String("pattern", deal.Pattern),
		zap.String("reason", deal.Reason))
	return nil
}

// transferAssets moves the listed players and picks from one team to the
// other, mutating both rosters and pick lists. Traded players take the loyalty
// hit and land at the end of the new roster.
func transferAssets(from, to *models.Team, assets []models.Asset) []models.Player {
	var moved []models.Player
	for _, asset := range assets {
		switch asset.Type {
		case models.AssetPlayer:
			for i := range from.Roster {
				if from.Roster[i].ID != asset.PlayerID {
					continue
				}
				p := from.Roster[i]
				from.Roster = append(from.Roster[:i], from.Roster[i+1:]...)
				p.TeamAbbr = to.Abbr
				p.RosterSlot = len(to.Roster)
				p.Motivations = motivation.ApplyWeightShifts(p.Motivations, []motivation.Event{motivation.EventTraded})
				to.Roster = append(to.Roster, p)
				moved = append(moved, p)
				break
			}
		case models.AssetPick:
			for i := range from.Picks {
				if from.Picks[i].ID != asset.PickID {
					continue
				}
				pick := from.Picks[i]
				from.Picks = append(from.Picks[:i], from.Picks[i+1:]...)
				to.Picks = append(to.Picks, pick)
				break
			}
		}
	}
	return moved
}

// recalcSatisfaction rebuilds every rostered player's motivation satisfaction
// from the current standings and rotation.
func (s *CycleService) recalcSatisfaction(ctx context.Context, teams []models.Team, lctx league.Context) {
	for i := range teams {
		team := teams[i]
		if len(team.Roster) == 0 {
			continue
		}
		changed := false
		for j := range team.Roster {
			p := team.Roster[j]
			if len(p.Motivations) == 0 {
				continue
			}
			mctx := s.motivationContext(team, lctx, p)
			team.Roster[j].Motivations = motivation.Recalculate(p, mctx)
			changed = true
		}
		if !changed {
			continue
		}
		if err := s.Repo.UpsertPlayers(ctx, team.Roster); err != nil {
			s.log().Warn("persist satisfaction failed",
				zap.String("team", team.Abbr), zap.Error(err))
		}
	}
}

func (s *CycleService) motivationContext(team models.Team, lctx league.Context, p models.Player) motivation.Context {
	rec := lctx.RecordFor(team.Abbr)
	over80 := 0
	for _, mate := range team.Roster {
		if mate.ID != p.ID && mate.RatingOr(70) >= 80 {
			over80++
		}
	}
	minutes := 0.5
	if p.Stats != nil {
		minutes = p.Stats.MinutesShare
	}
	salaryRatio := 1.0
	expected := contract.ExpectedSalary(p.RatingOr(70), p.Stats)
	if expected.IsPositive() && p.Salary.IsPositive() {
		salaryRatio, _ = p.Salary.Div(expected).Float64()
	}
	return motivation.Context{
		TeamWinPct:       rec.WinPct(),
		InPlayoffRace:    rec.WinPct() >= 0.45,
		MinutesShare:     minutes,
		TeammatesOver80:  over80,
		CoachingStable:   team.CoachingStable,
		MarketSize:       parseMarketSize(team.MarketSize),
		Championships:    team.Championships,
		SalaryVsExpected: salaryRatio,
	}
}

func parseMarketSize(raw string) motivation.MarketSize {
	switch motivation.MarketSize(raw) {
	case motivation.MarketSmall, motivation.MarketMedium, motivation.MarketLarge:
		return motivation.MarketSize(raw)
	default:
		return motivation.MarketMedium
	}
}

// RunSeasonBoundary ages the league one season: contracts tick down, expiring
// deals are resolved, rosters are topped up from free agency and career events
// shift motivation weights.
func (s *CycleService) RunSeasonBoundary(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	teams, lctx, err := s.loadLeague(ctx)
	if err != nil {
		return err
	}
	freeAgents, err := s.Repo.ListFreeAgents(ctx)
	if err != nil {
		return fmt.Errorf("load free agents: %w", err)
	}
	signed := map[string]bool{}
	for i := range teams {
		team := teams[i]
		if !team.AIManaged || team.Abbr == s.UserTeam {
			continue
		}
		available := make([]models.Player, 0, len(freeAgents))
		for _, fa := range freeAgents {
			if !signed[fa.ID] {
				available = append(available, fa)
			}
		}
		s.safeTeam(team.Abbr, func() error {
			taken, err := s.runTeamBoundary(ctx, team, lctx, available)
			for _, id := range taken {
				signed[id] = true
			}
			return err
		})
	}
	return nil
}

// runTeamBoundary applies one team's contract pass and the end-of-season aging
// effects. It returns the ids of free agents the team signed so later teams do
// not sign the same player twice.
func (s *CycleService) runTeamBoundary(ctx context.Context, team models.Team, lctx league.Context, freeAgents []models.Player) ([]string, error) {
	dir := direction.Classify(team, lctx)
	decisions := contract.ProcessTeam(team, freeAgents, dir)

	byID := make(map[string]*models.Player, len(team.Roster))
	for i := range team.Roster {
		byID[team.Roster[i].ID] = &team.Roster[i]
	}
	faByID := make(map[string]models.Player, len(freeAgents))
	for _, fa := range freeAgents {
		faByID[fa.ID] = fa
	}

	var dirty []models.Player
	var taken []string
	for _, d := range decisions {
		switch d.Action {
		case contract.ActionResign:
			p := byID[d.PlayerID]
			if p == nil || d.Offer == nil {
				continue
			}
			p.Salary = d.Offer.Salary
			p.ContractYears = d.Offer.Years
		case contract.ActionRelease:
			p := byID[d.PlayerID]
			if p == nil {
				continue
			}
			p.TeamAbbr = ""
			p.RosterSlot = 0
			dirty = append(dirty, *p)
			delete(byID, d.PlayerID)
		case contract.ActionSign:
			fa, ok := faByID[d.PlayerID]
			if !ok || d.Offer == nil {
				continue
			}
			fa.TeamAbbr = team.Abbr
			fa.Salary = d.Offer.Salary
			fa.ContractYears = d.Offer.Years
			fa.RosterSlot = len(byID)
			byID[fa.ID] = &fa
			taken = append(taken, fa.ID)
		}
		s.log().Info("contract decision",
			zap.String("team", team.Abbr),
			zap.String("player", d.PlayerID),
			zap.String("action", string(d.Action)),
			zap.String("reason", d.Reason))
	}

	for _, p := range byID {
		p.Age++
		if p.ContractYears > 0 {
			p.ContractYears--
		}
		p.Fatigue = 0
		p.Motivations = motivation.ApplyWeightShifts(p.Motivations, []motivation.Event{motivation.EventAgedSeason})
		dirty = append(dirty, *p)
	}
	if len(dirty) == 0 {
		return taken, nil
	}
	if err := s.Repo.UpsertPlayers(ctx, dirty); err != nil {
		return taken, fmt.Errorf("persist boundary roster: %w", err)
	}
	return taken, nil
}

func findTeam(teams []models.Team, abbr string) *models.Team {
	for i := range teams {
		if teams[i].Abbr == abbr {
			return &teams[i]
		}
	}
	return nil
}
