package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"frontoffice/internal/direction"
	"frontoffice/internal/league"
	"frontoffice/internal/lineup"
	"frontoffice/internal/models"
	"frontoffice/internal/motivation"
	"frontoffice/internal/repository"
	"frontoffice/internal/valuation"
)

var ErrTeamNotFound = errors.New("service: team not found")

// InsightService answers read-only questions about a franchise: its strategic
// direction, its best available lineup, player retention and how it would
// price a hypothetical trade.
type InsightService struct {
	Repo       repository.Repository
	Logger     *zap.Logger
	Difficulty league.Difficulty
	SeasonYear int
}

func (s *InsightService) leagueContext(ctx context.Context) ([]models.Team, league.Context, error) {
	teams, err := s.Repo.ListTeams(ctx)
	if err != nil {
		return nil, league.Context{}, err
	}
	standings := make([]league.Standing, 0, len(teams))
	for _, t := range teams {
		standings = append(standings, league.Standing{TeamAbbr: t.Abbr, Wins: t.Wins, Losses: t.Losses})
	}
	return teams, league.BuildContext(standings, teams, s.SeasonYear, league.PhaseRegular), nil
}

// TeamDirection classifies a franchise against current standings.
func (s *InsightService) TeamDirection(ctx context.Context, abbr string) (direction.Direction, error) {
	team, err := s.Repo.GetTeamByAbbr(ctx, abbr)
	if err != nil {
		return "", err
	}
	if team == nil {
		return "", ErrTeamNotFound
	}
	_, lctx, err := s.leagueContext(ctx)
	if err != nil {
		return "", err
	}
	return direction.Classify(*team, lctx), nil
}

// TeamLineup returns the best available starting five and the rotation
// strategy classification for a franchise.
type TeamLineup struct {
	Starters lineup.Lineup               `json:"starters"`
	Strategy lineup.SubstitutionStrategy `json:"strategy"`
}

func (s *InsightService) Lineup(ctx context.Context, abbr string) (*TeamLineup, error) {
	team, err := s.Repo.GetTeamByAbbr(ctx, abbr)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	selected := lineup.SelectBestLineup(team.Roster)
	return &TeamLineup{
		Starters: selected,
		Strategy: lineup.SelectSubstitutionStrategy(team.Roster, nil),
	}, nil
}

// Retention scores every rostered player's likelihood to stay, keyed by id.
func (s *InsightService) Retention(ctx context.Context, abbr string) (map[string]float64, error) {
	team, err := s.Repo.GetTeamByAbbr(ctx, abbr)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	scores := make(map[string]float64, len(team.Roster))
	for _, p := range team.Roster {
		scores[p.ID] = motivation.RetentionScore(p)
	}
	return scores, nil
}

// EvaluateTrade prices a hypothetical exchange from one team's perspective.
func (s *InsightService) EvaluateTrade(ctx context.Context, abbr string, gives, receives []models.Asset) (*valuation.Evaluation, error) {
	team, err := s.Repo.GetTeamByAbbr(ctx, abbr)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrTeamNotFound
	}
	teams, lctx, err := s.leagueContext(ctx)
	if err != nil {
		return nil, err
	}
	dir := direction.Classify(*team, lctx)
	lookup := func(id string) *models.Player {
		p, err := s.Repo.GetPlayerByID(ctx, id)
		if err != nil {
			return nil
		}
		return p
	}
	pricer, err := valuation.NewPricer(*team, dir, s.Difficulty.Settings(), lookup, PickValuerFrom(teams, s.SeasonYear))
	if err != nil {
		return nil, err
	}
	ev := pricer.EvaluateTrade(gives, receives)
	return &ev, nil
}
