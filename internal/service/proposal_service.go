package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"frontoffice/internal/models"
	"frontoffice/internal/repository"
)

var (
	ErrProposalNotFound = errors.New("service: proposal not found")
	ErrProposalResolved = errors.New("service: proposal already resolved")
	ErrProposalExpired  = errors.New("service: proposal expired")
)

// ProposalService resolves AI trade proposals against the user's roster.
type ProposalService struct {
	Repo     repository.Repository
	Logger   *zap.Logger
	UserTeam string
}

func (s *ProposalService) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// List returns proposals matching the filter, newest first.
func (s *ProposalService) List(ctx context.Context, params repository.ListProposalsParams) ([]models.TradeProposal, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListProposals(ctx, params)
}

// Respond accepts or rejects a pending proposal. A proposal past its expiry is
// marked expired instead of resolving, and acceptance moves the listed assets
// between the proposing team and the user's team.
func (s *ProposalService) Respond(ctx context.Context, id string, accept bool) (*models.TradeProposal, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrProposalNotFound
	}
	proposal, err := s.Repo.GetProposalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}
	if proposal.Status.Terminal() {
		return proposal, ErrProposalResolved
	}
	now := time.Now().UTC()
	if proposal.ExpiresAt.Before(now) {
		if err := s.Repo.UpdateProposalStatus(ctx, proposal.ID, models.ProposalExpired, now); err != nil {
			return nil, err
		}
		proposal.Status = models.ProposalExpired
		proposal.ResolvedAt = &now
		return proposal, ErrProposalExpired
	}

	status := models.ProposalRejected
	if accept {
		if err := s.applyAccepted(ctx, proposal); err != nil {
			return nil, fmt.Errorf("apply accepted proposal: %w", err)
		}
		status = models.ProposalAccepted
	}
	if err := s.Repo.UpdateProposalStatus(ctx, proposal.ID, status, now); err != nil {
		return nil, err
	}
	proposal.Status = status
	proposal.ResolvedAt = &now
	s.log().Info("proposal resolved",
		zap.String("id", proposal.ID),
		zap.String("team", proposal.TeamAbbr),
		zap.String("status", string(status)))
	return proposal, nil
}

// applyAccepted executes the exchange: the proposing AI team's gives go to the
// user, the receives come back. Asset lists are expressed from the AI team's
// point of view.
func (s *ProposalService) applyAccepted(ctx context.Context, proposal *models.TradeProposal) error {
	ai, err := s.Repo.GetTeamByAbbr(ctx, proposal.TeamAbbr)
	if err != nil {
		return err
	}
	user, err := s.Repo.GetTeamByAbbr(ctx, s.UserTeam)
	if err != nil {
		return err
	}
	if ai == nil || user == nil {
		return fmt.Errorf("proposal teams missing: %s/%s", proposal.TeamAbbr, s.UserTeam)
	}
	var moved []models.Player
	moved = append(moved, transferAssets(ai, user, proposal.GivesAssets())...)
	moved = append(moved, transferAssets(user, ai, proposal.ReceivesAssets())...)
	if err := s.Repo.UpsertPlayers(ctx, moved); err != nil {
		return err
	}
	if err := s.Repo.UpsertTeam(ctx, ai); err != nil {
		return err
	}
	return s.Repo.UpsertTeam(ctx, user)
}
