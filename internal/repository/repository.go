package repository

import (
	"context"
	"time"

	"frontoffice/internal/models"
)

// ListProposalsParams filters proposal queries.
type ListProposalsParams struct {
	TeamAbbr *string
	Status   *models.ProposalStatus
	Since    *time.Time
	Limit    int
	Offset   int
}

// Repository is the persistence boundary the engine harness runs against. The
// engine packages themselves never see it; they work on snapshots loaded here.
type Repository interface {
	// Teams and rosters.
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeamByAbbr(ctx context.Context, abbr string) (*models.Team, error)
	UpsertTeam(ctx context.Context, item *models.Team) error
	ListPlayersByTeam(ctx context.Context, abbr string) ([]models.Player, error)
	ListFreeAgents(ctx context.Context) ([]models.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*models.Player, error)
	UpsertPlayers(ctx context.Context, items []models.Player) error

	// Proposal lifecycle.
	InsertProposal(ctx context.Context, item *models.TradeProposal) error
	GetProposalByID(ctx context.Context, id string) (*models.TradeProposal, error)
	ListProposals(ctx context.Context, params ListProposalsParams) ([]models.TradeProposal, error)
	UpdateProposalStatus(ctx context.Context, id string, status models.ProposalStatus, resolvedAt time.Time) error
	ExpireDueProposals(ctx context.Context, now time.Time) (int64, error)
}
