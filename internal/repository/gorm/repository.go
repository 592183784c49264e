package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"frontoffice/internal/models"
	"frontoffice/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Team
	if err := s.db.WithContext(ctx).Order("abbr asc").Find(&items).Error; err != nil {
		return nil, err
	}
	// Rosters ride along so callers hold a complete snapshot.
	for i := range items {
		roster, err := s.ListPlayersByTeam(ctx, items[i].Abbr)
		if err != nil {
			return nil, err
		}
		items[i].Roster = roster
	}
	return items, nil
}

func (s *Store) GetTeamByAbbr(ctx context.Context, abbr string) (*models.Team, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	abbr = strings.TrimSpace(abbr)
	if abbr == "" {
		return nil, nil
	}
	var item models.Team
	err := s.db.WithContext(ctx).Where("abbr = ?", abbr).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	roster, err := s.ListPlayersByTeam(ctx, item.Abbr)
	if err != nil {
		return nil, err
	}
	item.Roster = roster
	return &item, nil
}

func (s *Store) UpsertTeam(ctx context.Context, item *models.Team) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "abbr"}},
			UpdateAll: true,
		}).
		Create(item).Error
}

func (s *Store) ListPlayersByTeam(ctx context.Context, abbr string) ([]models.Player, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Player
	err := s.db.WithContext(ctx).
		Where("team_abbr = ?", strings.TrimSpace(abbr)).
		Order("roster_slot asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListFreeAgents(ctx context.Context) ([]models.Player, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Player
	err := s.db.WithContext(ctx).
		Where("team_abbr = '' OR team_abbr IS NULL").
		Order("rating desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetPlayerByID(ctx context.Context, id string) (*models.Player, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.Player
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpsertPlayers(ctx context.Context, items []models.Player) error {
	if s == nil || s.db == nil || len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&items).Error
}

func (s *Store) InsertProposal(ctx context.Context, item *models.TradeProposal) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetProposalByID(ctx context.Context, id string) (*models.TradeProposal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var item models.TradeProposal
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListProposals(ctx context.Context, params repository.ListProposalsParams) ([]models.TradeProposal, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.TradeProposal{})
	if params.TeamAbbr != nil && strings.TrimSpace(*params.TeamAbbr) != "" {
		query = query.Where("team_abbr = ?", strings.TrimSpace(*params.TeamAbbr))
	}
	if params.Status != nil && *params.Status != "" {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	var items []models.TradeProposal
	err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateProposalStatus(ctx context.Context, id string, status models.ProposalStatus, resolvedAt time.Time) error {
	if s == nil || s.db == nil {
		return nil
	}
	id = strings.TrimSpace(id)
	if id == "" || status == "" {
		return nil
	}
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if status.Terminal() {
		if resolvedAt.IsZero() {
			resolvedAt = time.Now().UTC()
		}
		updates["resolved_at"] = resolvedAt
	}
	return s.db.WithContext(ctx).
		Model(&models.TradeProposal{}).
		Where("id = ?", id).
		Where("status = ?", models.ProposalPending).
		Updates(updates).Error
}

func (s *Store) ExpireDueProposals(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	res := s.db.WithContext(ctx).
		Model(&models.TradeProposal{}).
		Where("status = ?", models.ProposalPending).
		Where("expires_at < ?", now).
		Updates(map[string]any{
			"status":      models.ProposalExpired,
			"resolved_at": now,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
