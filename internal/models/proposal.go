package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type AssetType string

const (
	AssetPlayer AssetType = "player"
	AssetPick   AssetType = "pick"
)

// Asset is the unit of value in a trade: a player or a draft pick.
type Asset struct {
	Type     AssetType `json:"type"`
	PlayerID string    `json:"player_id,omitempty"`
	PickID   string    `json:"pick_id,omitempty"`
}

func PlayerAsset(id string) Asset { return Asset{Type: AssetPlayer, PlayerID: id} }
func PickAsset(id string) Asset   { return Asset{Type: AssetPick, PickID: id} }

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
	ProposalExpired  ProposalStatus = "expired"
)

// Terminal reports whether the status is final. Terminal proposals never
// re-enter pending.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalAccepted || s == ProposalRejected || s == ProposalExpired
}

// TradeProposal is an AI-authored trade offer. Asset lists are expressed from
// the proposing AI team's point of view and stored as jsonb.
type TradeProposal struct {
	ID       string         `gorm:"type:varchar(40);primaryKey" json:"id"`
	TeamAbbr string         `gorm:"type:varchar(5);not null;index" json:"team_abbr"`
	Status   ProposalStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Gives    datatypes.JSON `gorm:"type:jsonb;not null" json:"gives"`
	Receives datatypes.JSON `gorm:"type:jsonb;not null" json:"receives"`

	// TargetPlayerID denormalizes the headline player the AI asked for, so
	// per-player proposal cooldowns stay a cheap indexed query.
	TargetPlayerID string `gorm:"type:varchar(40);index" json:"target_player_id,omitempty"`

	Reason string `gorm:"type:text" json:"reason"`

	ExpiresAt  time.Time  `gorm:"type:timestamptz;not null;index" json:"expires_at"`
	ResolvedAt *time.Time `gorm:"type:timestamptz" json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"type:timestamptz;autoUpdateTime" json:"-"`
}

func (TradeProposal) TableName() string {
	return "trade_proposals"
}

// GivesAssets decodes the jsonb asset list the AI offers.
func (p TradeProposal) GivesAssets() []Asset {
	return decodeAssets(p.Gives)
}

// ReceivesAssets decodes the jsonb asset list the AI asks for.
func (p TradeProposal) ReceivesAssets() []Asset {
	return decodeAssets(p.Receives)
}

// SetAssets encodes both asset lists. Encoding a plain slice of Asset never
// fails, so the error is discarded.
func (p *TradeProposal) SetAssets(gives, receives []Asset) {
	p.Gives = encodeAssets(gives)
	p.Receives = encodeAssets(receives)
}

func decodeAssets(raw datatypes.JSON) []Asset {
	if len(raw) == 0 {
		return nil
	}
	var out []Asset
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func encodeAssets(assets []Asset) datatypes.JSON {
	if assets == nil {
		assets = []Asset{}
	}
	raw, _ := json.Marshal(assets)
	return datatypes.JSON(raw)
}
