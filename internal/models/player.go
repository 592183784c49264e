package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Position string

const (
	PointGuard    Position = "PG"
	ShootingGuard Position = "SG"
	SmallForward  Position = "SF"
	PowerForward  Position = "PF"
	Center        Position = "C"
)

// LineupPositions is the canonical slot order for a starting five.
var LineupPositions = [5]Position{PointGuard, ShootingGuard, SmallForward, PowerForward, Center}

// SeasonStats carries per-game production used for salary expectations and
// valuation production adjustments. All averages are per game played.
type SeasonStats struct {
	GamesPlayed     int     `json:"games_played"`
	PointsPerGame   float64 `json:"points_per_game"`
	ReboundsPerGame float64 `json:"rebounds_per_game"`
	AssistsPerGame  float64 `json:"assists_per_game"`
	MinutesShare    float64 `json:"minutes_share"`
}

// Player is the normalized player shape every engine component reads. It is
// populated once at the data-model boundary; formulas never fall back across
// alternate field spellings.
type Player struct {
	ID       string `gorm:"type:varchar(40);primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	TeamAbbr string `gorm:"type:varchar(5);index" json:"team_abbr"`

	Position          Position `gorm:"type:varchar(2);not null" json:"position"`
	SecondaryPosition Position `gorm:"type:varchar(2)" json:"secondary_position,omitempty"`

	Age    int `gorm:"not null" json:"age"`
	Rating int `gorm:"not null" json:"rating"`

	// TradeValue overrides the rating-derived base value when positive.
	TradeValue float64 `json:"trade_value,omitempty"`

	Salary        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"salary"`
	ContractYears int             `gorm:"not null" json:"contract_years"`

	Fatigue float64 `gorm:"not null;default:0" json:"fatigue"`
	Injured bool    `gorm:"not null;default:false" json:"injured"`
	Morale  float64 `gorm:"not null;default:70" json:"morale"`

	// RosterSlot orders the roster; slots 0-4 are the canonical starters.
	RosterSlot int `gorm:"not null;default:0" json:"roster_slot"`

	Motivations []Motivation `gorm:"serializer:json;type:jsonb" json:"motivations,omitempty"`
	Stats       *SeasonStats `gorm:"serializer:json;type:jsonb" json:"stats,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"-"`
}

func (Player) TableName() string {
	return "players"
}

// RatingOr returns the rating, or def when the snapshot carries none.
func (p Player) RatingOr(def int) int {
	if p.Rating <= 0 {
		return def
	}
	return p.Rating
}

// AgeOr returns the age, or def when the snapshot carries none.
func (p Player) AgeOr(def int) int {
	if p.Age <= 0 {
		return def
	}
	return p.Age
}

// YearsRemainingOr returns contract years remaining, or def when absent.
func (p Player) YearsRemainingOr(def int) int {
	if p.ContractYears <= 0 {
		return def
	}
	return p.ContractYears
}

// PlaysPosition reports whether pos matches the player's primary or secondary
// position.
func (p Player) PlaysPosition(pos Position) bool {
	return p.Position == pos || (p.SecondaryPosition != "" && p.SecondaryPosition == pos)
}

// MotivationFor returns the motivation for a category, if present.
func (p Player) MotivationFor(cat MotivationCategory) (Motivation, bool) {
	for _, m := range p.Motivations {
		if m.Category == cat {
			return m, true
		}
	}
	return Motivation{}, false
}
