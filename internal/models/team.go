package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DraftPick is a tradeable future pick. The engine has no pick-equity model of
// its own; pick values come from a caller-supplied valuation function.
type DraftPick struct {
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Round int    `json:"round"`
}

// Team is the normalized franchise shape. Roster ordering is significant: the
// first five entries are the canonical starters.
type Team struct {
	Abbr       string `gorm:"type:varchar(5);primaryKey" json:"abbr"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Conference string `gorm:"type:varchar(10);not null" json:"conference"`
	AIManaged  bool   `gorm:"not null;default:true" json:"ai_managed"`

	Wins   int `gorm:"not null;default:0" json:"wins"`
	Losses int `gorm:"not null;default:0" json:"losses"`

	// MarketSize is small, medium or large; Championships counts titles in the
	// current franchise era. Both feed player satisfaction.
	MarketSize     string `gorm:"type:varchar(10);not null;default:'medium'" json:"market_size"`
	Championships  int    `gorm:"not null;default:0" json:"championships"`
	CoachingStable bool   `gorm:"not null;default:true" json:"coaching_stable"`

	Picks        []DraftPick `gorm:"serializer:json;type:jsonb" json:"picks,omitempty"`
	TradingBlock []string    `gorm:"serializer:json;type:jsonb" json:"trading_block,omitempty"`

	// Roster is loaded by the repository, ordered by roster slot. It is never
	// persisted through this struct.
	Roster []Player `gorm:"-" json:"roster,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"-"`
}

func (Team) TableName() string {
	return "teams"
}

// Starters returns the first five roster entries.
func (t Team) Starters() []Player {
	if len(t.Roster) < 5 {
		return t.Roster
	}
	return t.Roster[:5]
}

// TopByRating returns the n highest-rated roster players.
func (t Team) TopByRating(n int) []Player {
	sorted := make([]Player, len(t.Roster))
	copy(sorted, t.Roster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RatingOr(70) > sorted[j].RatingOr(70)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// CountAtPosition counts roster players whose primary or secondary position
// matches pos.
func (t Team) CountAtPosition(pos Position) int {
	n := 0
	for _, p := range t.Roster {
		if p.PlaysPosition(pos) {
			n++
		}
	}
	return n
}

// OnTradingBlock reports whether the player id has been flagged available.
func (t Team) OnTradingBlock(playerID string) bool {
	for _, id := range t.TradingBlock {
		if id == playerID {
			return true
		}
	}
	return false
}

// Payroll sums roster salaries.
func (t Team) Payroll() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.Roster {
		total = total.Add(p.Salary)
	}
	return total
}

// CoreAge is the average age of the top five players by rating; 26 when the
// roster is empty.
func (t Team) CoreAge() float64 {
	core := t.TopByRating(5)
	if len(core) == 0 {
		return 26
	}
	sum := 0
	for _, p := range core {
		sum += p.AgeOr(25)
	}
	return float64(sum) / float64(len(core))
}
