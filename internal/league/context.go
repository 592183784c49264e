package league

import (
	"time"

	"frontoffice/internal/models"
)

type SeasonPhase string

const (
	PhaseRegular   SeasonPhase = "regular"
	PhasePlayoffs  SeasonPhase = "playoffs"
	PhaseOffseason SeasonPhase = "offseason"
)

// SeasonGames is the regular-season schedule length per team.
const SeasonGames = 82

// Record is a flattened win/loss line for one team.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (r Record) Games() int {
	return r.Wins + r.Losses
}

func (r Record) WinPct() float64 {
	if r.Games() == 0 {
		return 0.5
	}
	return float64(r.Wins) / float64(r.Games())
}

// Standing is one row of conference standings as supplied by the caller.
type Standing struct {
	TeamAbbr string `json:"team_abbr"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// Context is the flattened league snapshot required before any direction or
// trade computation: per-team records plus a league-wide games-played counter.
type Context struct {
	Records     map[string]Record
	GamesPlayed int
	SeasonYear  int
	Phase       SeasonPhase
}

// BuildContext flattens per-conference standings into an abbreviation-keyed
// record map. GamesPlayed is the maximum team games count, which tracks season
// progress even when schedules are slightly uneven.
func BuildContext(standings []Standing, teams []models.Team, seasonYear int, phase SeasonPhase) Context {
	ctx := Context{
		Records:    make(map[string]Record, len(teams)),
		SeasonYear: seasonYear,
		Phase:      phase,
	}
	for _, t := range teams {
		ctx.Records[t.Abbr] = Record{}
	}
	for _, s := range standings {
		if s.TeamAbbr == "" {
			continue
		}
		rec := Record{Wins: s.Wins, Losses: s.Losses}
		ctx.Records[s.TeamAbbr] = rec
		if rec.Games() > ctx.GamesPlayed {
			ctx.GamesPlayed = rec.Games()
		}
	}
	return ctx
}

// RecordFor returns the record for a team; an empty record when unknown.
func (c Context) RecordFor(abbr string) Record {
	return c.Records[abbr]
}

// Progress is the fraction of the season already played, in [0,1].
func (c Context) Progress() float64 {
	p := float64(c.GamesPlayed) / float64(SeasonGames)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// TradeDeadline returns the deadline for a season starting in seasonYear.
// Fixed calendar rule: January 6 of the following year.
func TradeDeadline(seasonYear int) time.Time {
	return time.Date(seasonYear+1, time.January, 6, 0, 0, 0, 0, time.UTC)
}

// DaysToDeadline is the whole number of days from now until the deadline;
// negative once the deadline has passed.
func DaysToDeadline(seasonYear int, now time.Time) int {
	return int(TradeDeadline(seasonYear).Sub(now).Hours() / 24)
}
