// Package direction scores a team's roster and record into one of four
// strategic archetypes. Classification is deterministic, side-effect free and
// recomputed on demand; directions are never cached across roster changes.
package direction

import (
	"frontoffice/internal/league"
	"frontoffice/internal/models"
)

type Direction string

const (
	TitleContender Direction = "title_contender"
	WinNow         Direction = "win_now"
	Ascending      Direction = "ascending"
	Rebuilding     Direction = "rebuilding"
)

// rosterMetrics are the blended inputs to every archetype score.
type rosterMetrics struct {
	starPower   float64 // normalized 85+/82+ counts among the top-5 core
	tightness   float64 // age-range tightness of the core
	youth       float64 // from average core age
	avgRating   float64 // roster average rating, normalized to [0,1]
	coreAverage float64 // raw average core age
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func computeMetrics(team models.Team) rosterMetrics {
	core := team.TopByRating(5)
	var m rosterMetrics
	if len(core) == 0 {
		return rosterMetrics{starPower: 0, tightness: 0.5, youth: 0.5, avgRating: 0.33, coreAverage: 26}
	}

	stars85, stars82 := 0, 0
	minAge, maxAge, ageSum := 99, 0, 0
	for _, p := range core {
		r := p.RatingOr(70)
		if r >= 85 {
			stars85++
		}
		if r >= 82 {
			stars82++
		}
		a := p.AgeOr(25)
		ageSum += a
		if a < minAge {
			minAge = a
		}
		if a > maxAge {
			maxAge = a
		}
	}
	m.starPower = clamp01(0.7*float64(stars85)/3 + 0.3*float64(stars82)/5)
	m.tightness = clamp01(1 - float64(maxAge-minAge)/12)
	m.coreAverage = float64(ageSum) / float64(len(core))
	m.youth = clamp01((30 - m.coreAverage) / 8)

	ratingSum := 0
	for _, p := range team.Roster {
		ratingSum += p.RatingOr(70)
	}
	avg := 70.0
	if len(team.Roster) > 0 {
		avg = float64(ratingSum) / float64(len(team.Roster))
	}
	m.avgRating = clamp01((avg - 60) / 30)
	return m
}

// Classify resolves a team's archetype from current roster and standings.
func Classify(team models.Team, ctx league.Context) Direction {
	m := computeMetrics(team)
	rec := ctx.RecordFor(team.Abbr)
	w := rec.WinPct()
	games := rec.Games()

	// Hard override: the season is mathematically lost.
	remaining := league.SeasonGames - games
	if remaining >= 0 && rec.Wins+remaining < rec.Losses {
		return Rebuilding
	}
	// Hard override: elite roster with an elite record after a real sample.
	if m.starPower >= 0.8 && w >= 0.65 && games >= 15 {
		return TitleContender
	}

	// Record weight grows linearly with season progress, capped at 0.7.
	rw := ctx.Progress()
	if rw > 0.7 {
		rw = 0.7
	}

	rosterScores := map[Direction]float64{
		TitleContender: 0.65*m.starPower + 0.35*m.avgRating,
		WinNow:         0.5*m.avgRating + 0.3*m.starPower + 0.2*m.tightness,
		Ascending:      0.5*m.youth + 0.3*m.tightness + 0.2*m.avgRating,
		Rebuilding:     0.6*m.youth + 0.4*(1-m.avgRating),
	}
	recordScores := map[Direction]float64{
		TitleContender: clamp01((w - 0.35) / 0.40),
		WinNow:         clamp01((w - 0.30) / 0.35),
		Ascending:      ascendingRecordScore(w),
		Rebuilding:     clamp01((0.45 - w) / 0.35),
	}

	// Ascending first so exact ties default to it.
	order := []Direction{Ascending, TitleContender, WinNow, Rebuilding}
	best := Ascending
	bestScore := -1.0
	for _, d := range order {
		score := (1-rw)*rosterScores[d] + rw*recordScores[d]
		if score > bestScore {
			best = d
			bestScore = score
		}
	}
	return best
}

// ascendingRecordScore peaks at a .420 pace and decays twice as fast above it
// as below: a team winning comfortably past .500 is competing now, not rising.
func ascendingRecordScore(w float64) float64 {
	d := w - 0.42
	if d < 0 {
		return clamp01(1 + d*3)
	}
	return clamp01(1 - d*6)
}

// IsBuyer reports whether the direction trades for immediate help.
func (d Direction) IsBuyer() bool {
	return d == TitleContender || d == WinNow
}

// IsSeller reports whether the direction trades present talent for future
// assets.
func (d Direction) IsSeller() bool {
	return d == Rebuilding || d == Ascending
}
