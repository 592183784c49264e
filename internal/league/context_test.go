package league

import (
	"testing"
	"time"

	"frontoffice/internal/models"
)

func TestTradeDeadlineFixedRule(t *testing.T) {
	got := TradeDeadline(2025)
	want := time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("TradeDeadline(2025) = %v, want %v", got, want)
	}
}

func TestDaysToDeadline(t *testing.T) {
	now := time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC)
	if d := DaysToDeadline(2025, now); d != 7 {
		t.Fatalf("DaysToDeadline = %d, want 7", d)
	}
	after := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if d := DaysToDeadline(2025, after); d >= 0 {
		t.Fatalf("DaysToDeadline after deadline = %d, want negative", d)
	}
}

func TestWinPctNoGames(t *testing.T) {
	var r Record
	if got := r.WinPct(); got != 0.5 {
		t.Fatalf("WinPct with no games = %v, want 0.5", got)
	}
}

func TestBuildContext(t *testing.T) {
	teams := []models.Team{{Abbr: "AAA"}, {Abbr: "BBB"}, {Abbr: "CCC"}}
	standings := []Standing{
		{TeamAbbr: "AAA", Wins: 10, Losses: 5},
		{TeamAbbr: "BBB", Wins: 8, Losses: 8},
	}
	ctx := BuildContext(standings, teams, 2025, PhaseRegular)

	if ctx.GamesPlayed != 16 {
		t.Fatalf("GamesPlayed = %d, want 16", ctx.GamesPlayed)
	}
	if rec := ctx.RecordFor("AAA"); rec.Wins != 10 || rec.Losses != 5 {
		t.Fatalf("RecordFor(AAA) = %+v", rec)
	}
	// A team with no standings row still has an entry, at .500 by convention.
	if rec := ctx.RecordFor("CCC"); rec.WinPct() != 0.5 {
		t.Fatalf("RecordFor(CCC).WinPct = %v, want 0.5", rec.WinPct())
	}
}

func TestProgressClamped(t *testing.T) {
	ctx := Context{GamesPlayed: 41}
	if got := ctx.Progress(); got != 0.5 {
		t.Fatalf("Progress = %v, want 0.5", got)
	}
	ctx.GamesPlayed = 200
	if got := ctx.Progress(); got != 1 {
		t.Fatalf("Progress past schedule = %v, want 1", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"rookie":        DifficultyRookie,
		"  Hall_Of_Fame": DifficultyHallOfFame,
		"ALL_STAR":      DifficultyAllStar,
		"pro":           DifficultyPro,
		"mystery":       DifficultyPro,
		"":              DifficultyPro,
	}
	for raw, want := range cases {
		if got := ParseDifficulty(raw); got != want {
			t.Fatalf("ParseDifficulty(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestSettingsOrderedBySeverity(t *testing.T) {
	rookie := DifficultyRookie.Settings()
	pro := DifficultyPro.Settings()
	hof := DifficultyHallOfFame.Settings()

	if !(rookie.FairnessThresholdPct > pro.FairnessThresholdPct && pro.FairnessThresholdPct > hof.FairnessThresholdPct) {
		t.Fatalf("fairness thresholds not monotonic: %v %v %v",
			rookie.FairnessThresholdPct, pro.FairnessThresholdPct, hof.FairnessThresholdPct)
	}
	if !(rookie.StarProtection < pro.StarProtection && pro.StarProtection < hof.StarProtection) {
		t.Fatalf("star protection not monotonic")
	}
	if pro.FairnessMultiplier != 1.0 || pro.PickValueSensitivity != 1.0 {
		t.Fatalf("pro preset should be neutral: %+v", pro)
	}
}

func TestShuffleDeterministicUnderSeed(t *testing.T) {
	order := func(seed int64) []int {
		vals := []int{0, 1, 2, 3, 4, 5, 6, 7}
		r := NewRand(seed)
		Shuffle(r, len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
		return vals
	}
	a, b := order(42), order(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different orders: %v vs %v", a, b)
		}
	}
}
