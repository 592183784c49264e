package league

import "strings"

// Difficulty names an AI negotiation preset. The set is closed; Settings is
// exhaustive over it.
type Difficulty string

const (
	DifficultyRookie     Difficulty = "rookie"
	DifficultyPro        Difficulty = "pro"
	DifficultyAllStar    Difficulty = "all_star"
	DifficultyHallOfFame Difficulty = "hall_of_fame"
)

// DifficultySettings fixes how forgiving an AI team is in negotiations.
type DifficultySettings struct {
	// FairnessThresholdPct is the max value deficit tolerated, as a fraction
	// of the giving side's value.
	FairnessThresholdPct float64
	// FairnessMultiplier scales the threshold.
	FairnessMultiplier float64
	// StarProtection scales the giving-side premium on 85+ rated players.
	StarProtection float64
	// PickValueSensitivity scales externally supplied pick values.
	PickValueSensitivity float64
}

// ParseDifficulty normalizes a configured difficulty name. Unknown names fall
// back to pro.
func ParseDifficulty(raw string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(raw))) {
	case DifficultyRookie:
		return DifficultyRookie
	case DifficultyPro:
		return DifficultyPro
	case DifficultyAllStar:
		return DifficultyAllStar
	case DifficultyHallOfFame:
		return DifficultyHallOfFame
	default:
		return DifficultyPro
	}
}

// Settings returns the immutable preset for the difficulty. Unknown values
// behave as pro, matching ParseDifficulty.
func (d Difficulty) Settings() DifficultySettings {
	switch d {
	case DifficultyRookie:
		return DifficultySettings{
			FairnessThresholdPct: 0.30,
			FairnessMultiplier:   1.25,
			StarProtection:       0.85,
			PickValueSensitivity: 0.85,
		}
	case DifficultyAllStar:
		return DifficultySettings{
			FairnessThresholdPct: 0.12,
			FairnessMultiplier:   0.85,
			StarProtection:       1.15,
			PickValueSensitivity: 1.10,
		}
	case DifficultyHallOfFame:
		return DifficultySettings{
			FairnessThresholdPct: 0.08,
			FairnessMultiplier:   0.70,
			StarProtection:       1.30,
			PickValueSensitivity: 1.25,
		}
	default:
		return DifficultySettings{
			FairnessThresholdPct: 0.20,
			FairnessMultiplier:   1.00,
			StarProtection:       1.00,
			PickValueSensitivity: 1.00,
		}
	}
}
