// Package valuation prices trade assets from the perspective of one team and
// its strategic direction. Receiving and giving are asymmetric on purpose: a
// team pays premiums for fit and charges premiums for protected assets.
package valuation

import (
	"errors"
	"math"

	"frontoffice/internal/contract"
	"frontoffice/internal/direction"
	"frontoffice/internal/league"
	"frontoffice/internal/models"
	"frontoffice/internal/motivation"
)

// Collaborator lookups supplied by the caller. A nil lookup is a programming
// contract violation surfaced at construction, never defaulted.
type (
	PlayerLookup func(id string) *models.Player
	PickValuer   func(id string) float64
)

var (
	ErrNoPlayerLookup = errors.New("valuation: player lookup function is required")
	ErrNoPickValuer   = errors.New("valuation: pick value function is required")
)

// Pricer values assets for one team under one direction and difficulty. It is
// cheap to construct; build a fresh one per evaluation rather than caching.
type Pricer struct {
	Team       models.Team
	Direction  direction.Direction
	Difficulty league.DifficultySettings

	lookupPlayer PlayerLookup
	pickValue    PickValuer

	// retention overrides the default retention estimate in tests.
	retention func(models.Player) float64
}

func NewPricer(team models.Team, dir direction.Direction, settings league.DifficultySettings, lookup PlayerLookup, picks PickValuer) (*Pricer, error) {
	if lookup == nil {
		return nil, ErrNoPlayerLookup
	}
	if picks == nil {
		return nil, ErrNoPickValuer
	}
	return &Pricer{
		Team:         team,
		Direction:    dir,
		Difficulty:   settings,
		lookupPlayer: lookup,
		pickValue:    picks,
		retention:    motivation.RetentionScore,
	}, nil
}

// WithRetention swaps the retention estimator; used by tests and by callers
// that precompute satisfaction against a richer context.
func (pr *Pricer) WithRetention(fn func(models.Player) float64) *Pricer {
	if fn != nil {
		pr.retention = fn
	}
	return pr
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func baseValue(p models.Player) float64 {
	if p.TradeValue > 0 {
		return p.TradeValue
	}
	return float64(p.RatingOr(75))
}

// agePremium is the young-player premium curve.
func agePremium(age int) float64 {
	switch {
	case age <= 22:
		return 1.25
	case age <= 25:
		return 1.15
	case age <= 28:
		return 1.0
	case age <= 30:
		return 0.9
	default:
		return 0.75
	}
}

// contractMultiplier compares actual salary to the expected-salary curve.
// Underpaid players carry a multiplier above 1.
func contractMultiplier(p models.Player) float64 {
	expected := contract.ExpectedSalary(p.RatingOr(75), p.Stats)
	actual := p.Salary
	if actual.IsZero() || actual.IsNegative() {
		return 1.2
	}
	ratio, _ := expected.Div(actual).Float64()
	if ratio < 0.8 {
		return 0.8
	}
	if ratio > 1.2 {
		return 1.2
	}
	return ratio
}

type assetClass int

const (
	classStar assetClass = iota
	classYoung
	classVeteran
	classCore
)

func classify(p models.Player) assetClass {
	switch {
	case p.RatingOr(75) >= 85:
		return classStar
	case p.AgeOr(25) <= 24:
		return classYoung
	case p.AgeOr(25) >= 30:
		return classVeteran
	default:
		return classCore
	}
}

func receivingDirectionMultiplier(dir direction.Direction, class assetClass) float64 {
	switch dir {
	case direction.TitleContender:
		switch class {
		case classStar:
			return 1.25
		case classYoung:
			return 0.85
		case classVeteran:
			return 1.05
		}
	case direction.WinNow:
		switch class {
		case classStar:
			return 1.15
		case classYoung:
			return 0.90
		case classVeteran:
			return 1.00
		}
	case direction.Ascending:
		switch class {
		case classStar:
			return 1.00
		case classYoung:
			return 1.20
		case classVeteran:
			return 0.85
		}
	case direction.Rebuilding:
		switch class {
		case classStar:
			return 0.90
		case classYoung:
			return 1.30
		case classVeteran:
			return 0.70
		}
	}
	return 1.0
}

// starProtectionFactor is the giving-side premium on 85+ players before the
// difficulty multiplier.
func starProtectionFactor(dir direction.Direction) float64 {
	switch dir {
	case direction.TitleContender:
		return 1.40
	case direction.WinNow:
		return 1.25
	case direction.Ascending:
		return 1.10
	case direction.Rebuilding:
		return 0.95
	default:
		return 1.0
	}
}

func givingEaseMultiplier(dir direction.Direction, class assetClass) float64 {
	switch dir {
	case direction.Rebuilding:
		switch class {
		case classVeteran:
			return 0.85
		case classYoung:
			return 1.20
		}
	case direction.Ascending:
		if class == classYoung {
			return 1.15
		}
	case direction.TitleContender, direction.WinNow:
		switch class {
		case classYoung:
			return 0.90
		case classVeteran:
			return 1.05
		}
	}
	return 1.0
}

func pickDirectionFactor(dir direction.Direction) float64 {
	switch dir {
	case direction.Rebuilding:
		return 1.25
	case direction.Ascending:
		return 1.10
	case direction.WinNow:
		return 0.90
	case direction.TitleContender:
		return 0.80
	default:
		return 1.0
	}
}

// timelineFit buckets the distance between a player's age and the receiving
// team's core age.
func timelineFit(playerAge int, coreAge float64) float64 {
	d := math.Abs(float64(playerAge) - coreAge)
	switch {
	case d <= 2:
		return 1.10
	case d <= 5:
		return 1.00
	default:
		return 0.90
	}
}

func (pr *Pricer) receivingPlayerValue(p models.Player) float64 {
	v := baseValue(p) * agePremium(p.AgeOr(25)) * contractMultiplier(p)

	years := p.YearsRemainingOr(1)
	if pr.Direction.IsSeller() && years == 1 {
		// Expiring deals are cap relief for teams selling the present.
		v *= 1.15
	}
	v *= timelineFit(p.AgeOr(25), pr.Team.CoreAge())
	v *= receivingDirectionMultiplier(pr.Direction, classify(p))
	if pr.Team.CountAtPosition(p.Position) < 2 {
		v *= 1.15
	}
	if years == 1 {
		v *= 0.5 + pr.retention(p)/100*0.5
	}
	return v
}

func (pr *Pricer) givingPlayerValue(p models.Player) float64 {
	// Underpaid contracts are easier to move: the giving side discounts what
	// the receiving side pays a premium for.
	v := baseValue(p) * agePremium(p.AgeOr(25)) * (2 - contractMultiplier(p))
	class := classify(p)
	if class == classStar {
		v *= starProtectionFactor(pr.Direction) * pr.Difficulty.StarProtection
	} else {
		v *= givingEaseMultiplier(pr.Direction, class)
	}
	return v
}

func (pr *Pricer) pickAssetValue(pickID string) float64 {
	return pr.pickValue(pickID) * pickDirectionFactor(pr.Direction) * pr.Difficulty.PickValueSensitivity
}

// ReceivingValue folds a value over the assets the team would take in.
// Missing players degrade to zero value rather than failing the whole fold.
func (pr *Pricer) ReceivingValue(assets []models.Asset) float64 {
	total := 0.0
	for _, a := range assets {
		switch a.Type {
		case models.AssetPlayer:
			if p := pr.lookupPlayer(a.PlayerID); p != nil {
				total += pr.receivingPlayerValue(*p)
			}
		case models.AssetPick:
			total += pr.pickAssetValue(a.PickID)
		}
	}
	return round2(total)
}

// GivingValue folds a value over the assets the team would surrender.
func (pr *Pricer) GivingValue(assets []models.Asset) float64 {
	total := 0.0
	for _, a := range assets {
		switch a.Type {
		case models.AssetPlayer:
			if p := pr.lookupPlayer(a.PlayerID); p != nil {
				total += pr.givingPlayerValue(*p)
			}
		case models.AssetPick:
			total += pr.pickAssetValue(a.PickID)
		}
	}
	return round2(total)
}

// Evaluation is the verdict on a proposed asset exchange.
type Evaluation struct {
	Accept    bool    `json:"accept"`
	Receiving float64 `json:"receiving"`
	Giving    float64 `json:"giving"`
	Net       float64 `json:"net"`
	Threshold float64 `json:"threshold"`
	Reason    string  `json:"reason,omitempty"`
}

// EvaluateTrade accepts when the net value is within the fairness threshold:
// net >= -max(giving * thresholdPct * fairnessMult, 1). A balanced trade
// always passes under every difficulty preset.
func (pr *Pricer) EvaluateTrade(gives, receives []models.Asset) Evaluation {
	giving := pr.GivingValue(gives)
	receiving := pr.ReceivingValue(receives)
	net := round2(receiving - giving)

	threshold := giving * pr.Difficulty.FairnessThresholdPct * pr.Difficulty.FairnessMultiplier
	if threshold < 1 {
		threshold = 1
	}
	threshold = round2(threshold)

	ev := Evaluation{
		Receiving: receiving,
		Giving:    giving,
		Net:       net,
		Threshold: threshold,
	}
	if net >= -threshold {
		ev.Accept = true
		return ev
	}
	ev.Reason = pr.rejectionReason(receives)
	return ev
}

// rejectionReason picks a taxonomy entry keyed by direction and by which asset
// categories are missing from what the team was offered.
func (pr *Pricer) rejectionReason(receives []models.Asset) string {
	var hasStar, hasYoung, hasVeteran, hasPick bool
	for _, a := range receives {
		switch a.Type {
		case models.AssetPick:
			hasPick = true
		case models.AssetPlayer:
			p := pr.lookupPlayer(a.PlayerID)
			if p == nil {
				continue
			}
			switch classify(*p) {
			case classStar:
				hasStar = true
			case classYoung:
				hasYoung = true
			case classVeteran:
				hasVeteran = true
			}
		}
	}

	switch pr.Direction {
	case direction.Rebuilding:
		if !hasYoung && !hasPick {
			return "we are rebuilding and need young players or draft capital back"
		}
		return "the return does not move our rebuild forward"
	case direction.Ascending:
		if !hasYoung {
			return "we are building around our young core and the return skews too old"
		}
		return "the value gap is too large for a rising team to absorb"
	case direction.TitleContender:
		if !hasStar && !hasVeteran {
			return "a title push needs proven talent back, not futures"
		}
		return "we cannot weaken our championship core for this return"
	case direction.WinNow:
		if !hasStar && !hasVeteran && hasPick {
			return "picks alone do not help us win this season"
		}
		return "the return falls short of what this roster gives up"
	default:
		return "the value gap is too large"
	}
}
