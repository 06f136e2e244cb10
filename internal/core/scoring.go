package core

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// ScoringMode selects how failed classifiers affect the weights
type ScoringMode string

const (
	// ScoringDynamic redistributes weight away from failed or skipped classifiers
	ScoringDynamic ScoringMode = "dynamic"
	// ScoringFixed keeps the base weights and substitutes 0 for missing values
	ScoringFixed ScoringMode = "fixed"
)

// ParseScoringMode parses a configured scoring mode
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(s) {
	case ScoringDynamic, "":
		return ScoringDynamic, nil
	case ScoringFixed:
		return ScoringFixed, nil
	default:
		return "", fmt.Errorf("unsupported scoring mode: %s", s)
	}
}

// Weights assigns a share of the final score to each classifier
type Weights struct {
	URL    float64
	Spam   float64
	LM     float64
	Scheme string
}

// Sum returns the total weight
func (w Weights) Sum() float64 {
	return w.URL + w.Spam + w.LM
}

// BaseWeights apply when every classifier answered
var BaseWeights = Weights{URL: 0.35, Spam: 0.40, LM: 0.25, Scheme: "all"}

type availability struct {
	lm, spam, url OutcomeStatus
}

var weightTable = map[availability]Weights{
	{Succeeded, Succeeded, Succeeded}: BaseWeights,
	{Succeeded, Succeeded, Skipped}:   {URL: 0, Spam: 0.60, LM: 0.40, Scheme: "no_url"},
	{Failed, Succeeded, Succeeded}:    {URL: 0.30, Spam: 0.70, LM: 0, Scheme: "lm_failed"},
	{Succeeded, Failed, Succeeded}:    {URL: 0.30, Spam: 0, LM: 0.70, Scheme: "spam_failed"},
	{Succeeded, Succeeded, Failed}:    {URL: 0, Spam: 0.60, LM: 0.40, Scheme: "url_failed"},
}

// WeightsFor returns the weights for a combination of outcome statuses.
// Combinations outside the table split the weight equally among the
// classifiers that succeeded.
func WeightsFor(lm, spam, url OutcomeStatus) Weights {
	if w, ok := weightTable[availability{lm, spam, url}]; ok {
		return w
	}

	var w Weights
	n := lo.CountBy([]OutcomeStatus{lm, spam, url}, func(s OutcomeStatus) bool {
		return s == Succeeded
	})
	if n == 0 {
		w.Scheme = "none"
		return w
	}

	share := 1.0 / float64(n)
	w.LM = lo.Ternary(lm == Succeeded, share, 0)
	w.Spam = lo.Ternary(spam == Succeeded, share, 0)
	w.URL = lo.Ternary(url == Succeeded, share, 0)
	w.Scheme = "degraded"
	return w
}

// Signals are the classifier outputs normalised to [0,1]
type Signals struct {
	URL  float64
	Spam float64
	LM   float64
}

// Aggregation is the outcome of combining the three classifier results
type Aggregation struct {
	Signals       Signals
	Weights       Weights
	WeightedScore float64
	TierScore     int
	Tier          RiskTier
}

// Aggregator turns fan-out outcomes into a weighted score and a risk tier
type Aggregator struct {
	mode ScoringMode
}

// NewAggregator creates an aggregator for the given mode
func NewAggregator(mode ScoringMode) *Aggregator {
	return &Aggregator{mode: mode}
}

// Normalize maps each outcome onto a [0,1] signal; failures and skips count as 0
func Normalize(result *FanOutResult) Signals {
	var s Signals
	if result.LM.Status == Succeeded && result.LM.Value != nil {
		s.LM = clampUnit(result.LM.Value.Confidence)
	}
	if result.Spam.Status == Succeeded && result.Spam.Value == SpamLabelSpam {
		s.Spam = 1
	}
	if result.URL.Status == Succeeded && result.URL.Value == URLMalicious {
		s.URL = 1
	}
	return s
}

// Aggregate combines the outcomes of one fan-out
func (a *Aggregator) Aggregate(result *FanOutResult) Aggregation {
	signals := Normalize(result)

	var weights Weights
	if a.mode == ScoringFixed {
		weights = BaseWeights
		weights.Scheme = string(ScoringFixed)
	} else {
		weights = WeightsFor(result.LM.Status, result.Spam.Status, result.URL.Status)
	}

	weighted := signals.URL*weights.URL + signals.Spam*weights.Spam + signals.LM*weights.LM
	score, tier := TierFromWeighted(weighted)
	if !result.AnySucceeded() {
		tier = TierIndeterminate
	}

	return Aggregation{
		Signals:       signals,
		Weights:       weights,
		WeightedScore: weighted,
		TierScore:     score,
		Tier:          tier,
	}
}

// TierFromWeighted scales a [0,1] weighted score onto 1..10 and maps it to a tier
func TierFromWeighted(weighted float64) (int, RiskTier) {
	raw := math.Round(1 + weighted*9)
	if math.IsNaN(raw) || raw < 1 || raw > 10 {
		return int(lo.Clamp(lo.Ternary(math.IsNaN(raw), 1, raw), 1, 10)), TierIndeterminate
	}
	score := int(raw)
	return score, TierFor(score)
}

// TierFor maps a 1..10 score onto a risk tier
func TierFor(score int) RiskTier {
	switch {
	case score >= 1 && score <= 3:
		return TierSafe
	case score >= 4 && score <= 7:
		return TierSuspicious
	case score >= 8 && score <= 10:
		return TierDangerous
	default:
		return TierIndeterminate
	}
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return lo.Clamp(v, 0, 1)
}
