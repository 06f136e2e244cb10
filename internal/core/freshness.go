package core

import "time"

// FreshnessPolicy decides whether a stored verdict can be served without re-analysis
type FreshnessPolicy interface {
	IsFresh(verdict *Verdict, now time.Time) bool
}

// MaxAgePolicy treats verdicts younger than MaxAge as fresh.
// A zero MaxAge never expires a verdict.
type MaxAgePolicy struct {
	MaxAge time.Duration
}

// IsFresh implements FreshnessPolicy
func (p MaxAgePolicy) IsFresh(verdict *Verdict, now time.Time) bool {
	if p.MaxAge <= 0 {
		return true
	}
	return now.Sub(verdict.AnalyzedAt) < p.MaxAge
}
