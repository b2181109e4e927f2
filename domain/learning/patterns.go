package learning

import (
	"time"

	"adlens/domain/core"
	"adlens/domain/recommendation"

	"github.com/montanaflynn/stats"
)

// Config defines when historical patterns are trusted and how they adjust
// future recommendations.
type Config struct {
	MinSamples     int     `json:"min_samples"`      // Patterns with fewer terminal samples have no effect
	BoostRate      float64 `json:"boost_rate"`       // Success rate at or above this boosts one confidence step
	DemoteRate     float64 `json:"demote_rate"`      // Success rate below this demotes one confidence step
	KAnonymityMin  int     `json:"k_anonymity_min"`  // Accounts required before a pattern may be pooled cross-account
}

// DefaultConfig returns the production learning thresholds
func DefaultConfig() Config {
	return Config{
		MinSamples:    3,
		BoostRate:     0.60,
		DemoteRate:    0.30,
		KAnonymityMin: 5,
	}
}

// AccountPattern is the per-account, per-recommendation-type aggregate
// derived from terminal recommendations. It only ever adjusts future
// recommendations of the same type; stored history is never rewritten.
type AccountPattern struct {
	AccountID         core.AccountID      `json:"account_id" db:"account_id"`
	Type              recommendation.Type `json:"type" db:"type"`
	SampleSize        int                 `json:"sample_size" db:"sample_size"`
	SuccessRate       float64             `json:"success_rate" db:"success_rate"`
	AvgCPAImprovement float64             `json:"avg_cpa_improvement" db:"avg_cpa_improvement"`
	RecencyDays       int                 `json:"recency_days" db:"recency_days"`
}

// AccountLearnings collects an account's patterns keyed by type.
type AccountLearnings struct {
	AccountID core.AccountID                         `json:"account_id"`
	Patterns  map[recommendation.Type]AccountPattern `json:"patterns"`
}

// ComputeAccountLearnings aggregates terminal recommendations into per-type
// patterns. Recommendations whose outcome came back insufficient_data carry
// no evidence either way and are excluded from the sample.
func ComputeAccountLearnings(accountID core.AccountID, recs []*recommendation.Recommendation, now time.Time) AccountLearnings {
	learnings := AccountLearnings{
		AccountID: accountID,
		Patterns:  make(map[recommendation.Type]AccountPattern),
	}

	type tally struct {
		samples      int
		improved     int
		improvements []float64
		lastMeasured time.Time
	}
	tallies := make(map[recommendation.Type]*tally)

	for _, rec := range recs {
		if !rec.IsTerminal() || rec.Outcome.Verdict == recommendation.VerdictInsufficientData {
			continue
		}
		entry := tallies[rec.Type]
		if entry == nil {
			entry = &tally{}
			tallies[rec.Type] = entry
		}
		entry.samples++
		if rec.Outcome.Verdict == recommendation.VerdictImproved {
			entry.improved++
		}
		entry.improvements = append(entry.improvements, rec.Outcome.CPAChangePct)
		if measured := rec.Outcome.MeasuredAt.Time(); measured.After(entry.lastMeasured) {
			entry.lastMeasured = measured
		}
	}

	for recType, entry := range tallies {
		avgImprovement, _ := stats.Mean(entry.improvements)
		learnings.Patterns[recType] = AccountPattern{
			AccountID:         accountID,
			Type:              recType,
			SampleSize:        entry.samples,
			SuccessRate:       float64(entry.improved) / float64(entry.samples),
			AvgCPAImprovement: avgImprovement,
			RecencyDays:       int(now.Sub(entry.lastMeasured).Hours() / 24),
		}
	}

	return learnings
}
