package recommendation

import (
	"adlens/domain/confidence"
	"adlens/domain/core"
)

// OutcomeConfig defines outcome measurement thresholds
type OutcomeConfig struct {
	MinAfterConversions int64   `json:"min_after_conversions"` // Below this the verdict is forced to insufficient_data
	SignificanceBandPct float64 `json:"significance_band_pct"` // CPA change within this band is neutral
	ConversionsLow      int64   `json:"conversions_low"`
	ConversionsMed      int64   `json:"conversions_med"`
	ConversionsHi       int64   `json:"conversions_hi"`
}

// DefaultOutcomeConfig returns the production measurement thresholds
func DefaultOutcomeConfig() OutcomeConfig {
	return OutcomeConfig{
		MinAfterConversions: 10,
		SignificanceBandPct: 0.10,
		ConversionsLow:      10,
		ConversionsMed:      30,
		ConversionsHi:       100,
	}
}

// MeasureOutcome compares a before/after metrics snapshot and produces a
// verdict. Fewer than MinAfterConversions in the after period forces
// insufficient_data no matter how large the observed delta is, which
// protects the meta-learner from noise-driven verdicts. CPA improvement
// beyond the significance band is improved; decline beyond it is declined;
// anything inside the band is neutral. Measurement confidence follows the
// conversion-count ladder independently of the verdict.
func MeasureOutcome(before, after PeriodMetrics, runDurationDays int, cfg OutcomeConfig, now core.Timestamp) Outcome {
	outcome := Outcome{
		Before:          before,
		After:           after,
		RunDurationDays: runDurationDays,
		MeasuredAt:      now,
		Confidence:      measurementConfidence(after.Conversions, cfg),
	}

	// CPA change as a fraction: positive means improvement (cheaper).
	if before.CPA > 0 && after.CPA > 0 {
		outcome.CPAChangePct = (before.CPA - after.CPA) / before.CPA
	}

	if after.Conversions < cfg.MinAfterConversions {
		outcome.Verdict = VerdictInsufficientData
		return outcome
	}

	switch {
	case outcome.CPAChangePct > cfg.SignificanceBandPct:
		outcome.Verdict = VerdictImproved
	case outcome.CPAChangePct < -cfg.SignificanceBandPct:
		outcome.Verdict = VerdictDeclined
	default:
		outcome.Verdict = VerdictNeutral
	}
	return outcome
}

func measurementConfidence(conversions int64, cfg OutcomeConfig) confidence.Level {
	switch {
	case conversions >= cfg.ConversionsHi:
		return confidence.High
	case conversions >= cfg.ConversionsMed:
		return confidence.Medium
	case conversions >= cfg.ConversionsLow:
		return confidence.Low
	default:
		return confidence.Insufficient
	}
}
