package baseline

import (
	"adlens/domain/confidence"
)

// EfficiencyConfig defines the efficiency scoring thresholds. The conversion
// ladder mirrors the gate evaluator's 10/30/100 steps.
type EfficiencyConfig struct {
	ConversionsLow int64 `json:"conversions_low"`
	ConversionsMed int64 `json:"conversions_med"`
	ConversionsHi  int64 `json:"conversions_hi"`
}

// DefaultEfficiencyConfig returns the production efficiency thresholds
func DefaultEfficiencyConfig() EfficiencyConfig {
	return EfficiencyConfig{ConversionsLow: 10, ConversionsMed: 30, ConversionsHi: 100}
}

// EfficiencyResult scores current performance relative to the segment
// baseline. Score 50 is parity; values diverge symmetrically above and
// below it.
type EfficiencyResult struct {
	CanScore   bool             `json:"can_score"`
	Score      float64          `json:"score"`
	CPARatio   float64          `json:"cpa_ratio"`
	Confidence confidence.Level `json:"confidence"`
	Reason     string           `json:"reason,omitempty"`
}

// ComputeEfficiencyScore scores a current period against the baseline.
// Scoring is blocked entirely when the baseline quality is none; it runs
// low-pinned when quality is low; otherwise final confidence follows the
// current period's conversion volume, not the baseline's.
func ComputeEfficiencyScore(currentCPA, currentROAS float64, currentConversions int64, base AccountBaseline, cfg EfficiencyConfig) EfficiencyResult {
	if base.Quality == QualityNone {
		return EfficiencyResult{
			CanScore:   false,
			Confidence: confidence.Insufficient,
			Reason:     "baseline has under 10 conversions; keep gathering data",
		}
	}
	if currentCPA <= 0 {
		return EfficiencyResult{
			CanScore:   false,
			Confidence: confidence.Insufficient,
			Reason:     "no current CPA to score",
		}
	}

	ratio := base.AvgCPA / currentCPA
	score := 50 * ratio
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	level := confidence.Low
	if base.Quality != QualityLow {
		level = gradeCurrentVolume(currentConversions, cfg)
	}

	return EfficiencyResult{
		CanScore:   true,
		Score:      score,
		CPARatio:   ratio,
		Confidence: level,
	}
}

func gradeCurrentVolume(conversions int64, cfg EfficiencyConfig) confidence.Level {
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
