package extraction

import (
	"adlens/domain/confidence"
)

// ScoringDecision reconciles extraction completeness with gate output.
type ScoringDecision struct {
	Allowed bool             `json:"allowed"`
	Ceiling confidence.Level `json:"ceiling"`
	Reason  string           `json:"reason,omitempty"`
}

// Weight-sum boundaries for the partial-extraction confidence ceiling.
const (
	weightLowCeiling    = 30
	weightMediumCeiling = 15
)

// CanScoreWithExtraction decides whether structural scoring may proceed for
// a creative given its extraction state, and the confidence ceiling imposed
// on any score that is produced. Pending and failed extractions block
// scoring outright; partial extractions cap confidence by the summed weight
// of the missing optional signals.
func CanScoreWithExtraction(state *State, base confidence.Level) ScoringDecision {
	switch state.Status {
	case StatusPending:
		return ScoringDecision{Allowed: false, Ceiling: confidence.Insufficient,
			Reason: "signal extraction still in progress"}
	case StatusFailed:
		return ScoringDecision{Allowed: false, Ceiling: confidence.Insufficient,
			Reason: "signal extraction failed"}
	case StatusPartial:
		return ScoringDecision{Allowed: true, Ceiling: partialCeiling(state.Missing, base)}
	default:
		return ScoringDecision{Allowed: true, Ceiling: confidence.High}
	}
}

// partialCeiling maps the summed weight of missing optional signals to a
// confidence ceiling: >=30 caps at low, 15-29 pulls a high base down to
// medium, anything less leaves the base unchanged.
func partialCeiling(missing []string, base confidence.Level) confidence.Level {
	weight := missingWeight(missing)
	switch {
	case weight >= weightLowCeiling:
		return confidence.Clamp(base, confidence.Low)
	case weight >= weightMediumCeiling && base == confidence.High:
		return confidence.Medium
	default:
		return base
	}
}
