package recommendation

import (
	"fmt"
	"strings"
	"unicode"

	"adlens/domain/confidence"
)

// ValidatorConfig defines the specificity requirements for drafts
type ValidatorConfig struct {
	MinWhatToChangeLen  int      `json:"min_what_to_change_len"`
	MinObservableGapLen int      `json:"min_observable_gap_len"`
	MinRunDays          int      `json:"min_run_days"`
	MaxRunDays          int      `json:"max_run_days"`
	VagueTerms          []string `json:"vague_terms"`
	MetricVocabulary    []string `json:"metric_vocabulary"`
}

// DefaultValidatorConfig returns the production validation rules
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MinWhatToChangeLen:  10,
		MinObservableGapLen: 10,
		MinRunDays:          3,
		MaxRunDays:          30,
		VagueTerms:          []string{"stronger", "better", "improve", "optimize", "enhance", "more engaging"},
		MetricVocabulary:    []string{"ctr", "cpa", "roas", "cvr", "cpm", "thumbstop", "hook_rate", "view_rate"},
	}
}

// ValidationResult carries every violated constraint so a caller can fix
// all issues in one pass.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateDraft checks that a recommendation is concrete enough to act on
// and to measure afterwards. All rules are evaluated; any failure returns
// the full list of violations, never just the first.
func ValidateDraft(draft Draft, cfg ValidatorConfig) ValidationResult {
	var errs []string

	if _, ok := Types[draft.Type]; !ok {
		errs = append(errs, fmt.Sprintf("unknown recommendation type %q", draft.Type))
	}

	if len(strings.TrimSpace(draft.WhatToChange)) < cfg.MinWhatToChangeLen {
		errs = append(errs, fmt.Sprintf("whatToChange must be at least %d characters", cfg.MinWhatToChangeLen))
	}
	if term := firstVagueTerm(draft.WhatToChange, cfg.VagueTerms); term != "" {
		errs = append(errs, fmt.Sprintf("whatToChange contains vague term %q; state a concrete delta instead", term))
	}

	if !containsDigit(draft.TargetRange) {
		errs = append(errs, "targetRange must contain a quantified target (at least one digit)")
	}

	if len(strings.TrimSpace(draft.ObservableGap)) < cfg.MinObservableGapLen {
		errs = append(errs, fmt.Sprintf("observableGap must be at least %d characters", cfg.MinObservableGapLen))
	}

	if !containsMetric(draft.MetricToWatch, cfg.MetricVocabulary) {
		errs = append(errs, fmt.Sprintf("metricToWatch must name one of: %s", strings.Join(cfg.MetricVocabulary, ", ")))
	}

	if draft.RunDurationDays < cfg.MinRunDays || draft.RunDurationDays > cfg.MaxRunDays {
		errs = append(errs, fmt.Sprintf("runDurationDays must be between %d and %d", cfg.MinRunDays, cfg.MaxRunDays))
	}

	switch draft.Confidence {
	case confidence.High, confidence.Medium, confidence.Low:
	default:
		errs = append(errs, "confidence must be one of high, medium, low")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func firstVagueTerm(text string, vague []string) string {
	lower := strings.ToLower(text)
	for _, term := range vague {
		if strings.Contains(lower, term) {
			return term
		}
	}
	return ""
}

func containsDigit(text string) bool {
	for _, r := range text {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsMetric(text string, vocabulary []string) bool {
	lower := strings.ToLower(text)
	for _, metric := range vocabulary {
		if strings.Contains(lower, metric) {
			return true
		}
	}
	return false
}
