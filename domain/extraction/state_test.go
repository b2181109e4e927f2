package extraction

import (
	"errors"
	"testing"
	"time"

	"adlens/domain/confidence"
	"adlens/domain/core"
)

var now = core.NewTimestamp(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

func allSignals() []string {
	var names []string
	for _, req := range Catalog() {
		names = append(names, req.Name)
	}
	return names
}

func withoutSignals(exclude ...string) []string {
	skip := make(map[string]bool)
	for _, name := range exclude {
		skip[name] = true
	}
	var names []string
	for _, name := range allSignals() {
		if !skip[name] {
			names = append(names, name)
		}
	}
	return names
}

func TestResolve_Complete(t *testing.T) {
	state := NewState(core.CreativeID("cr-1"), now)
	state.Resolve(allSignals(), nil, now)

	if state.Status != StatusComplete {
		t.Errorf("status = %s, want complete", state.Status)
	}
	if len(state.Missing) != 0 {
		t.Errorf("missing = %v, want empty", state.Missing)
	}
}

func TestResolve_PartialWhenOptionalMissing(t *testing.T) {
	state := NewState(core.CreativeID("cr-1"), now)
	state.Resolve(withoutSignals(SignalHookDensity), nil, now)

	if state.Status != StatusPartial {
		t.Errorf("status = %s, want partial", state.Status)
	}
}

func TestResolve_RequiredMissing(t *testing.T) {
	state := NewState(core.CreativeID("cr-1"), now)

	// No extractor error: the record is still pending, never partial
	state.Resolve(withoutSignals(SignalDuration), nil, now)
	if state.Status != StatusPending {
		t.Errorf("status = %s, want pending when required signal missing without error", state.Status)
	}

	// An extraction error with a required signal missing means failed
	state.Resolve(withoutSignals(SignalDuration), []string{SignalDuration}, now)
	if state.Status != StatusFailed {
		t.Errorf("status = %s, want failed", state.Status)
	}
}

func TestRetry_BoundedCounter(t *testing.T) {
	state := NewState(core.CreativeID("cr-1"), now)

	for i := 0; i < DefaultMaxRetries; i++ {
		state.Status = StatusFailed
		if err := state.Retry(now); err != nil {
			t.Fatalf("retry %d failed unexpectedly: %v", i+1, err)
		}
		if state.Status != StatusPending {
			t.Fatalf("retry %d: status = %s, want pending", i+1, state.Status)
		}
	}

	state.Status = StatusFailed
	err := state.Retry(now)
	if !errors.Is(err, core.ErrRetryExhausted) {
		t.Errorf("expected terminal retry-exhausted error, got %v", err)
	}
	if state.RetryCount != DefaultMaxRetries {
		t.Errorf("retry count = %d, must not pass the maximum %d", state.RetryCount, DefaultMaxRetries)
	}
}

func TestRetry_OnlyFromFailed(t *testing.T) {
	state := NewState(core.CreativeID("cr-1"), now)
	state.Status = StatusComplete

	if err := state.Retry(now); !errors.Is(err, core.ErrNotRetryable) {
		t.Errorf("expected not-retryable error for complete state, got %v", err)
	}
}

func TestCanScoreWithExtraction(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		missing     []string
		base        confidence.Level
		wantAllowed bool
		wantCeiling confidence.Level
	}{
		{"pending blocks", StatusPending, nil, confidence.High, false, confidence.Insufficient},
		{"failed blocks", StatusFailed, nil, confidence.High, false, confidence.Insufficient},
		{"complete passes at high", StatusComplete, nil, confidence.High, true, confidence.High},
		{
			// hook_density(15) + cut_frequency(10) + text_coverage(10) = 35
			"partial heavy caps low",
			StatusPartial,
			[]string{SignalHookDensity, SignalCutFrequency, SignalTextCoverage},
			confidence.High, true, confidence.Low,
		},
		{
			// hook_density alone = 15, high base drops to medium
			"partial mid drops high to medium",
			StatusPartial,
			[]string{SignalHookDensity},
			confidence.High, true, confidence.Medium,
		},
		{
			// same weight but medium base is unchanged
			"partial mid leaves medium base",
			StatusPartial,
			[]string{SignalHookDensity},
			confidence.Medium, true, confidence.Medium,
		},
		{
			// loudness_lufs = 5, below every boundary
			"partial light unchanged",
			StatusPartial,
			[]string{SignalLoudnessLUFS},
			confidence.High, true, confidence.High,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState(core.CreativeID("cr-1"), now)
			state.Status = tt.status
			state.Missing = tt.missing

			decision := CanScoreWithExtraction(state, tt.base)
			if decision.Allowed != tt.wantAllowed {
				t.Errorf("allowed = %v, want %v", decision.Allowed, tt.wantAllowed)
			}
			if decision.Ceiling != tt.wantCeiling {
				t.Errorf("ceiling = %s, want %s", decision.Ceiling, tt.wantCeiling)
			}
		})
	}
}
