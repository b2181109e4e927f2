package gates

import (
	"time"

	"adlens/domain/confidence"
	"adlens/domain/core"
)

// GateInput is an immutable per-evaluation snapshot of the raw facts about
// one creative. It is produced fresh for every evaluation and never mutated.
type GateInput struct {
	CreativeID  core.CreativeID `json:"creative_id"`
	FirstSeenAt core.Timestamp  `json:"first_seen_at"`
	TotalSpend  float64         `json:"total_spend"`
	Impressions int64           `json:"impressions"`
	Conversions int64           `json:"conversions"`

	// Optional data-quality facts. Nil means unknown, which takes the
	// conservative-default path, not the average case.
	IOSTrafficPct        *float64 `json:"ios_traffic_pct,omitempty"`
	ModeledConversionPct *float64 `json:"modeled_conversion_pct,omitempty"`

	// Attribution windows, e.g. "7d_click". Nil means undeclared.
	UserAttributionWindow     *string `json:"user_attribution_window,omitempty"`
	PlatformAttributionWindow *string `json:"platform_attribution_window,omitempty"`
}

// ThresholdGate records a pass/fail check with the distance left to the
// threshold, so the UI can show "keep gathering data" progress.
type ThresholdGate struct {
	Passed    bool    `json:"passed"`
	Remaining float64 `json:"remaining"`
}

// VolumeLevel grades a raw volume figure against a tiered ladder.
type VolumeLevel struct {
	Level         confidence.Level `json:"level"`
	Current       int64            `json:"current"`
	NextThreshold int64            `json:"next_threshold,omitempty"`
}

// GateStatus is the evaluator's full output. It is derived purely from a
// GateInput and has no independent lifecycle.
type GateStatus struct {
	Age         ThresholdGate `json:"age"`
	Spend       ThresholdGate `json:"spend"`
	Impressions VolumeLevel   `json:"impressions"`
	Conversions VolumeLevel   `json:"conversions"`

	IOSPenalty         bool `json:"ios_penalty"`
	ModeledPenalty     bool `json:"modeled_penalty"`
	AttributionBlocked bool `json:"attribution_blocked"`

	DeliveryConfidenceMax   confidence.Level `json:"delivery_confidence_max"`
	ConversionConfidenceMax confidence.Level `json:"conversion_confidence_max"`

	CanScoreDelivery       bool `json:"can_score_delivery"`
	CanScoreConversion     bool `json:"can_score_conversion"`
	CanShowRecommendations bool `json:"can_show_recommendations"`

	// Messages follow evaluation order: age, spend, impressions,
	// conversions, iOS, modeled, attribution.
	Messages []string `json:"messages"`
}

// AgeRemaining returns the hours left until the age gate opens, rounded up.
func AgeRemaining(firstSeen core.Timestamp, minAge time.Duration, now time.Time) int {
	elapsed := now.Sub(firstSeen.Time())
	if elapsed >= minAge {
		return 0
	}
	remaining := minAge - elapsed
	hours := int(remaining / time.Hour)
	if remaining%time.Hour > 0 {
		hours++
	}
	return hours
}
