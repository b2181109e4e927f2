package activation

import (
	"adlens/domain/core"
)

// DeliveryHealth grades how well a creative is being delivered.
type DeliveryHealth string

const (
	DeliveryHealthy      DeliveryHealth = "healthy"
	DeliveryPoor         DeliveryHealth = "poor"
	DeliveryInsufficient DeliveryHealth = "insufficient"
)

// ConversionHealth grades whether a creative converts acceptably.
type ConversionHealth string

const (
	ConversionGood         ConversionHealth = "good"
	ConversionBad          ConversionHealth = "bad"
	ConversionInsufficient ConversionHealth = "insufficient"
)

// EligibilityReason is the closed set of reasons a narrative analysis is or
// is not allowed to run.
type EligibilityReason string

const (
	ReasonEligible                EligibilityReason = "eligible"
	ReasonDeliveryUnhealthy       EligibilityReason = "delivery_unhealthy"
	ReasonConversionHealthy       EligibilityReason = "conversion_healthy"
	ReasonInsufficientData        EligibilityReason = "insufficient_data"
	ReasonInsufficientConversions EligibilityReason = "insufficient_conversions"
)

// NarrativeEligibility is computed fresh for each check and never stored.
type NarrativeEligibility struct {
	Eligible bool              `json:"eligible"`
	Reason   EligibilityReason `json:"reason"`
}

// ContextChange records an observable difference in the conversion context
// between two points in time (landing page, offer terms). Any detected
// change exonerates the creative for the affected period.
type ContextChange struct {
	Field       string         `json:"field"` // landing_page_url, discount, price, guarantee
	PreviousHash core.Hash     `json:"previous_hash,omitempty"`
	CurrentHash  core.Hash     `json:"current_hash,omitempty"`
	Previous    string         `json:"previous,omitempty"`
	Current     string         `json:"current,omitempty"`
	DetectedAt  core.Timestamp `json:"detected_at"`
}

// TrackingAnomaly records a spend-vs-conversion divergence that points at a
// broken pixel or API outage rather than a creative problem.
type TrackingAnomaly struct {
	Detected        bool           `json:"detected"`
	SpendDuring     float64        `json:"spend_during"`
	ConversionsSeen int64          `json:"conversions_seen"`
	WindowDays      int            `json:"window_days"`
	DetectedAt      core.Timestamp `json:"detected_at"`
}

// FatigueDiagnosis records audience-fatigue drift indicators over a
// comparison window. Each indicator is a fractional change, with positive
// meaning the metric rose.
type FatigueDiagnosis struct {
	Detected       bool    `json:"detected"`
	FrequencyDrift float64 `json:"frequency_drift"`
	CTRDrift       float64 `json:"ctr_drift"`
	CPMDrift       float64 `json:"cpm_drift"`
	IndicatorCount int     `json:"indicator_count"`
}

// PrimaryIssue tags the single dominant cause of a conversion problem.
type PrimaryIssue string

const (
	IssueTracking       PrimaryIssue = "tracking"
	IssueExternalChange PrimaryIssue = "external_change"
	IssueFatigue        PrimaryIssue = "audience_fatigue"
	IssueAttributionGap PrimaryIssue = "attribution_gap"
	IssueNone           PrimaryIssue = "none"
)

// ConversionDiagnosis is the authoritative answer to "may we blame the
// creative for this conversion problem?".
type ConversionDiagnosis struct {
	PrimaryIssue     PrimaryIssue `json:"primary_issue"`
	CanBlameCreative bool         `json:"can_blame_creative"`
	Detail           string       `json:"detail,omitempty"`
}
