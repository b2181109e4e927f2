package recommendation

import (
	"adlens/domain/confidence"
	"adlens/domain/core"
)

// SourceSystem tags which analysis subsystem produced a recommendation.
type SourceSystem string

const (
	SourceStructure  SourceSystem = "structure"  // Delivery-side structural analysis
	SourceNarrative  SourceSystem = "narrative"  // Message/checklist analysis
	SourceConversion SourceSystem = "conversion" // Funnel analysis
)

// Type is the closed enum of recommendation types, grouped by source system.
type Type string

const (
	// Structure/Delivery
	TypeShortenHook       Type = "shorten_hook"
	TypeTightenPacing     Type = "tighten_pacing"
	TypeFixAspectRatio    Type = "fix_aspect_ratio"
	TypeAddCaptions       Type = "add_captions"
	TypeRaiseLoudness     Type = "raise_loudness"
	TypeFrontloadMotion   Type = "frontload_motion"
	TypeTrimDuration      Type = "trim_duration"

	// Narrative/Message
	TypeClarifyCTA        Type = "clarify_cta"
	TypeEarlierValueProp  Type = "earlier_value_prop"
	TypeAddProof          Type = "add_proof"
	TypeShowPricing       Type = "show_pricing"
	TypeAddGuarantee      Type = "add_guarantee"
	TypeAlignLandingPage  Type = "align_landing_page"
	TypeSharpenOffer      Type = "sharpen_offer"

	// Conversion/Funnel
	TypeRefreshAudience   Type = "refresh_audience"
	TypeRotateCreative    Type = "rotate_creative"
	TypeFixTracking       Type = "fix_tracking"
	TypeRevertPageChange  Type = "revert_page_change"
	TypeNarrowAttribution Type = "narrow_attribution"
)

// Types lists every known recommendation type with its source system.
var Types = map[Type]SourceSystem{
	TypeShortenHook:       SourceStructure,
	TypeTightenPacing:     SourceStructure,
	TypeFixAspectRatio:    SourceStructure,
	TypeAddCaptions:       SourceStructure,
	TypeRaiseLoudness:     SourceStructure,
	TypeFrontloadMotion:   SourceStructure,
	TypeTrimDuration:      SourceStructure,
	TypeClarifyCTA:        SourceNarrative,
	TypeEarlierValueProp:  SourceNarrative,
	TypeAddProof:          SourceNarrative,
	TypeShowPricing:       SourceNarrative,
	TypeAddGuarantee:      SourceNarrative,
	TypeAlignLandingPage:  SourceNarrative,
	TypeSharpenOffer:      SourceNarrative,
	TypeRefreshAudience:   SourceConversion,
	TypeRotateCreative:    SourceConversion,
	TypeFixTracking:       SourceConversion,
	TypeRevertPageChange:  SourceConversion,
	TypeNarrowAttribution: SourceConversion,
}

// Status is the recommendation lifecycle state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusFollowed Status = "followed"
	StatusIgnored  Status = "ignored"
)

// OutcomeVerdict is the measured result of a followed recommendation.
type OutcomeVerdict string

const (
	VerdictImproved         OutcomeVerdict = "improved"
	VerdictNeutral          OutcomeVerdict = "neutral"
	VerdictDeclined         OutcomeVerdict = "declined"
	VerdictInsufficientData OutcomeVerdict = "insufficient_data"
)

// Draft is an unvalidated recommendation proposal. Every field that makes a
// recommendation actionable is required: a quantified target, a named
// metric, a bounded run duration.
type Draft struct {
	Source          SourceSystem     `json:"source"`
	Type            Type             `json:"type"`
	WhatToChange    string           `json:"what_to_change"`
	TargetRange     string           `json:"target_range"`
	ObservableGap   string           `json:"observable_gap"`
	MetricToWatch   string           `json:"metric_to_watch"`
	RunDurationDays int              `json:"run_duration_days"`
	Confidence      confidence.Level `json:"confidence"`
}

// Recommendation is a validated, stored recommendation with its lifecycle.
type Recommendation struct {
	ID         core.RecommendationID `json:"id" db:"id"`
	AccountID  core.AccountID        `json:"account_id" db:"account_id"`
	CreativeID core.CreativeID       `json:"creative_id" db:"creative_id"`

	Source          SourceSystem     `json:"source" db:"source"`
	Type            Type             `json:"type" db:"type"`
	WhatToChange    string           `json:"what_to_change" db:"what_to_change"`
	TargetRange     string           `json:"target_range" db:"target_range"`
	ObservableGap   string           `json:"observable_gap" db:"observable_gap"`
	MetricToWatch   string           `json:"metric_to_watch" db:"metric_to_watch"`
	RunDurationDays int              `json:"run_duration_days" db:"run_duration_days"`
	Confidence      confidence.Level `json:"confidence" db:"confidence"`

	Status Status `json:"status" db:"status"`
	// SuccessorCreativeID optionally links the creative produced by
	// following the recommendation.
	SuccessorCreativeID *core.CreativeID `json:"successor_creative_id,omitempty" db:"successor_creative_id"`
	Outcome             *Outcome         `json:"outcome,omitempty"`

	CreatedAt core.Timestamp `json:"created_at" db:"created_at"`
	UpdatedAt core.Timestamp `json:"updated_at" db:"updated_at"`
}

// PeriodMetrics is a before/after snapshot used for outcome measurement.
type PeriodMetrics struct {
	Spend       float64 `json:"spend"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
	CPA         float64 `json:"cpa"`
}

// Outcome is the one-time measurement of a followed recommendation.
type Outcome struct {
	Verdict          OutcomeVerdict   `json:"verdict" db:"verdict"`
	CPAChangePct     float64          `json:"cpa_change_pct" db:"cpa_change_pct"`
	Confidence       confidence.Level `json:"confidence" db:"confidence"`
	Before           PeriodMetrics    `json:"before"`
	After            PeriodMetrics    `json:"after"`
	RunDurationDays  int              `json:"run_duration_days" db:"run_duration_days"`
	MeasuredAt       core.Timestamp   `json:"measured_at" db:"measured_at"`
}
