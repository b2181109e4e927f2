package narrative

import (
	"adlens/domain/confidence"
	"adlens/domain/core"
)

// Checklist is the structured record of observable message facts about one
// creative. Every field is an observation a reviewer could verify by
// watching the ad; interpretive judgments never cross into this type.
type Checklist struct {
	CreativeID core.CreativeID `json:"creative_id" db:"creative_id"`

	HasCTA                 bool     `json:"has_cta"`
	CTAComponents          []string `json:"cta_components"`
	CTATimingSeconds       *float64 `json:"cta_timing_seconds"`
	ValuePropComponents    []string `json:"value_prop_components"`
	ValuePropTimingSeconds *float64 `json:"value_prop_timing_seconds"`
	HasOffer               bool     `json:"has_offer"`
	OfferText              string   `json:"offer_text"`
	OfferTimingSeconds     *float64 `json:"offer_timing_seconds"`
	HasProof               bool     `json:"has_proof"`
	ProofType              string   `json:"proof_type"`
	PricingVisible         bool     `json:"pricing_visible"`
	HasGuarantee           bool     `json:"has_guarantee"`
	GuaranteeText          string   `json:"guarantee_text"`
	AdLPAligned            bool     `json:"ad_lp_aligned"`

	// UserConfirmed is set when a human has reviewed the filled checklist.
	UserConfirmed bool `json:"user_confirmed"`
	// LLMAssisted is set when any field was filled by the language model.
	LLMAssisted bool `json:"llm_assisted"`

	UpdatedAt core.Timestamp `json:"updated_at"`
}

// EffectiveConfidence enforces the checklist trust invariant: an LLM-filled
// checklist that no human has confirmed is never trusted above low, no
// matter what the requested level is.
func (c *Checklist) EffectiveConfidence(requested confidence.Level) confidence.Level {
	if c.LLMAssisted && !c.UserConfirmed {
		return confidence.Clamp(requested, confidence.Low)
	}
	return requested
}

// Confirm marks the checklist as user-reviewed.
func (c *Checklist) Confirm(now core.Timestamp) {
	c.UserConfirmed = true
	c.UpdatedAt = now
}
