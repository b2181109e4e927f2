package recommendation

import (
	"fmt"

	"adlens/domain/core"
)

// NewFromDraft promotes a validated draft to a stored recommendation. The
// caller must have run ValidateDraft first; the round-trip rule is that an
// invalid draft is never persisted.
func NewFromDraft(draft Draft, accountID core.AccountID, creativeID core.CreativeID, now core.Timestamp) *Recommendation {
	return &Recommendation{
		ID:              core.RecommendationID(core.NewID()),
		AccountID:       accountID,
		CreativeID:      creativeID,
		Source:          draft.Source,
		Type:            draft.Type,
		WhatToChange:    draft.WhatToChange,
		TargetRange:     draft.TargetRange,
		ObservableGap:   draft.ObservableGap,
		MetricToWatch:   draft.MetricToWatch,
		RunDurationDays: draft.RunDurationDays,
		Confidence:      draft.Confidence,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// MarkFollowed transitions pending -> followed, optionally linking the
// successor creative produced by acting on the recommendation.
func (r *Recommendation) MarkFollowed(successor *core.CreativeID, now core.Timestamp) error {
	if r.Status != StatusPending {
		return fmt.Errorf("%w: %s -> followed", core.ErrInvalidTransition, r.Status)
	}
	r.Status = StatusFollowed
	r.SuccessorCreativeID = successor
	r.UpdatedAt = now
	return nil
}

// MarkIgnored transitions pending -> ignored.
func (r *Recommendation) MarkIgnored(now core.Timestamp) error {
	if r.Status != StatusPending {
		return fmt.Errorf("%w: %s -> ignored", core.ErrInvalidTransition, r.Status)
	}
	r.Status = StatusIgnored
	r.UpdatedAt = now
	return nil
}

// RecordOutcome attaches a measured outcome to a followed recommendation.
// An outcome can be recorded exactly once; re-measuring is an error, not a
// silent overwrite.
func (r *Recommendation) RecordOutcome(outcome Outcome, now core.Timestamp) error {
	if r.Status != StatusFollowed {
		return fmt.Errorf("%w: outcome requires followed status, have %s", core.ErrInvalidTransition, r.Status)
	}
	if r.Outcome != nil {
		return core.ErrAlreadyMeasured
	}
	r.Outcome = &outcome
	r.UpdatedAt = now
	return nil
}

// IsTerminal reports whether the recommendation has reached a measured end
// state usable for meta-learning.
func (r *Recommendation) IsTerminal() bool {
	return r.Status == StatusFollowed && r.Outcome != nil
}
