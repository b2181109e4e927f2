package app

import (
	"context"
	"fmt"

	"adlens/domain/core"
	"adlens/domain/narrative"
	"adlens/internal"
	"adlens/ports"
)

// NarrativeService runs the LLM-assisted checklist drafting flow. The model
// response crosses into the domain exactly once, through the allow-list
// parser; anything outside the observable-facts contract is rejected whole.
type NarrativeService struct {
	generator ports.ChecklistGenerator
	clock     ports.Clock
	logger    *internal.Logger
}

// NewNarrativeService creates a narrative service
func NewNarrativeService(generator ports.ChecklistGenerator, clock ports.Clock, logger *internal.Logger) *NarrativeService {
	return &NarrativeService{generator: generator, clock: clock, logger: logger}
}

// DraftChecklist asks the model for a checklist draft and validates it. The
// returned checklist is always LLM-assisted and unconfirmed, so its
// effective confidence stays clamped to low until a user confirms it.
func (s *NarrativeService) DraftChecklist(ctx context.Context, creativeID core.CreativeID, transcript string) (*narrative.Checklist, error) {
	raw, err := s.generator.GenerateDraft(ctx, creativeID, transcript)
	if err != nil {
		return nil, fmt.Errorf("checklist generation for creative %s failed: %w", creativeID, err)
	}

	checklist, err := narrative.ParseDraft(creativeID, raw, core.NewTimestamp(s.clock.Now()))
	if err != nil {
		s.logger.Warn("checklist draft for creative %s rejected: %v", creativeID, err)
		return nil, err
	}
	return checklist, nil
}

// ConfirmChecklist records the user's review, lifting the LLM confidence
// clamp.
func (s *NarrativeService) ConfirmChecklist(checklist *narrative.Checklist) {
	checklist.Confirm(core.NewTimestamp(s.clock.Now()))
}
