package app

import (
	"context"
	"errors"
	"fmt"

	"adlens/domain/core"
	"adlens/domain/extraction"
	"adlens/internal"
	"adlens/ports"
)

// ExtractionService drives the per-creative extraction lifecycle against the
// upstream signal extractor.
type ExtractionService struct {
	extractor   ports.SignalExtractor
	extractions ports.ExtractionRepository
	clock       ports.Clock
	logger      *internal.Logger
}

// NewExtractionService creates an extraction service
func NewExtractionService(extractor ports.SignalExtractor, extractions ports.ExtractionRepository, clock ports.Clock, logger *internal.Logger) *ExtractionService {
	return &ExtractionService{
		extractor:   extractor,
		extractions: extractions,
		clock:       clock,
		logger:      logger,
	}
}

// Request creates a pending record and runs extraction for a creative. A
// creative already on record is returned as-is; extraction is never run
// twice from a Request.
func (s *ExtractionService) Request(ctx context.Context, creativeID core.CreativeID) (*extraction.State, error) {
	now := core.NewTimestamp(s.clock.Now())

	existing, err := s.extractions.Get(ctx, creativeID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, core.ErrExtractionNotFound) {
		return nil, fmt.Errorf("extraction lookup for creative %s failed: %w", creativeID, err)
	}

	state := extraction.NewState(creativeID, now)
	if err := s.extractions.Create(ctx, state); err != nil {
		return nil, fmt.Errorf("extraction create for creative %s failed: %w", creativeID, err)
	}
	return s.run(ctx, state)
}

// Retry re-runs extraction for a failed creative. The retry budget lives on
// the record; exhaustion surfaces core.ErrRetryExhausted, which callers
// present as the terminal contact-support condition.
func (s *ExtractionService) Retry(ctx context.Context, creativeID core.CreativeID) (*extraction.State, error) {
	now := core.NewTimestamp(s.clock.Now())

	state, err := s.extractions.Get(ctx, creativeID)
	if err != nil {
		return nil, fmt.Errorf("extraction lookup for creative %s failed: %w", creativeID, err)
	}

	expectedVersion := state.Version
	if err := state.Retry(now); err != nil {
		return nil, err
	}
	// The version check makes concurrent retries race safely: the loser
	// gets a conflict instead of double-incrementing the retry counter.
	if err := s.extractions.Save(ctx, state, expectedVersion); err != nil {
		return nil, err
	}
	return s.run(ctx, state)
}

// Get returns the extraction state for a creative.
func (s *ExtractionService) Get(ctx context.Context, creativeID core.CreativeID) (*extraction.State, error) {
	return s.extractions.Get(ctx, creativeID)
}

func (s *ExtractionService) run(ctx context.Context, state *extraction.State) (*extraction.State, error) {
	result, err := s.extractor.Extract(ctx, state.CreativeID)
	now := core.NewTimestamp(s.clock.Now())
	if err != nil {
		s.logger.Warn("signal extraction for creative %s errored: %v", state.CreativeID, err)
		// An extractor error resolves as a full failure so the retry
		// budget, not the error, decides what happens next.
		result = &ports.ExtractionResult{FailedSignals: extraction.RequiredSignals()}
	}

	expectedVersion := state.Version
	state.Resolve(result.ExtractedSignals, result.FailedSignals, now)
	if err := s.extractions.Save(ctx, state, expectedVersion); err != nil {
		return nil, fmt.Errorf("extraction save for creative %s failed: %w", state.CreativeID, err)
	}

	s.logger.Info("extraction for creative %s resolved to %s (%d missing)",
		state.CreativeID, state.Status, len(state.Missing))
	return state, nil
}
