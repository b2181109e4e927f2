package app

import (
	"context"
	"fmt"

	"adlens/domain/core"
	"adlens/domain/learning"
	"adlens/domain/recommendation"
	"adlens/internal"
	"adlens/internal/config"
	"adlens/internal/errors"
	"adlens/ports"
)

// RecommendationService manages the recommendation lifecycle: validated
// creation, status transitions, one-time outcome measurement and
// learnings-adjusted ranking.
type RecommendationService struct {
	recommendations ports.RecommendationRepository
	clock           ports.Clock
	engine          config.EngineConfig
	logger          *internal.Logger
}

// NewRecommendationService creates a recommendation service
func NewRecommendationService(
	recommendations ports.RecommendationRepository,
	clock ports.Clock,
	engine config.EngineConfig,
	logger *internal.Logger,
) *RecommendationService {
	return &RecommendationService{
		recommendations: recommendations,
		clock:           clock,
		engine:          engine,
		logger:          logger,
	}
}

// Create validates the draft and stores it. The round-trip rule holds here:
// an invalid draft is rejected with the full violation list and nothing is
// persisted.
func (s *RecommendationService) Create(ctx context.Context, accountID core.AccountID, creativeID core.CreativeID, draft recommendation.Draft) (*recommendation.Recommendation, error) {
	result := recommendation.ValidateDraft(draft, s.engine.Validator)
	if !result.Valid {
		return nil, errors.ValidationError(result.Errors)
	}

	now := core.NewTimestamp(s.clock.Now())
	rec := recommendation.NewFromDraft(draft, accountID, creativeID, now)
	if err := s.recommendations.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("recommendation save failed: %w", err)
	}

	s.logger.Info("created recommendation %s (%s) for creative %s", rec.ID, rec.Type, creativeID)
	return rec, nil
}

// MarkFollowed transitions a pending recommendation to followed.
func (s *RecommendationService) MarkFollowed(ctx context.Context, accountID core.AccountID, id core.RecommendationID, successor *core.CreativeID) (*recommendation.Recommendation, error) {
	return s.transition(ctx, accountID, id, func(rec *recommendation.Recommendation, now core.Timestamp) error {
		return rec.MarkFollowed(successor, now)
	})
}

// MarkIgnored transitions a pending recommendation to ignored.
func (s *RecommendationService) MarkIgnored(ctx context.Context, accountID core.AccountID, id core.RecommendationID) (*recommendation.Recommendation, error) {
	return s.transition(ctx, accountID, id, func(rec *recommendation.Recommendation, now core.Timestamp) error {
		return rec.MarkIgnored(now)
	})
}

// MeasureOutcome measures a followed recommendation exactly once, comparing
// the periods before and after it was followed.
func (s *RecommendationService) MeasureOutcome(ctx context.Context, accountID core.AccountID, id core.RecommendationID, before, after recommendation.PeriodMetrics) (*recommendation.Recommendation, error) {
	return s.transition(ctx, accountID, id, func(rec *recommendation.Recommendation, now core.Timestamp) error {
		outcome := recommendation.MeasureOutcome(before, after, rec.RunDurationDays, s.engine.Outcome, now)
		return rec.RecordOutcome(outcome, now)
	})
}

// Get returns one recommendation.
func (s *RecommendationService) Get(ctx context.Context, accountID core.AccountID, id core.RecommendationID) (*recommendation.Recommendation, error) {
	return s.recommendations.Get(ctx, accountID, id)
}

// List returns an account's recommendations, newest first.
func (s *RecommendationService) List(ctx context.Context, accountID core.AccountID, limit int) ([]*recommendation.Recommendation, error) {
	return s.recommendations.ListByAccount(ctx, accountID, limit)
}

// Learnings aggregates the account's terminal recommendations into per-type
// patterns.
func (s *RecommendationService) Learnings(ctx context.Context, accountID core.AccountID) (learning.AccountLearnings, error) {
	all, err := s.recommendations.ListByAccount(ctx, accountID, 0)
	if err != nil {
		return learning.AccountLearnings{}, fmt.Errorf("recommendation list failed: %w", err)
	}
	return learning.ComputeAccountLearnings(accountID, all, s.clock.Now()), nil
}

// ListRanked returns the account's pending recommendations ordered by
// learnings-adjusted confidence.
func (s *RecommendationService) ListRanked(ctx context.Context, accountID core.AccountID) ([]learning.RankedRecommendation, error) {
	pending, err := s.recommendations.ListByStatus(ctx, accountID, recommendation.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("pending recommendation list failed: %w", err)
	}
	learnings, err := s.Learnings(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return learning.RankRecommendations(pending, learnings, s.engine.Learning), nil
}

func (s *RecommendationService) transition(ctx context.Context, accountID core.AccountID, id core.RecommendationID, apply func(*recommendation.Recommendation, core.Timestamp) error) (*recommendation.Recommendation, error) {
	rec, err := s.recommendations.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}

	now := core.NewTimestamp(s.clock.Now())
	if err := apply(rec, now); err != nil {
		return nil, err
	}
	if err := s.recommendations.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("recommendation save failed: %w", err)
	}
	return rec, nil
}
