package ports

import (
	"context"

	"adlens/domain/core"
	"adlens/domain/recommendation"
)

// RecommendationRepository stores validated recommendations keyed by
// account and id.
type RecommendationRepository interface {
	// Save upserts a recommendation
	Save(ctx context.Context, rec *recommendation.Recommendation) error

	// Get returns one recommendation by account and id
	Get(ctx context.Context, accountID core.AccountID, id core.RecommendationID) (*recommendation.Recommendation, error)

	// ListByAccount returns an account's recommendations, newest first
	ListByAccount(ctx context.Context, accountID core.AccountID, limit int) ([]*recommendation.Recommendation, error)

	// ListByStatus returns an account's recommendations in one lifecycle state
	ListByStatus(ctx context.Context, accountID core.AccountID, status recommendation.Status) ([]*recommendation.Recommendation, error)
}
