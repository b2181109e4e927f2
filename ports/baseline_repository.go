package ports

import (
	"context"

	"adlens/domain/baseline"
	"adlens/domain/core"
)

// BaselineRepository stores segmented baselines keyed by account and
// segment. Upsert replaces the whole row; baselines are never partially
// mutated.
type BaselineRepository interface {
	// Upsert replaces the baseline for (account, segment)
	Upsert(ctx context.Context, base *baseline.AccountBaseline) error

	// Get returns the baseline for one segment
	Get(ctx context.Context, accountID core.AccountID, segment baseline.Segment) (*baseline.AccountBaseline, error)

	// ListByAccount returns all of an account's segment baselines
	ListByAccount(ctx context.Context, accountID core.AccountID) ([]*baseline.AccountBaseline, error)
}
