package ports

import (
	"context"

	"adlens/domain/core"
	"adlens/domain/extraction"
)

// ExtractionRepository persists per-creative extraction state. Save enforces
// an optimistic version check so concurrent retries cannot double-increment
// the retry counter; a stale write returns core.ErrVersionConflict.
type ExtractionRepository interface {
	// Get returns the extraction state for a creative
	Get(ctx context.Context, creativeID core.CreativeID) (*extraction.State, error)

	// Create inserts a fresh pending state
	Create(ctx context.Context, state *extraction.State) error

	// Save updates the state if expectedVersion still matches the stored row
	Save(ctx context.Context, state *extraction.State, expectedVersion int) error
}
