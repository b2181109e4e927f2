package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"adlens/domain/core"
	"adlens/domain/extraction"
	"adlens/ports"

	"github.com/jmoiron/sqlx"
)

// ExtractionRepositoryImpl implements ExtractionRepository for PostgreSQL
type ExtractionRepositoryImpl struct {
	db *sqlx.DB
}

// NewExtractionRepository creates a new PostgreSQL extraction repository
func NewExtractionRepository(db *sqlx.DB) ports.ExtractionRepository {
	return &ExtractionRepositoryImpl{db: db}
}

// Get returns the extraction state for a creative
func (r *ExtractionRepositoryImpl) Get(ctx context.Context, creativeID core.CreativeID) (*extraction.State, error) {
	var state extraction.State
	var extractedJSON, missingJSON []byte

	err := r.db.QueryRowContext(ctx, `
		SELECT creative_id, status, extracted, missing, retry_count, max_retries,
		       requested_at, updated_at, version
		FROM extraction_states
		WHERE creative_id = $1
	`, creativeID).Scan(
		&state.CreativeID, &state.Status, &extractedJSON, &missingJSON,
		&state.RetryCount, &state.MaxRetries,
		&state.RequestedAt, &state.UpdatedAt, &state.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrExtractionNotFound
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(extractedJSON, &state.Extracted)
	json.Unmarshal(missingJSON, &state.Missing)
	return &state, nil
}

// Create inserts a fresh pending state
func (r *ExtractionRepositoryImpl) Create(ctx context.Context, state *extraction.State) error {
	extractedJSON, _ := json.Marshal(state.Extracted)
	missingJSON, _ := json.Marshal(state.Missing)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO extraction_states (
			creative_id, status, extracted, missing, retry_count, max_retries,
			requested_at, updated_at, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1)
	`, state.CreativeID, state.Status, extractedJSON, missingJSON,
		state.RetryCount, state.MaxRetries, state.RequestedAt, state.UpdatedAt)
	if err == nil {
		state.Version = 1
	}
	return err
}

// Save updates the state if expectedVersion still matches the stored row.
// A stale version returns core.ErrVersionConflict so concurrent retries
// cannot double-increment the retry counter.
func (r *ExtractionRepositoryImpl) Save(ctx context.Context, state *extraction.State, expectedVersion int) error {
	extractedJSON, _ := json.Marshal(state.Extracted)
	missingJSON, _ := json.Marshal(state.Missing)

	result, err := r.db.ExecContext(ctx, `
		UPDATE extraction_states SET
			status = $2, extracted = $3, missing = $4, retry_count = $5,
			updated_at = $6, version = version + 1
		WHERE creative_id = $1 AND version = $7
	`, state.CreativeID, state.Status, extractedJSON, missingJSON,
		state.RetryCount, state.UpdatedAt, expectedVersion)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrVersionConflict
	}
	state.Version = expectedVersion + 1
	return nil
}
