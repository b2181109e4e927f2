package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"adlens/domain/core"
	"adlens/domain/recommendation"
	"adlens/ports"

	"github.com/jmoiron/sqlx"
)

// RecommendationRepositoryImpl implements RecommendationRepository for PostgreSQL
type RecommendationRepositoryImpl struct {
	db *sqlx.DB
}

// NewRecommendationRepository creates a new PostgreSQL recommendation repository
func NewRecommendationRepository(db *sqlx.DB) ports.RecommendationRepository {
	return &RecommendationRepositoryImpl{db: db}
}

const recommendationColumns = `
	id, account_id, creative_id, source, type, what_to_change, target_range,
	observable_gap, metric_to_watch, run_duration_days, confidence,
	status, successor_creative_id, outcome, created_at, updated_at`

// Save upserts a recommendation keyed by id
func (r *RecommendationRepositoryImpl) Save(ctx context.Context, rec *recommendation.Recommendation) error {
	var outcomeJSON []byte
	if rec.Outcome != nil {
		outcomeJSON, _ = json.Marshal(rec.Outcome)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recommendations (`+recommendationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			successor_creative_id = EXCLUDED.successor_creative_id,
			outcome = EXCLUDED.outcome,
			updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.AccountID, rec.CreativeID, rec.Source, rec.Type,
		rec.WhatToChange, rec.TargetRange, rec.ObservableGap, rec.MetricToWatch,
		rec.RunDurationDays, rec.Confidence, rec.Status, rec.SuccessorCreativeID,
		outcomeJSON, rec.CreatedAt, rec.UpdatedAt)
	return err
}

// Get returns one recommendation by account and id
func (r *RecommendationRepositoryImpl) Get(ctx context.Context, accountID core.AccountID, id core.RecommendationID) (*recommendation.Recommendation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recommendationColumns+`
		FROM recommendations
		WHERE account_id = $1 AND id = $2
	`, accountID, id)

	rec, err := scanRecommendation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrRecommendationNotFound
	}
	return rec, err
}

// ListByAccount returns an account's recommendations, newest first
func (r *RecommendationRepositoryImpl) ListByAccount(ctx context.Context, accountID core.AccountID, limit int) ([]*recommendation.Recommendation, error) {
	query := `
		SELECT ` + recommendationColumns + `
		FROM recommendations
		WHERE account_id = $1
		ORDER BY created_at DESC`

	args := []interface{}{accountID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecommendations(rows)
}

// ListByStatus returns an account's recommendations in one lifecycle state
func (r *RecommendationRepositoryImpl) ListByStatus(ctx context.Context, accountID core.AccountID, status recommendation.Status) ([]*recommendation.Recommendation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recommendationColumns+`
		FROM recommendations
		WHERE account_id = $1 AND status = $2
		ORDER BY created_at DESC
	`, accountID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRecommendations(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecommendation(row rowScanner) (*recommendation.Recommendation, error) {
	var rec recommendation.Recommendation
	var outcomeJSON []byte
	var successor *string

	err := row.Scan(
		&rec.ID, &rec.AccountID, &rec.CreativeID, &rec.Source, &rec.Type,
		&rec.WhatToChange, &rec.TargetRange, &rec.ObservableGap, &rec.MetricToWatch,
		&rec.RunDurationDays, &rec.Confidence, &rec.Status, &successor,
		&outcomeJSON, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if successor != nil {
		id := core.CreativeID(*successor)
		rec.SuccessorCreativeID = &id
	}
	if len(outcomeJSON) > 0 {
		var outcome recommendation.Outcome
		if err := json.Unmarshal(outcomeJSON, &outcome); err == nil {
			rec.Outcome = &outcome
		}
	}
	return &rec, nil
}

func collectRecommendations(rows *sql.Rows) ([]*recommendation.Recommendation, error) {
	var recs []*recommendation.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
