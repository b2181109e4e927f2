package postgres

import (
	"context"
	"database/sql"
	"errors"

	"adlens/domain/baseline"
	"adlens/domain/core"
	"adlens/ports"

	"github.com/jmoiron/sqlx"
)

// BaselineRepositoryImpl implements BaselineRepository for PostgreSQL
type BaselineRepositoryImpl struct {
	db *sqlx.DB
}

// NewBaselineRepository creates a new PostgreSQL baseline repository
func NewBaselineRepository(db *sqlx.DB) ports.BaselineRepository {
	return &BaselineRepositoryImpl{db: db}
}

// Upsert replaces the baseline row for (account, segment) wholesale
func (r *BaselineRepositoryImpl) Upsert(ctx context.Context, base *baseline.AccountBaseline) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO account_baselines (
			account_id, conversion_type, placement, objective,
			avg_cpa, avg_roas, avg_ctr, avg_cvr, avg_cpm,
			quality, total_conversions, days_included, promo_days_excluded, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (account_id, conversion_type, placement, objective) DO UPDATE SET
			avg_cpa = EXCLUDED.avg_cpa,
			avg_roas = EXCLUDED.avg_roas,
			avg_ctr = EXCLUDED.avg_ctr,
			avg_cvr = EXCLUDED.avg_cvr,
			avg_cpm = EXCLUDED.avg_cpm,
			quality = EXCLUDED.quality,
			total_conversions = EXCLUDED.total_conversions,
			days_included = EXCLUDED.days_included,
			promo_days_excluded = EXCLUDED.promo_days_excluded,
			computed_at = EXCLUDED.computed_at`,
		base.AccountID, base.Segment.ConversionType, base.Segment.Placement, base.Segment.Objective,
		base.AvgCPA, base.AvgROAS, base.AvgCTR, base.AvgCVR, base.AvgCPM,
		base.Quality, base.TotalConversions, base.DaysIncluded, base.PromoDaysExcluded, base.ComputedAt)
	return err
}

// Get returns the baseline for one segment
func (r *BaselineRepositoryImpl) Get(ctx context.Context, accountID core.AccountID, segment baseline.Segment) (*baseline.AccountBaseline, error) {
	var base baseline.AccountBaseline
	err := r.db.QueryRowContext(ctx, `
		SELECT account_id, conversion_type, placement, objective,
		       avg_cpa, avg_roas, avg_ctr, avg_cvr, avg_cpm,
		       quality, total_conversions, days_included, promo_days_excluded, computed_at
		FROM account_baselines
		WHERE account_id = $1 AND conversion_type = $2 AND placement = $3 AND objective = $4
	`, accountID, segment.ConversionType, segment.Placement, segment.Objective).Scan(
		&base.AccountID, &base.Segment.ConversionType, &base.Segment.Placement, &base.Segment.Objective,
		&base.AvgCPA, &base.AvgROAS, &base.AvgCTR, &base.AvgCVR, &base.AvgCPM,
		&base.Quality, &base.TotalConversions, &base.DaysIncluded, &base.PromoDaysExcluded, &base.ComputedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrBaselineNotFound
	}
	if err != nil {
		return nil, err
	}
	return &base, nil
}

// ListByAccount returns all of an account's segment baselines
func (r *BaselineRepositoryImpl) ListByAccount(ctx context.Context, accountID core.AccountID) ([]*baseline.AccountBaseline, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT account_id, conversion_type, placement, objective,
		       avg_cpa, avg_roas, avg_ctr, avg_cvr, avg_cpm,
		       quality, total_conversions, days_included, promo_days_excluded, computed_at
		FROM account_baselines
		WHERE account_id = $1
		ORDER BY conversion_type, placement, objective
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var baselines []*baseline.AccountBaseline
	for rows.Next() {
		var base baseline.AccountBaseline
		err := rows.Scan(
			&base.AccountID, &base.Segment.ConversionType, &base.Segment.Placement, &base.Segment.Objective,
			&base.AvgCPA, &base.AvgROAS, &base.AvgCTR, &base.AvgCVR, &base.AvgCPM,
			&base.Quality, &base.TotalConversions, &base.DaysIncluded, &base.PromoDaysExcluded, &base.ComputedAt,
		)
		if err != nil {
			return nil, err
		}
		baselines = append(baselines, &base)
	}
	return baselines, rows.Err()
}
