package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"adlens/domain/audit"
	"adlens/domain/core"
	"adlens/domain/gates"
	"adlens/ports"

	"github.com/jmoiron/sqlx"
)

// AuditRepositoryImpl implements AuditRepository for PostgreSQL
type AuditRepositoryImpl struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new PostgreSQL audit repository
func NewAuditRepository(db *sqlx.DB) ports.AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

// Append adds one entry to a trace's trail. The step number is assigned
// here from the trail's current length so callers never coordinate it.
func (r *AuditRepositoryImpl) Append(ctx context.Context, entry *audit.Entry) error {
	var statusJSON []byte
	if entry.Status != nil {
		b, err := json.Marshal(entry.Status)
		if err != nil {
			return err
		}
		statusJSON = b
	}
	var systemsJSON []byte
	if len(entry.ActivatedSystems) > 0 {
		b, err := json.Marshal(entry.ActivatedSystems)
		if err != nil {
			return err
		}
		systemsJSON = b
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO audit_entries (
			trace_id, step, creative_id, gate_type,
			status, activated_systems, blocked, reason, at
		)
		SELECT $1, COALESCE(MAX(step), 0) + 1, $2, $3, $4, $5, $6, $7, $8
		FROM audit_entries WHERE trace_id = $1
		RETURNING step`,
		entry.TraceID, entry.CreativeID, entry.GateType,
		statusJSON, systemsJSON, entry.Blocked, entry.Reason, entry.At,
	).Scan(&entry.Step)
}

// Trail returns a trace's entries in step order
func (r *AuditRepositoryImpl) Trail(ctx context.Context, traceID core.TraceID) ([]*audit.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT trace_id, step, creative_id, gate_type,
		       status, activated_systems, blocked, reason, at
		FROM audit_entries
		WHERE trace_id = $1
		ORDER BY step
	`, traceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// RecentByCreative returns a creative's most recent entries across traces,
// newest first
func (r *AuditRepositoryImpl) RecentByCreative(ctx context.Context, creativeID core.CreativeID, limit int) ([]*audit.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT trace_id, step, creative_id, gate_type,
		       status, activated_systems, blocked, reason, at
		FROM audit_entries
		WHERE creative_id = $1
		ORDER BY at DESC, step DESC
		LIMIT $2
	`, creativeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		entry, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanAuditEntry(rows *sql.Rows) (*audit.Entry, error) {
	var entry audit.Entry
	var statusJSON, systemsJSON []byte
	err := rows.Scan(
		&entry.TraceID, &entry.Step, &entry.CreativeID, &entry.GateType,
		&statusJSON, &systemsJSON, &entry.Blocked, &entry.Reason, &entry.At,
	)
	if err != nil {
		return nil, err
	}
	if len(statusJSON) > 0 {
		var status gates.GateStatus
		if err := json.Unmarshal(statusJSON, &status); err != nil {
			return nil, err
		}
		entry.Status = &status
	}
	if len(systemsJSON) > 0 {
		if err := json.Unmarshal(systemsJSON, &entry.ActivatedSystems); err != nil {
			return nil, err
		}
	}
	return &entry, nil
}
