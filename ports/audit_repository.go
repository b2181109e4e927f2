package ports

import (
	"context"

	"adlens/domain/audit"
	"adlens/domain/core"
)

// AuditRepository is the append-only decision log. There is deliberately no
// update or delete: only creation and bulk read.
type AuditRepository interface {
	// Append adds one entry to a trace's trail
	Append(ctx context.Context, entry *audit.Entry) error

	// Trail returns a trace's entries in step order
	Trail(ctx context.Context, traceID core.TraceID) ([]*audit.Entry, error)

	// RecentByCreative returns a creative's most recent entries across
	// traces, newest first
	RecentByCreative(ctx context.Context, creativeID core.CreativeID, limit int) ([]*audit.Entry, error)
}
