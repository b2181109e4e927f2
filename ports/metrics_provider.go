package ports

import (
	"context"
	"time"

	"adlens/domain/baseline"
	"adlens/domain/core"
	"adlens/domain/gates"
)

// CreativeMetrics is the raw per-creative metrics record consumed from the
// ad-platform client for one time range.
type CreativeMetrics struct {
	CreativeID  core.CreativeID `json:"creative_id"`
	Spend       float64         `json:"spend"`
	Impressions int64           `json:"impressions"`
	Clicks      int64           `json:"clicks"`
	Conversions int64           `json:"conversions"`
	Revenue     float64         `json:"revenue"`
	CTR         float64         `json:"ctr"`
	CPC         float64         `json:"cpc"`
	CPM         float64         `json:"cpm"`

	IOSTrafficPct        *float64 `json:"ios_traffic_pct,omitempty"`
	ModeledConversionPct *float64 `json:"modeled_conversion_pct,omitempty"`
	AttributionWindow    *string  `json:"attribution_window,omitempty"`
}

// MetricsProvider is the ad-platform API client boundary. Fetching happens
// before the pure computations run; timeouts and retries are the provider's
// own contract.
type MetricsProvider interface {
	// GetCreativeMetrics returns cumulative metrics for one creative over a range
	GetCreativeMetrics(ctx context.Context, accountID core.AccountID, creativeID core.CreativeID, from, to time.Time) (*CreativeMetrics, error)

	// GetGateInput builds the gate evaluation snapshot for a creative
	GetGateInput(ctx context.Context, accountID core.AccountID, creativeID core.CreativeID) (*gates.GateInput, error)

	// GetDailyHistory returns daily metrics per baseline segment key
	GetDailyHistory(ctx context.Context, accountID core.AccountID, days int) (map[string][]baseline.DailyMetrics, error)
}
