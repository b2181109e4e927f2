package testkit

import (
	"context"
	"time"

	"adlens/domain/baseline"
	"adlens/domain/core"
	"adlens/domain/extraction"
	"adlens/domain/gates"
	"adlens/ports"
)

// MetricsAdapter serves synthetic metrics through the MetricsProvider port
// so the full pipeline runs without platform credentials.
type MetricsAdapter struct {
	cfg      GeneratorConfig
	segments []baseline.Segment
}

// NewMetricsAdapter creates a synthetic metrics provider covering the given
// segments. A nil segment list gets one default purchase segment.
func NewMetricsAdapter(cfg GeneratorConfig, segments []baseline.Segment) *MetricsAdapter {
	if len(segments) == 0 {
		segments = []baseline.Segment{
			{ConversionType: "purchase", Placement: "feed", Objective: "conversions"},
		}
	}
	return &MetricsAdapter{cfg: cfg, segments: segments}
}

var _ ports.MetricsProvider = (*MetricsAdapter)(nil)

// GetCreativeMetrics returns cumulative metrics for one creative over a range
func (a *MetricsAdapter) GetCreativeMetrics(ctx context.Context, accountID core.AccountID, creativeID core.CreativeID, from, to time.Time) (*ports.CreativeMetrics, error) {
	days, err := Generate(a.creativeConfig(creativeID))
	if err != nil {
		return nil, err
	}

	metrics := &ports.CreativeMetrics{CreativeID: creativeID}
	for _, d := range days {
		if d.Date.Time().Before(from) || d.Date.Time().After(to) {
			continue
		}
		metrics.Spend += d.Spend
		metrics.Impressions += d.Impressions
		metrics.Clicks += d.Clicks
		metrics.Conversions += d.Conversions
		metrics.Revenue += d.Revenue
	}
	if metrics.Impressions > 0 {
		metrics.CTR = float64(metrics.Clicks) / float64(metrics.Impressions)
		metrics.CPM = metrics.Spend / float64(metrics.Impressions) * 1000
	}
	if metrics.Clicks > 0 {
		metrics.CPC = metrics.Spend / float64(metrics.Clicks)
	}
	return metrics, nil
}

// GetGateInput builds the gate evaluation snapshot for a creative
func (a *MetricsAdapter) GetGateInput(ctx context.Context, accountID core.AccountID, creativeID core.CreativeID) (*gates.GateInput, error) {
	days, err := Generate(a.creativeConfig(creativeID))
	if err != nil {
		return nil, err
	}

	input := &gates.GateInput{
		CreativeID:  creativeID,
		FirstSeenAt: days[0].Date,
	}
	for _, d := range days {
		input.TotalSpend += d.Spend
		input.Impressions += d.Impressions
		input.Conversions += d.Conversions
	}

	ios := 0.25
	modeled := 0.10
	window := "7d_click"
	input.IOSTrafficPct = &ios
	input.ModeledConversionPct = &modeled
	input.UserAttributionWindow = &window
	input.PlatformAttributionWindow = &window
	return input, nil
}

// GetDailyHistory returns daily metrics per baseline segment key
func (a *MetricsAdapter) GetDailyHistory(ctx context.Context, accountID core.AccountID, days int) (map[string][]baseline.DailyMetrics, error) {
	history := make(map[string][]baseline.DailyMetrics, len(a.segments))
	for i, segment := range a.segments {
		cfg := a.cfg
		cfg.Seed += int64(i) // distinct but reproducible series per segment
		if days > 0 && days < cfg.Days {
			cfg.Days = days
		}
		series, err := Generate(cfg)
		if err != nil {
			return nil, err
		}
		history[segment.Key()] = series
	}
	return history, nil
}

// creativeConfig derives a per-creative seed so different creatives get
// different but stable histories.
func (a *MetricsAdapter) creativeConfig(creativeID core.CreativeID) GeneratorConfig {
	cfg := a.cfg
	for _, b := range []byte(creativeID) {
		cfg.Seed = cfg.Seed*31 + int64(b)
	}
	return cfg
}

// SignalExtractorStub reports a fixed extraction result through the
// SignalExtractor port.
type SignalExtractorStub struct {
	Extracted []string
	Failed    []string
}

// NewCompleteExtractorStub returns a stub extracting the full catalog.
func NewCompleteExtractorStub() *SignalExtractorStub {
	var all []string
	for _, req := range extraction.Catalog() {
		all = append(all, req.Name)
	}
	return &SignalExtractorStub{Extracted: all}
}

var _ ports.SignalExtractor = (*SignalExtractorStub)(nil)

// Extract runs signal extraction against the creative's media file
func (s *SignalExtractorStub) Extract(ctx context.Context, creativeID core.CreativeID) (*ports.ExtractionResult, error) {
	return &ports.ExtractionResult{
		ExtractedSignals: s.Extracted,
		FailedSignals:    s.Failed,
	}, nil
}
