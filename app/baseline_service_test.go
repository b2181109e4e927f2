package app

import (
	"context"
	"testing"
	"time"

	"adlens/domain/baseline"
	"adlens/domain/core"
	"adlens/internal"
)

func TestRecomputeBuildsEverySegment(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: now}
	accountID := core.AccountID("acct-1")

	history := map[string][]baseline.DailyMetrics{
		"purchase|feed|conversions":  syntheticDays(now, 14, 100, 10),
		"lead|stories|traffic":       syntheticDays(now, 14, 50, 4),
		"malformed-key-without-bars": syntheticDays(now, 14, 10, 1),
	}
	metrics := &fakeMetricsProvider{history: history}
	repo := newFakeBaselineRepo()

	svc := NewBaselineService(metrics, repo, clock, testEngine(), internal.NewDefaultLogger())
	result, err := svc.Recompute(context.Background(), accountID)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}

	if len(result.Baselines) != 2 {
		t.Fatalf("expected 2 segment baselines, got %d", len(result.Baselines))
	}
	if result.Failed != 1 {
		t.Errorf("malformed segment key should count as failed, got %d", result.Failed)
	}

	stored, err := repo.Get(context.Background(), accountID, baseline.Segment{
		ConversionType: "purchase", Placement: "feed", Objective: "conversions",
	})
	if err != nil {
		t.Fatalf("stored baseline missing: %v", err)
	}
	if stored.AvgCPA != 10 {
		t.Errorf("spend 100 over 10 conversions should average CPA 10, got %.2f", stored.AvgCPA)
	}
	if stored.Quality != baseline.QualityMedium {
		t.Errorf("140 total conversions should grade medium quality, got %s", stored.Quality)
	}
}

func syntheticDays(now time.Time, count int, dailySpend float64, dailyConversions int64) []baseline.DailyMetrics {
	days := make([]baseline.DailyMetrics, count)
	for i := range days {
		days[i] = baseline.DailyMetrics{
			Date:        core.NewTimestamp(now.AddDate(0, 0, -count+i)),
			Spend:       dailySpend,
			Conversions: dailyConversions,
			Revenue:     dailySpend * 2,
			Impressions: 10000,
			Clicks:      200,
		}
	}
	return days
}
