package baseline

import (
	"testing"
	"time"

	"adlens/domain/confidence"
	"adlens/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var computedAt = core.NewTimestamp(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

func day(spend float64, conversions int64, revenue float64, promo bool) DailyMetrics {
	return DailyMetrics{
		Spend:       spend,
		Conversions: conversions,
		Revenue:     revenue,
		Impressions: 10000,
		Clicks:      200,
		IsPromoDay:  promo,
	}
}

func segment() Segment {
	return Segment{ConversionType: "purchase", Placement: "feed", Objective: "conversions"}
}

func TestComputeBaseline_Averages(t *testing.T) {
	days := []DailyMetrics{
		day(100, 10, 300, false),
		day(100, 10, 300, false),
		day(100, 10, 300, false),
	}

	base := ComputeBaseline(core.AccountID("acct-1"), segment(), days, DefaultConfig(), computedAt)

	require.Equal(t, 3, base.DaysIncluded)
	assert.InDelta(t, 10.0, base.AvgCPA, 1e-9)   // 300 spend / 30 conversions
	assert.InDelta(t, 3.0, base.AvgROAS, 1e-9)   // 900 revenue / 300 spend
	assert.InDelta(t, 0.02, base.AvgCTR, 1e-9)   // 600 clicks / 30000 impressions
	assert.InDelta(t, 0.05, base.AvgCVR, 1e-9)   // 30 conversions / 600 clicks
	assert.InDelta(t, 10.0, base.AvgCPM, 1e-9)   // 300 / 30000 * 1000
	assert.Equal(t, QualityLow, base.Quality)    // 30 conversions
	assert.Equal(t, int64(30), base.TotalConversions)
}

func TestComputeBaseline_PromoExclusion(t *testing.T) {
	// Mean spend is (100+100+100+900)/4 = 300; cutoff at 2x = 600. The 900
	// day is auto-classified promotional even without the explicit flag.
	days := []DailyMetrics{
		day(100, 10, 300, false),
		day(100, 10, 300, false),
		day(100, 10, 300, false),
		day(900, 90, 2700, false),
	}

	base := ComputeBaseline(core.AccountID("acct-1"), segment(), days, DefaultConfig(), computedAt)

	assert.Equal(t, 1, base.PromoDaysExcluded)
	assert.Equal(t, 3, base.DaysIncluded)
	assert.InDelta(t, 10.0, base.AvgCPA, 1e-9)
}

func TestComputeBaseline_ExplicitPromoFlagUnioned(t *testing.T) {
	// The flagged day is below the spend cutoff but still excluded: the
	// explicit flag and the auto-classification are unioned.
	days := []DailyMetrics{
		day(100, 10, 300, false),
		day(100, 10, 300, false),
		day(120, 30, 900, true),
	}

	base := ComputeBaseline(core.AccountID("acct-1"), segment(), days, DefaultConfig(), computedAt)

	assert.Equal(t, 1, base.PromoDaysExcluded)
	assert.Equal(t, int64(20), base.TotalConversions)
}

func TestComputeBaseline_QualityLadder(t *testing.T) {
	tests := []struct {
		conversions int64
		want        Quality
	}{
		{200, QualityHigh},
		{199, QualityMedium},
		{50, QualityMedium},
		{49, QualityLow},
		{10, QualityLow},
		{9, QualityNone},
		{0, QualityNone},
	}

	for _, tt := range tests {
		days := []DailyMetrics{day(100, tt.conversions, 300, false)}
		base := ComputeBaseline(core.AccountID("acct-1"), segment(), days, DefaultConfig(), computedAt)
		assert.Equalf(t, tt.want, base.Quality, "conversions=%d", tt.conversions)
	}
}

func TestComputeBaseline_Empty(t *testing.T) {
	base := ComputeBaseline(core.AccountID("acct-1"), segment(), nil, DefaultConfig(), computedAt)
	assert.Equal(t, QualityNone, base.Quality)
	assert.Zero(t, base.DaysIncluded)
}

func TestComputeEfficiencyScore(t *testing.T) {
	cfg := DefaultEfficiencyConfig()

	base := AccountBaseline{AvgCPA: 20, Quality: QualityHigh}

	t.Run("parity scores 50", func(t *testing.T) {
		result := ComputeEfficiencyScore(20, 2.0, 120, base, cfg)
		require.True(t, result.CanScore)
		assert.InDelta(t, 50.0, result.Score, 1e-9)
		assert.Equal(t, confidence.High, result.Confidence)
	})

	t.Run("cheaper CPA scores above parity", func(t *testing.T) {
		result := ComputeEfficiencyScore(10, 2.0, 120, base, cfg)
		assert.InDelta(t, 100.0, result.Score, 1e-9) // ratio 2.0 capped at 100
	})

	t.Run("expensive CPA scores below parity", func(t *testing.T) {
		result := ComputeEfficiencyScore(40, 2.0, 120, base, cfg)
		assert.InDelta(t, 25.0, result.Score, 1e-9)
	})

	t.Run("blocked on quality none", func(t *testing.T) {
		result := ComputeEfficiencyScore(20, 2.0, 120, AccountBaseline{AvgCPA: 20, Quality: QualityNone}, cfg)
		assert.False(t, result.CanScore)
		assert.Equal(t, confidence.Insufficient, result.Confidence)
	})

	t.Run("low quality pins confidence low", func(t *testing.T) {
		result := ComputeEfficiencyScore(20, 2.0, 500, AccountBaseline{AvgCPA: 20, Quality: QualityLow}, cfg)
		require.True(t, result.CanScore)
		assert.Equal(t, confidence.Low, result.Confidence)
	})

	t.Run("current volume drives confidence", func(t *testing.T) {
		result := ComputeEfficiencyScore(20, 2.0, 35, base, cfg)
		assert.Equal(t, confidence.Medium, result.Confidence)

		result = ComputeEfficiencyScore(20, 2.0, 9, base, cfg)
		assert.Equal(t, confidence.Insufficient, result.Confidence)
	})
}
