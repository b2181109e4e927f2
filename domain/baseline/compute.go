package baseline

import (
	"adlens/domain/core"

	"github.com/montanaflynn/stats"
)

// Config defines baseline computation thresholds
type Config struct {
	WindowDays           int     `json:"window_days"`            // Daily-history lookback for a recompute
	PromoSpendMultiplier float64 `json:"promo_spend_multiplier"` // Spend above multiplier x mean daily spend marks a promo day
	QualityLow           int64   `json:"quality_low"`            // Total conversions for low quality
	QualityMedium        int64   `json:"quality_medium"`         // Total conversions for medium quality
	QualityHigh          int64   `json:"quality_high"`           // Total conversions for high quality
}

// DefaultConfig returns the production baseline thresholds
func DefaultConfig() Config {
	return Config{
		WindowDays:           28,
		PromoSpendMultiplier: 2.0,
		QualityLow:           10,
		QualityMedium:        50,
		QualityHigh:          200,
	}
}

// ComputeBaseline aggregates a segment's daily history into a rolling
// baseline. Promotional days are excluded from the averages: a day counts
// as promotional when its spend exceeds the segment's mean daily spend by
// the configured multiplier, or when the advertiser flagged it explicitly.
// The two signals are unioned.
func ComputeBaseline(accountID core.AccountID, segment Segment, days []DailyMetrics, cfg Config, now core.Timestamp) AccountBaseline {
	result := AccountBaseline{
		AccountID:  accountID,
		Segment:    segment,
		Quality:    QualityNone,
		ComputedAt: now,
	}
	if len(days) == 0 {
		return result
	}

	spends := make([]float64, len(days))
	for i, day := range days {
		spends[i] = day.Spend
	}
	meanSpend, _ := stats.Mean(spends)
	promoCutoff := meanSpend * cfg.PromoSpendMultiplier

	var (
		spend       float64
		revenue     float64
		conversions int64
		impressions int64
		clicks      int64
	)
	for _, day := range days {
		if day.IsPromoDay || day.Spend > promoCutoff {
			result.PromoDaysExcluded++
			continue
		}
		result.DaysIncluded++
		spend += day.Spend
		revenue += day.Revenue
		conversions += day.Conversions
		impressions += day.Impressions
		clicks += day.Clicks
	}

	result.TotalConversions = conversions
	result.Quality = gradeQuality(conversions, cfg)

	if conversions > 0 {
		result.AvgCPA = spend / float64(conversions)
	}
	if spend > 0 {
		result.AvgROAS = revenue / spend
	}
	if impressions > 0 {
		result.AvgCTR = float64(clicks) / float64(impressions)
		result.AvgCPM = spend / float64(impressions) * 1000
	}
	if clicks > 0 {
		result.AvgCVR = float64(conversions) / float64(clicks)
	}

	return result
}

func gradeQuality(totalConversions int64, cfg Config) Quality {
	switch {
	case totalConversions >= cfg.QualityHigh:
		return QualityHigh
	case totalConversions >= cfg.QualityMedium:
		return QualityMedium
	case totalConversions >= cfg.QualityLow:
		return QualityLow
	default:
		return QualityNone
	}
}

// FilterSegment selects the days belonging to one segment from a mixed
// history keyed by segment.
func FilterSegment(history map[string][]DailyMetrics, segment Segment) []DailyMetrics {
	return history[segment.Key()]
}
