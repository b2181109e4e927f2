package baseline

import (
	"fmt"
	"strings"

	"adlens/domain/core"
)

// Segment identifies one baseline bucket. Baselines are never pooled across
// segments because CPA expectations differ by conversion type, placement and
// campaign objective.
type Segment struct {
	ConversionType string `json:"conversion_type" db:"conversion_type"`
	Placement      string `json:"placement" db:"placement"`
	Objective      string `json:"objective" db:"objective"`
}

// Key returns the composite segment key used for keyed upserts.
func (s Segment) Key() string {
	return fmt.Sprintf("%s|%s|%s", s.ConversionType, s.Placement, s.Objective)
}

// ParseSegmentKey reverses Key.
func ParseSegmentKey(key string) (Segment, error) {
	parts := strings.Split(key, "|")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Segment{}, fmt.Errorf("%w: %q", core.ErrUnknownSegment, key)
	}
	return Segment{ConversionType: parts[0], Placement: parts[1], Objective: parts[2]}, nil
}

// DailyMetrics is one day of raw platform metrics for a segment.
type DailyMetrics struct {
	Date        core.Timestamp `json:"date"`
	Spend       float64        `json:"spend"`
	Conversions int64          `json:"conversions"`
	Revenue     float64        `json:"revenue"`
	Impressions int64          `json:"impressions"`
	Clicks      int64          `json:"clicks"`
	// IsPromoDay is the advertiser's explicit flag. Auto-classification by
	// spend spike is unioned with it, never replaced by it.
	IsPromoDay bool `json:"is_promo_day"`
}

// Quality tags how much evidence backs a baseline, keyed purely on the
// total-conversion sample size.
type Quality string

const (
	QualityNone   Quality = "none"
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// AccountBaseline is the segmented rolling average used as the comparison
// point for efficiency scoring. It is replaced wholesale on recompute,
// never partially mutated.
type AccountBaseline struct {
	AccountID core.AccountID `json:"account_id" db:"account_id"`
	Segment   Segment        `json:"segment"`

	AvgCPA  float64 `json:"avg_cpa" db:"avg_cpa"`
	AvgROAS float64 `json:"avg_roas" db:"avg_roas"`
	AvgCTR  float64 `json:"avg_ctr" db:"avg_ctr"`
	AvgCVR  float64 `json:"avg_cvr" db:"avg_cvr"`
	AvgCPM  float64 `json:"avg_cpm" db:"avg_cpm"`

	Quality           Quality `json:"quality" db:"quality"`
	TotalConversions  int64   `json:"total_conversions" db:"total_conversions"`
	DaysIncluded      int     `json:"days_included" db:"days_included"`
	PromoDaysExcluded int     `json:"promo_days_excluded" db:"promo_days_excluded"`

	ComputedAt core.Timestamp `json:"computed_at" db:"computed_at"`
}
