package activation

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// DiagnoseConversionIssue screens observable external causes, in strict
// priority order, before a conversion problem may be attributed to the
// creative itself. Multiple conditions can be simultaneously true; the chain
// short-circuits at the first match because the first must dominate the
// user-facing message. The order is a design contract:
// tracking > external_change > audience_fatigue > attribution_gap > none.
func DiagnoseConversionIssue(contextChanges []ContextChange, anomaly *TrackingAnomaly, fatigue *FatigueDiagnosis, hasAttributionGap bool) ConversionDiagnosis {
	if anomaly != nil && anomaly.Detected {
		return ConversionDiagnosis{
			PrimaryIssue:     IssueTracking,
			CanBlameCreative: false,
			Detail: fmt.Sprintf("spend of %.2f over %d days produced %d tracked conversions; check pixel and API health",
				anomaly.SpendDuring, anomaly.WindowDays, anomaly.ConversionsSeen),
		}
	}
	if len(contextChanges) > 0 {
		return ConversionDiagnosis{
			PrimaryIssue:     IssueExternalChange,
			CanBlameCreative: false,
			Detail:           fmt.Sprintf("%s changed during the comparison window", contextChanges[0].Field),
		}
	}
	if fatigue != nil && fatigue.Detected {
		return ConversionDiagnosis{
			PrimaryIssue:     IssueFatigue,
			CanBlameCreative: false,
			Detail:           fmt.Sprintf("%d fatigue indicators drifting; audience is saturating", fatigue.IndicatorCount),
		}
	}
	if hasAttributionGap {
		return ConversionDiagnosis{
			PrimaryIssue:     IssueAttributionGap,
			CanBlameCreative: false,
			Detail:           "attribution windows disagree; observed conversion counts are not comparable",
		}
	}
	return ConversionDiagnosis{PrimaryIssue: IssueNone, CanBlameCreative: true}
}

// FatigueConfig defines drift magnitudes that count as fatigue indicators
type FatigueConfig struct {
	FrequencyRisePct float64 `json:"frequency_rise_pct"` // Frequency increase that counts as an indicator
	CTRDropPct       float64 `json:"ctr_drop_pct"`       // CTR decrease that counts as an indicator
	CPMRisePct       float64 `json:"cpm_rise_pct"`       // CPM increase that counts as an indicator
	MinIndicators    int     `json:"min_indicators"`     // Indicators required before fatigue is called
}

// DefaultFatigueConfig returns the production fatigue thresholds
func DefaultFatigueConfig() FatigueConfig {
	return FatigueConfig{
		FrequencyRisePct: 0.20,
		CTRDropPct:       0.15,
		CPMRisePct:       0.20,
		MinIndicators:    2,
	}
}

// DetectFatigue compares the recent halves of frequency, CTR and CPM series
// and counts drift indicators. Fatigue needs at least MinIndicators of
// {frequency up, CTR down, CPM up} beyond the configured magnitudes.
func DetectFatigue(frequency, ctr, cpm []float64, cfg FatigueConfig) FatigueDiagnosis {
	diag := FatigueDiagnosis{
		FrequencyDrift: halfDrift(frequency),
		CTRDrift:       halfDrift(ctr),
		CPMDrift:       halfDrift(cpm),
	}

	if diag.FrequencyDrift >= cfg.FrequencyRisePct {
		diag.IndicatorCount++
	}
	if diag.CTRDrift <= -cfg.CTRDropPct {
		diag.IndicatorCount++
	}
	if diag.CPMDrift >= cfg.CPMRisePct {
		diag.IndicatorCount++
	}
	diag.Detected = diag.IndicatorCount >= cfg.MinIndicators
	return diag
}

// halfDrift returns the fractional change between the mean of the earlier
// half of a series and the mean of the later half. Series too short to
// split report no drift.
func halfDrift(series []float64) float64 {
	if len(series) < 4 {
		return 0
	}
	mid := len(series) / 2
	earlier := stat.Mean(series[:mid], nil)
	later := stat.Mean(series[mid:], nil)
	if earlier == 0 {
		return 0
	}
	return (later - earlier) / earlier
}

// TrackingAnomalyConfig defines the spend-vs-conversion divergence check
type TrackingAnomalyConfig struct {
	MinSpend   float64 `json:"min_spend"`   // Spend that should have produced conversions
	WindowDays int     `json:"window_days"` // Lookback window
}

// DefaultTrackingAnomalyConfig returns the production anomaly thresholds
func DefaultTrackingAnomalyConfig() TrackingAnomalyConfig {
	return TrackingAnomalyConfig{MinSpend: 150, WindowDays: 3}
}

// DetectTrackingAnomaly flags the pattern of meaningful spend with zero
// tracked conversions, which indicates a broken pixel rather than a bad
// creative.
func DetectTrackingAnomaly(spendDuring float64, conversionsSeen int64, cfg TrackingAnomalyConfig) TrackingAnomaly {
	return TrackingAnomaly{
		Detected:        spendDuring >= cfg.MinSpend && conversionsSeen == 0,
		SpendDuring:     spendDuring,
		ConversionsSeen: conversionsSeen,
		WindowDays:      cfg.WindowDays,
	}
}
