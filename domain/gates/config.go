package gates

import "time"

// GateConfig defines the scoring gate thresholds
type GateConfig struct {
	MinAge         time.Duration `json:"min_age"`          // Creative must run this long before delivery scoring
	SpendThreshold float64       `json:"spend_threshold"`  // Below this, recommendations are blocked outright
	ImpressionsMed int64         `json:"impressions_med"`  // Impression count for medium delivery confidence
	ImpressionsHi  int64         `json:"impressions_hi"`   // Impression count for high delivery confidence
	ConversionsLow int64         `json:"conversions_low"`  // Minimum conversions before conversion scoring
	ConversionsMed int64         `json:"conversions_med"`  // Conversions for medium conversion confidence
	ConversionsHi  int64         `json:"conversions_hi"`   // Conversions for high conversion confidence
	IOSMediumPct   float64       `json:"ios_medium_pct"`   // iOS share above this caps conversion confidence at medium
	IOSLowPct      float64       `json:"ios_low_pct"`      // iOS share above this caps conversion confidence at low
	ModeledPct     float64       `json:"modeled_pct"`      // Modeled-conversion share above this caps at medium
}

// DefaultGateConfig returns the production gate thresholds
func DefaultGateConfig() GateConfig {
	return GateConfig{
		MinAge:         48 * time.Hour,
		SpendThreshold: 100,
		ImpressionsMed: 1000,
		ImpressionsHi:  5000,
		ConversionsLow: 10,
		ConversionsMed: 30,
		ConversionsHi:  100,
		IOSMediumPct:   0.40,
		IOSLowPct:      0.60,
		ModeledPct:     0.30,
	}
}
