package gates

import (
	"fmt"
	"time"

	"adlens/domain/confidence"
)

// Evaluate converts a raw facts snapshot into per-dimension gate results and
// confidence ceilings. It is pure and total: any combination of present and
// absent optional fields yields a GateStatus, never an error. Missing
// optional data is treated as unknown and takes the conservative worst-case
// path rather than an average-case guess.
func Evaluate(input GateInput, cfg GateConfig, now time.Time) GateStatus {
	status := GateStatus{
		CanScoreDelivery:       true,
		CanScoreConversion:     true,
		CanShowRecommendations: true,
		Messages:               make([]string, 0, 4),
	}

	// Age gate
	hoursLeft := AgeRemaining(input.FirstSeenAt, cfg.MinAge, now)
	status.Age = ThresholdGate{Passed: hoursLeft == 0, Remaining: float64(hoursLeft)}
	if hoursLeft > 0 {
		status.CanScoreDelivery = false
		status.Messages = append(status.Messages,
			fmt.Sprintf("Creative is too new to score: %d more hours of delivery needed", hoursLeft))
	}

	// Spend gate
	remainingSpend := cfg.SpendThreshold - input.TotalSpend
	if remainingSpend < 0 {
		remainingSpend = 0
	}
	status.Spend = ThresholdGate{Passed: input.TotalSpend >= cfg.SpendThreshold, Remaining: remainingSpend}
	if !status.Spend.Passed {
		status.CanShowRecommendations = false
		status.Messages = append(status.Messages,
			fmt.Sprintf("Spend below $%.0f threshold; recommendations withheld until $%.2f more is spent",
				cfg.SpendThreshold, remainingSpend))
	}

	// Impression volume. Delivery has no insufficient tier: even a trickle of
	// impressions supports a low-confidence delivery read.
	status.Impressions = gradeImpressions(input.Impressions, cfg)
	status.DeliveryConfidenceMax = status.Impressions.Level
	if status.Impressions.Level == confidence.Low {
		status.Messages = append(status.Messages,
			fmt.Sprintf("Only %d impressions so far; delivery scores are low-confidence until %d",
				input.Impressions, cfg.ImpressionsMed))
	}

	// Conversion volume
	status.Conversions = gradeConversions(input.Conversions, cfg)
	status.ConversionConfidenceMax = status.Conversions.Level
	if input.Conversions < cfg.ConversionsLow {
		status.CanScoreConversion = false
		status.Messages = append(status.Messages,
			fmt.Sprintf("Only %d conversions recorded; %d needed before conversion scoring",
				input.Conversions, cfg.ConversionsLow))
	}

	// iOS traffic penalty. An unknown share is treated as the worst case and
	// clamps harder than the known 40-60% band.
	switch {
	case input.IOSTrafficPct == nil:
		status.IOSPenalty = true
		status.ConversionConfidenceMax = confidence.Clamp(status.ConversionConfidenceMax, confidence.Low)
		status.Messages = append(status.Messages,
			"iOS traffic share unavailable; conversion confidence capped at low")
	case *input.IOSTrafficPct > cfg.IOSLowPct:
		status.IOSPenalty = true
		status.ConversionConfidenceMax = confidence.Clamp(status.ConversionConfidenceMax, confidence.Low)
		status.Messages = append(status.Messages,
			fmt.Sprintf("%.0f%% of traffic is iOS; conversion tracking is unreliable above %.0f%%",
				*input.IOSTrafficPct*100, cfg.IOSLowPct*100))
	case *input.IOSTrafficPct > cfg.IOSMediumPct:
		status.IOSPenalty = true
		status.ConversionConfidenceMax = confidence.Clamp(status.ConversionConfidenceMax, confidence.Medium)
		status.Messages = append(status.Messages,
			fmt.Sprintf("%.0f%% of traffic is iOS; conversion confidence capped at medium",
				*input.IOSTrafficPct*100))
	}

	// Modeled-conversion penalty
	switch {
	case input.ModeledConversionPct == nil:
		status.ModeledPenalty = true
		status.ConversionConfidenceMax = confidence.Clamp(status.ConversionConfidenceMax, confidence.Medium)
		status.Messages = append(status.Messages,
			"Modeled-conversion share unavailable; conversion confidence capped at medium")
	case *input.ModeledConversionPct > cfg.ModeledPct:
		status.ModeledPenalty = true
		status.ConversionConfidenceMax = confidence.Clamp(status.ConversionConfidenceMax, confidence.Medium)
		status.Messages = append(status.Messages,
			fmt.Sprintf("%.0f%% of conversions are modeled rather than observed; confidence capped at medium",
				*input.ModeledConversionPct*100))
	}

	// Attribution-window mismatch blocks conversion scoring entirely rather
	// than arbitrarily trusting one declaration over the other.
	if input.UserAttributionWindow != nil && input.PlatformAttributionWindow != nil &&
		*input.UserAttributionWindow != *input.PlatformAttributionWindow {
		status.AttributionBlocked = true
		status.CanScoreConversion = false
		status.ConversionConfidenceMax = confidence.Insufficient
		status.Messages = append(status.Messages,
			fmt.Sprintf("Attribution window mismatch (%s declared vs %s reported); conversion scoring blocked",
				*input.UserAttributionWindow, *input.PlatformAttributionWindow))
	}

	return status
}

func gradeImpressions(impressions int64, cfg GateConfig) VolumeLevel {
	level := VolumeLevel{Current: impressions}
	switch {
	case impressions >= cfg.ImpressionsHi:
		level.Level = confidence.High
	case impressions >= cfg.ImpressionsMed:
		level.Level = confidence.Medium
		level.NextThreshold = cfg.ImpressionsHi
	default:
		level.Level = confidence.Low
		level.NextThreshold = cfg.ImpressionsMed
	}
	return level
}

func gradeConversions(conversions int64, cfg GateConfig) VolumeLevel {
	level := VolumeLevel{Current: conversions}
	switch {
	case conversions >= cfg.ConversionsHi:
		level.Level = confidence.High
	case conversions >= cfg.ConversionsMed:
		level.Level = confidence.Medium
		level.NextThreshold = cfg.ConversionsHi
	case conversions >= cfg.ConversionsLow:
		level.Level = confidence.Low
		level.NextThreshold = cfg.ConversionsMed
	default:
		level.Level = confidence.Insufficient
		level.NextThreshold = cfg.ConversionsLow
	}
	return level
}

// GradeConversionVolume exposes the shared 10/30/100 conversion ladder used
// by efficiency scoring and outcome measurement.
func GradeConversionVolume(conversions int64, cfg GateConfig) confidence.Level {
	return gradeConversions(conversions, cfg).Level
}
