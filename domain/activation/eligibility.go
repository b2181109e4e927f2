package activation

// EligibilityConfig defines the narrative activation thresholds
type EligibilityConfig struct {
	MinConversions int64 `json:"min_conversions"` // Conversions needed before narrative analysis may run
}

// DefaultEligibilityConfig returns the production activation thresholds
func DefaultEligibilityConfig() EligibilityConfig {
	return EligibilityConfig{MinConversions: 30}
}

// CheckNarrativeEligibility applies the 4-quadrant activation rule: the
// narrative subsystem may speak only when delivery is healthy, conversion is
// bad, and enough conversions exist to make the bad read trustworthy.
// Delivery is checked before conversion so "fix structure first" dominates
// every conversion-based reason.
func CheckNarrativeEligibility(delivery DeliveryHealth, conversion ConversionHealth, totalConversions int64, cfg EligibilityConfig) NarrativeEligibility {
	if delivery != DeliveryHealthy {
		return NarrativeEligibility{Eligible: false, Reason: ReasonDeliveryUnhealthy}
	}
	switch conversion {
	case ConversionGood:
		return NarrativeEligibility{Eligible: false, Reason: ReasonConversionHealthy}
	case ConversionBad:
		if totalConversions < cfg.MinConversions {
			return NarrativeEligibility{Eligible: false, Reason: ReasonInsufficientConversions}
		}
		return NarrativeEligibility{Eligible: true, Reason: ReasonEligible}
	default:
		return NarrativeEligibility{Eligible: false, Reason: ReasonInsufficientData}
	}
}
