package activation

// HealthConfig holds the baseline-relative ratios used to grade delivery and
// conversion health.
type HealthConfig struct {
	// CTRHealthyRatio is the minimum current/baseline CTR ratio that still
	// counts as healthy delivery.
	CTRHealthyRatio float64
	// CPAGoodRatio is the maximum current/baseline CPA ratio that still
	// counts as good conversion performance.
	CPAGoodRatio float64
}

// DefaultHealthConfig returns the default health grading thresholds
func DefaultHealthConfig() HealthConfig {
	return HealthConfig{
		CTRHealthyRatio: 0.8,
		CPAGoodRatio:    1.2,
	}
}

// ClassifyDeliveryHealth grades delivery against the account baseline CTR.
// Without scoring permission or a usable baseline the grade is insufficient,
// never a guess.
func ClassifyDeliveryHealth(currentCTR, baselineCTR float64, canScore bool, cfg HealthConfig) DeliveryHealth {
	if !canScore || baselineCTR <= 0 {
		return DeliveryInsufficient
	}
	if currentCTR >= baselineCTR*cfg.CTRHealthyRatio {
		return DeliveryHealthy
	}
	return DeliveryPoor
}

// ClassifyConversionHealth grades conversion performance against the account
// baseline CPA.
func ClassifyConversionHealth(currentCPA, baselineCPA float64, canScore bool, cfg HealthConfig) ConversionHealth {
	if !canScore || baselineCPA <= 0 || currentCPA <= 0 {
		return ConversionInsufficient
	}
	if currentCPA <= baselineCPA*cfg.CPAGoodRatio {
		return ConversionGood
	}
	return ConversionBad
}
