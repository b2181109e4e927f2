package activation

import "testing"

func TestClassifyDeliveryHealth(t *testing.T) {
	cfg := DefaultHealthConfig()

	tests := []struct {
		name        string
		currentCTR  float64
		baselineCTR float64
		canScore    bool
		want        DeliveryHealth
	}{
		{"at baseline", 0.02, 0.02, true, DeliveryHealthy},
		{"at healthy ratio boundary", 0.016, 0.02, true, DeliveryHealthy},
		{"below healthy ratio", 0.0159, 0.02, true, DeliveryPoor},
		{"no scoring permission", 0.02, 0.02, false, DeliveryInsufficient},
		{"no baseline", 0.02, 0, true, DeliveryInsufficient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDeliveryHealth(tt.currentCTR, tt.baselineCTR, tt.canScore, cfg)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyConversionHealth(t *testing.T) {
	cfg := DefaultHealthConfig()

	tests := []struct {
		name        string
		currentCPA  float64
		baselineCPA float64
		canScore    bool
		want        ConversionHealth
	}{
		{"cheaper than baseline", 40, 50, true, ConversionGood},
		{"at good ratio boundary", 60, 50, true, ConversionGood},
		{"beyond good ratio", 60.01, 50, true, ConversionBad},
		{"no scoring permission", 40, 50, false, ConversionInsufficient},
		{"no baseline", 40, 0, true, ConversionInsufficient},
		{"no current spend", 0, 50, true, ConversionInsufficient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyConversionHealth(tt.currentCPA, tt.baselineCPA, tt.canScore, cfg)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
