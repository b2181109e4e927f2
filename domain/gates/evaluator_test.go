package gates

import (
	"strings"
	"testing"
	"time"

	"adlens/domain/confidence"
	"adlens/domain/core"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fullInput() GateInput {
	ios := 0.20
	modeled := 0.10
	return GateInput{
		CreativeID:           core.CreativeID("cr-1"),
		FirstSeenAt:          core.NewTimestamp(testNow.Add(-72 * time.Hour)),
		TotalSpend:           500,
		Impressions:          10000,
		Conversions:          150,
		IOSTrafficPct:        &ios,
		ModeledConversionPct: &modeled,
	}
}

func TestEvaluate_AllGatesOpen(t *testing.T) {
	status := Evaluate(fullInput(), DefaultGateConfig(), testNow)

	if !status.CanScoreDelivery || !status.CanScoreConversion || !status.CanShowRecommendations {
		t.Errorf("expected all capabilities enabled, got %+v", status)
	}
	if status.DeliveryConfidenceMax != confidence.High {
		t.Errorf("delivery ceiling = %s, want high", status.DeliveryConfidenceMax)
	}
	if status.ConversionConfidenceMax != confidence.High {
		t.Errorf("conversion ceiling = %s, want high", status.ConversionConfidenceMax)
	}
	if len(status.Messages) != 0 {
		t.Errorf("expected no gate messages, got %v", status.Messages)
	}
}

func TestEvaluate_AgeGate(t *testing.T) {
	input := fullInput()
	input.FirstSeenAt = core.NewTimestamp(testNow.Add(-30*time.Hour - 10*time.Minute))

	status := Evaluate(input, DefaultGateConfig(), testNow)

	if status.CanScoreDelivery {
		t.Error("delivery scoring must be blocked before 48h")
	}
	if status.Age.Passed {
		t.Error("age gate should not pass")
	}
	// 17h50m remaining rounds up to 18
	if status.Age.Remaining != 18 {
		t.Errorf("remaining hours = %v, want 18 (rounded up)", status.Age.Remaining)
	}
	if len(status.Messages) == 0 || !strings.Contains(status.Messages[0], "18 more hours") {
		t.Errorf("expected hours-remaining message first, got %v", status.Messages)
	}
}

func TestEvaluate_SpendGateBlocksRecommendations(t *testing.T) {
	input := fullInput()
	input.TotalSpend = 40

	status := Evaluate(input, DefaultGateConfig(), testNow)

	if status.CanShowRecommendations {
		t.Error("recommendations must be blocked below the spend threshold")
	}
	if status.Spend.Remaining != 60 {
		t.Errorf("spend remaining = %v, want 60", status.Spend.Remaining)
	}
	// Other gates are unaffected
	if !status.CanScoreDelivery || !status.CanScoreConversion {
		t.Error("spend gate must not block scoring dimensions")
	}
}

func TestEvaluate_ImpressionBoundaries(t *testing.T) {
	tests := []struct {
		impressions int64
		want        confidence.Level
	}{
		{5000, confidence.High},
		{4999, confidence.Medium},
		{1000, confidence.Medium},
		{999, confidence.Low},
		{0, confidence.Low},
	}

	for _, tt := range tests {
		input := fullInput()
		input.Impressions = tt.impressions
		status := Evaluate(input, DefaultGateConfig(), testNow)
		if status.Impressions.Level != tt.want {
			t.Errorf("impressions=%d: level = %s, want %s", tt.impressions, status.Impressions.Level, tt.want)
		}
		if status.DeliveryConfidenceMax != tt.want {
			t.Errorf("impressions=%d: delivery ceiling = %s, want %s", tt.impressions, status.DeliveryConfidenceMax, tt.want)
		}
	}
}

func TestEvaluate_ConversionBoundaries(t *testing.T) {
	tests := []struct {
		conversions int64
		want        confidence.Level
		canScore    bool
	}{
		{100, confidence.High, true},
		{99, confidence.Medium, true},
		{30, confidence.Medium, true},
		{29, confidence.Low, true},
		{10, confidence.Low, true},
		{9, confidence.Insufficient, false},
		{0, confidence.Insufficient, false},
	}

	for _, tt := range tests {
		input := fullInput()
		input.Conversions = tt.conversions
		status := Evaluate(input, DefaultGateConfig(), testNow)
		if status.Conversions.Level != tt.want {
			t.Errorf("conversions=%d: level = %s, want %s", tt.conversions, status.Conversions.Level, tt.want)
		}
		if status.CanScoreConversion != tt.canScore {
			t.Errorf("conversions=%d: canScoreConversion = %v, want %v", tt.conversions, status.CanScoreConversion, tt.canScore)
		}
	}
}

func TestEvaluate_UnknownIOSIsWorstCase(t *testing.T) {
	input := fullInput()
	input.IOSTrafficPct = nil // 150 conversions alone would justify high

	status := Evaluate(input, DefaultGateConfig(), testNow)

	if status.ConversionConfidenceMax != confidence.Low {
		t.Errorf("conversion ceiling = %s, want low for unknown iOS share", status.ConversionConfidenceMax)
	}
	found := false
	for _, msg := range status.Messages {
		if strings.Contains(msg, "unavailable") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an 'unavailable' warning message, got %v", status.Messages)
	}
}

func TestEvaluate_IOSKnownBands(t *testing.T) {
	tests := []struct {
		pct  float64
		want confidence.Level
	}{
		{0.70, confidence.Low},
		{0.61, confidence.Low},
		{0.60, confidence.Medium}, // boundary: penalty requires strictly above
		{0.50, confidence.Medium},
		{0.40, confidence.High},
		{0.10, confidence.High},
	}

	for _, tt := range tests {
		input := fullInput()
		input.IOSTrafficPct = &tt.pct
		status := Evaluate(input, DefaultGateConfig(), testNow)
		if status.ConversionConfidenceMax != tt.want {
			t.Errorf("ios=%.2f: conversion ceiling = %s, want %s", tt.pct, status.ConversionConfidenceMax, tt.want)
		}
	}
}

func TestEvaluate_ModeledPenalty(t *testing.T) {
	input := fullInput()
	input.ModeledConversionPct = nil

	status := Evaluate(input, DefaultGateConfig(), testNow)
	if status.ConversionConfidenceMax != confidence.Medium {
		t.Errorf("unknown modeled share should cap at medium, got %s", status.ConversionConfidenceMax)
	}

	high := 0.45
	input.ModeledConversionPct = &high
	status = Evaluate(input, DefaultGateConfig(), testNow)
	if status.ConversionConfidenceMax != confidence.Medium {
		t.Errorf("45%% modeled share should cap at medium, got %s", status.ConversionConfidenceMax)
	}
	if !status.ModeledPenalty {
		t.Error("modeled penalty flag should be set")
	}
}

func TestEvaluate_AttributionMismatchBlocksConversion(t *testing.T) {
	userWin := "7d_click"
	platformWin := "1d_view"
	input := fullInput()
	input.UserAttributionWindow = &userWin
	input.PlatformAttributionWindow = &platformWin

	status := Evaluate(input, DefaultGateConfig(), testNow)

	if status.CanScoreConversion {
		t.Error("attribution mismatch must block conversion scoring regardless of volume")
	}
	if status.ConversionConfidenceMax != confidence.Insufficient {
		t.Errorf("conversion ceiling = %s, want insufficient", status.ConversionConfidenceMax)
	}
	if !status.AttributionBlocked {
		t.Error("attribution blocked flag should be set")
	}
}

func TestEvaluate_AgreementDoesNotBlock(t *testing.T) {
	win := "7d_click"
	input := fullInput()
	input.UserAttributionWindow = &win
	input.PlatformAttributionWindow = &win

	status := Evaluate(input, DefaultGateConfig(), testNow)
	if status.AttributionBlocked || !status.CanScoreConversion {
		t.Error("matching attribution windows must not block")
	}
}

func TestEvaluate_TotalOverOptionalFields(t *testing.T) {
	// Every combination of present/absent optionals must produce a status,
	// never a panic.
	pct := 0.5
	win := "7d_click"
	opts := []*float64{nil, &pct}
	wins := []*string{nil, &win}

	for _, ios := range opts {
		for _, modeled := range opts {
			for _, uw := range wins {
				for _, pw := range wins {
					input := fullInput()
					input.IOSTrafficPct = ios
					input.ModeledConversionPct = modeled
					input.UserAttributionWindow = uw
					input.PlatformAttributionWindow = pw
					status := Evaluate(input, DefaultGateConfig(), testNow)
					if !status.ConversionConfidenceMax.Valid() || !status.DeliveryConfidenceMax.Valid() {
						t.Fatalf("invalid ceiling produced for input %+v", input)
					}
				}
			}
		}
	}
}

func TestEvaluate_MessageOrder(t *testing.T) {
	// Trip every gate at once and check the message order follows the
	// evaluation order: age, spend, impressions, conversions, iOS, modeled,
	// attribution.
	userWin := "7d_click"
	platformWin := "1d_view"
	input := GateInput{
		FirstSeenAt:               core.NewTimestamp(testNow.Add(-1 * time.Hour)),
		TotalSpend:                10,
		Impressions:               100,
		Conversions:               2,
		UserAttributionWindow:     &userWin,
		PlatformAttributionWindow: &platformWin,
	}

	status := Evaluate(input, DefaultGateConfig(), testNow)

	wantOrder := []string{"too new", "Spend below", "impressions", "conversions", "iOS", "Modeled", "Attribution"}
	if len(status.Messages) != len(wantOrder) {
		t.Fatalf("got %d messages, want %d: %v", len(status.Messages), len(wantOrder), status.Messages)
	}
	for i, fragment := range wantOrder {
		if !strings.Contains(status.Messages[i], fragment) {
			t.Errorf("message[%d] = %q, want it to contain %q", i, status.Messages[i], fragment)
		}
	}
}
