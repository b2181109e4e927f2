package testkit

import (
	"testing"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	first, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != cfg.Days {
		t.Fatalf("got %d days, want %d", len(first), cfg.Days)
	}
	for i := range first {
		if first[i].Spend != second[i].Spend || first[i].Conversions != second[i].Conversions {
			t.Fatalf("day %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerate_PromoDaysFlagged(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Days = 30

	days, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	promoCount := 0
	for i, day := range days {
		if day.IsPromoDay {
			promoCount++
			if i%cfg.PromoEvery != 0 {
				t.Errorf("day %d flagged promo unexpectedly", i)
			}
		}
	}
	if promoCount == 0 {
		t.Error("expected some promo days in a 30-day history")
	}
}

func TestGenerate_BlackoutZeroesConversions(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Days = 30
	cfg.BlackoutFrom = 10
	cfg.BlackoutDays = 3

	days, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 10; i < 13; i++ {
		if days[i].Conversions != 0 {
			t.Errorf("day %d: conversions = %d, want 0 during blackout", i, days[i].Conversions)
		}
		if days[i].Spend == 0 {
			t.Errorf("day %d: spend must continue during a tracking blackout", i)
		}
	}
	if days[13].Conversions == 0 {
		t.Error("conversions should resume after the blackout")
	}
}

func TestGenerate_Validation(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Days = 0
	if _, err := Generate(cfg); err == nil {
		t.Error("expected error for zero days")
	}

	cfg = DefaultGeneratorConfig()
	cfg.BaseCPA = 0
	if _, err := Generate(cfg); err == nil {
		t.Error("expected error for zero base CPA")
	}
}
