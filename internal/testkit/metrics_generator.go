package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"adlens/domain/baseline"
	"adlens/domain/core"

	"github.com/xuri/excelize/v2"
)

// GeneratorConfig shapes the synthetic daily history. The generator is
// seeded so demos and tests are reproducible.
type GeneratorConfig struct {
	Days      int
	Seed      int64
	StartDate time.Time

	DailySpend     float64 // Mean daily spend
	BaseCPA        float64 // Spend per conversion on a normal day
	PromoEvery     int     // Every Nth day is a promo spike (0 disables)
	PromoMultiple  float64 // Promo-day spend multiple
	BlackoutFrom   int     // First day of a tracking blackout (0 disables)
	BlackoutDays   int     // Blackout length: spend continues, conversions stop
	FatigueFromDay int     // Day after which CTR decays and CPM rises (0 disables)
}

// DefaultGeneratorConfig returns a 90-day history with one promo spike a
// week and no injected anomalies.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Days:          90,
		Seed:          42,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		DailySpend:    400,
		BaseCPA:       25,
		PromoEvery:    7,
		PromoMultiple: 3.0,
	}
}

// Generate produces a deterministic daily history for one segment.
func Generate(cfg GeneratorConfig) ([]baseline.DailyMetrics, error) {
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("days must be > 0")
	}
	if cfg.BaseCPA <= 0 {
		return nil, fmt.Errorf("base CPA must be > 0")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	days := make([]baseline.DailyMetrics, cfg.Days)

	for i := 0; i < cfg.Days; i++ {
		date := cfg.StartDate.AddDate(0, 0, i)
		spend := cfg.DailySpend * (0.8 + rng.Float64()*0.4)
		promo := cfg.PromoEvery > 0 && i > 0 && i%cfg.PromoEvery == 0
		if promo {
			spend *= cfg.PromoMultiple
		}

		ctr := 0.020 + rng.Float64()*0.005
		cpm := 9.0 + rng.Float64()*2.0
		if cfg.FatigueFromDay > 0 && i >= cfg.FatigueFromDay {
			decay := float64(i-cfg.FatigueFromDay) / float64(cfg.Days)
			ctr *= 1.0 - 0.6*decay
			cpm *= 1.0 + 0.5*decay
		}

		impressions := int64(spend / cpm * 1000)
		clicks := int64(float64(impressions) * ctr)
		conversions := int64(spend / cfg.BaseCPA * (0.85 + rng.Float64()*0.3))
		if inBlackout(i, cfg) {
			conversions = 0
		}

		days[i] = baseline.DailyMetrics{
			Date:        core.NewTimestamp(date),
			Spend:       round2(spend),
			Conversions: conversions,
			Revenue:     round2(float64(conversions) * cfg.BaseCPA * 2.5),
			Impressions: impressions,
			Clicks:      clicks,
			IsPromoDay:  promo,
		}
	}
	return days, nil
}

func inBlackout(day int, cfg GeneratorConfig) bool {
	return cfg.BlackoutDays > 0 && day >= cfg.BlackoutFrom && day < cfg.BlackoutFrom+cfg.BlackoutDays
}

var csvHeaders = []string{"date", "spend", "conversions", "revenue", "impressions", "clicks", "is_promo_day"}

// WriteCSV exports a generated history for inspection.
func WriteCSV(path string, days []baseline.DailyMetrics) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(csvHeaders); err != nil {
		return err
	}
	for _, day := range days {
		if err := w.Write(rowStrings(day)); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteXLSX exports a generated history as a spreadsheet.
func WriteXLSX(path string, days []baseline.DailyMetrics) error {
	f := excelize.NewFile()
	sheet := "Sheet1"
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return err
		}
		f.SetActiveSheet(idx)
	}

	for col, header := range csvHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	for row, day := range days {
		for col, value := range rowStrings(day) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

func rowStrings(day baseline.DailyMetrics) []string {
	return []string{
		day.Date.Time().Format("2006-01-02"),
		strconv.FormatFloat(day.Spend, 'f', 2, 64),
		strconv.FormatInt(day.Conversions, 10),
		strconv.FormatFloat(day.Revenue, 'f', 2, 64),
		strconv.FormatInt(day.Impressions, 10),
		strconv.FormatInt(day.Clicks, 10),
		strconv.FormatBool(day.IsPromoDay),
	}
}

func round2(x float64) float64 {
	return float64(int64(x*100+0.5)) / 100
}
