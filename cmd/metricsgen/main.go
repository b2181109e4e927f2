// Command metricsgen writes a deterministic synthetic daily ad-metrics
// history for demos and fixture files. Promo spikes, tracking blackouts and
// fatigue drift can be injected to exercise the exclusion and diagnosis
// paths.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"adlens/internal/testkit"
)

func main() {
	out := flag.String("out", "daily_metrics.xlsx", "output file path")
	days := flag.Int("days", 90, "number of days")
	format := flag.String("format", "", "output format: xlsx or csv (default inferred from -out)")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	start := flag.String("start", "2025-01-01", "start date (YYYY-MM-DD)")
	promoEvery := flag.Int("promo-every", 7, "every Nth day is a promo spike (0 disables)")
	blackoutFrom := flag.Int("blackout-from", 0, "first day of a tracking blackout")
	blackoutDays := flag.Int("blackout-days", 0, "blackout length in days (0 disables)")
	fatigueFrom := flag.Int("fatigue-from", 0, "day after which CTR decays and CPM rises (0 disables)")
	flag.Parse()

	if *days <= 0 {
		fmt.Fprintln(os.Stderr, "days must be > 0")
		os.Exit(2)
	}

	startDate, err := time.ParseInLocation("2006-01-02", *start, time.UTC)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -start (expected YYYY-MM-DD):", err)
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		if strings.ToLower(filepath.Ext(*out)) == ".csv" {
			fmtName = "csv"
		} else {
			fmtName = "xlsx"
		}
	}

	cfg := testkit.DefaultGeneratorConfig()
	cfg.Days = *days
	cfg.Seed = *seed
	cfg.StartDate = startDate
	cfg.PromoEvery = *promoEvery
	cfg.BlackoutFrom = *blackoutFrom
	cfg.BlackoutDays = *blackoutDays
	cfg.FatigueFromDay = *fatigueFrom

	series, err := testkit.Generate(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error generating history:", err)
		os.Exit(1)
	}

	switch fmtName {
	case "csv":
		err = testkit.WriteCSV(*out, series)
	case "xlsx":
		err = testkit.WriteXLSX(*out, series)
	default:
		fmt.Fprintln(os.Stderr, "unknown format:", fmtName)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error writing output:", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d days to %s\n", len(series), *out)
}
