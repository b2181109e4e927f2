package excel

import (
	"path/filepath"
	"testing"
	"time"

	"adlens/domain/audit"
	"adlens/domain/baseline"
	"adlens/domain/confidence"
	"adlens/domain/core"
	"adlens/domain/recommendation"

	"github.com/xuri/excelize/v2"
)

func TestExportWritesAllSheets(t *testing.T) {
	now := core.NewTimestamp(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	report := AccountReport{
		Baselines: []*baseline.AccountBaseline{
			{
				AccountID: "acct_1",
				Segment:   baseline.Segment{ConversionType: "purchase", Placement: "feed", Objective: "conversions"},
				AvgCPA:    12.5, AvgROAS: 3.1, AvgCTR: 0.015, AvgCVR: 0.02, AvgCPM: 8.2,
				Quality: baseline.QualityHigh, TotalConversions: 420, DaysIncluded: 28,
				ComputedAt: now,
			},
		},
		Recommendations: []*recommendation.Recommendation{
			{
				ID: core.RecommendationID(core.NewID()), AccountID: "acct_1", CreativeID: "cr_1",
				Source: recommendation.SourceNarrative, Type: recommendation.TypeClarifyCTA,
				WhatToChange: "closing CTA", TargetRange: "one action verb", MetricToWatch: "cvr",
				RunDurationDays: 14, Confidence: confidence.Medium,
				Status:    recommendation.StatusPending,
				CreatedAt: now, UpdatedAt: now,
			},
		},
		Trail: []*audit.Entry{
			{TraceID: core.NewTraceID(), Step: 1, CreativeID: "cr_1", GateType: audit.GateScoring, At: now},
		},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := NewReportExporter().Export(report, path); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Baselines", "Recommendations", "Audit Trail"} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("GetRows(%q) error = %v", sheet, err)
		}
		if len(rows) != 2 {
			t.Errorf("sheet %q rows = %d, want header plus one data row", sheet, len(rows))
		}
	}

	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default sheet should be removed")
	}
}
