package excel

import (
	"fmt"

	"adlens/domain/audit"
	"adlens/domain/baseline"
	"adlens/domain/recommendation"

	"github.com/xuri/excelize/v2"
)

// ReportExporter writes account performance reports as XLSX workbooks so
// analysts can review baselines, recommendations and decision trails
// outside the API.
type ReportExporter struct{}

// NewReportExporter creates a new report exporter
func NewReportExporter() *ReportExporter {
	return &ReportExporter{}
}

// AccountReport bundles everything one exported workbook contains.
type AccountReport struct {
	Baselines       []*baseline.AccountBaseline
	Recommendations []*recommendation.Recommendation
	Trail           []*audit.Entry
}

// Export writes the report workbook to filePath, one sheet per section.
func (e *ReportExporter) Export(report AccountReport, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeBaselines(f, report.Baselines); err != nil {
		return fmt.Errorf("failed to write baselines sheet: %w", err)
	}
	if err := e.writeRecommendations(f, report.Recommendations); err != nil {
		return fmt.Errorf("failed to write recommendations sheet: %w", err)
	}
	if err := e.writeTrail(f, report.Trail); err != nil {
		return fmt.Errorf("failed to write audit sheet: %w", err)
	}

	// Drop the default sheet excelize creates
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (e *ReportExporter) writeBaselines(f *excelize.File, baselines []*baseline.AccountBaseline) error {
	const sheet = "Baselines"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{
		"Conversion Type", "Placement", "Objective",
		"Avg CPA", "Avg ROAS", "Avg CTR", "Avg CVR", "Avg CPM",
		"Quality", "Total Conversions", "Days Included", "Promo Days Excluded", "Computed At",
	}
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return err
	}

	for i, b := range baselines {
		cells := []interface{}{
			b.Segment.ConversionType, b.Segment.Placement, b.Segment.Objective,
			b.AvgCPA, b.AvgROAS, b.AvgCTR, b.AvgCVR, b.AvgCPM,
			string(b.Quality), b.TotalConversions, b.DaysIncluded, b.PromoDaysExcluded,
			b.ComputedAt.String(),
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func (e *ReportExporter) writeRecommendations(f *excelize.File, recs []*recommendation.Recommendation) error {
	const sheet = "Recommendations"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{
		"ID", "Creative", "Source", "Type", "What To Change",
		"Target Range", "Metric", "Run Days", "Confidence", "Status",
		"Outcome", "CPA Change %",
	}
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return err
	}

	for i, rec := range recs {
		outcome, cpaChange := "", ""
		if rec.Outcome != nil {
			outcome = string(rec.Outcome.Verdict)
			cpaChange = fmt.Sprintf("%.1f%%", rec.Outcome.CPAChangePct*100)
		}
		cells := []interface{}{
			rec.ID.String(), rec.CreativeID.String(), string(rec.Source), string(rec.Type),
			rec.WhatToChange, rec.TargetRange, rec.MetricToWatch, rec.RunDurationDays,
			rec.Confidence.String(), string(rec.Status), outcome, cpaChange,
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func (e *ReportExporter) writeTrail(f *excelize.File, trail []*audit.Entry) error {
	const sheet = "Audit Trail"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Trace", "Step", "Creative", "Gate", "Blocked", "Reason", "At"}
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return err
	}

	for i, entry := range trail {
		cells := []interface{}{
			entry.TraceID.String(), entry.Step, entry.CreativeID.String(),
			string(entry.GateType), entry.Blocked, entry.Reason, entry.At.String(),
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
