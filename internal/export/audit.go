package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CrankHint/internal/engine"
)

// auditHeaders are the columns of the audit sheet.
var auditHeaders = []string{
	"Scenario", "Targets", "Curated order", "Curated cost",
	"Exhaustive order", "Exhaustive cost", "Regret", "Regret %", "Error",
}

// ExportAuditXLSX writes a curated-versus-exhaustive comparison to an Excel
// workbook with an "Audit" sheet (one row per scenario) and a "Summary" sheet.
func ExportAuditXLSX(path string, results []engine.ComparisonResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no audit results to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Audit"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	regretStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "C00000"},
	})
	if err != nil {
		return err
	}

	if err := setRow(f, sheet, 1, toCells(auditHeaders)); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(auditHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, r := range results {
		rowNum := i + 2
		row := []interface{}{r.Scenario.Name, len(r.Scenario.Targets)}
		if r.Err != nil {
			row = append(row, "", "", "", "", "", "", r.Err.Error())
		} else {
			row = append(row,
				FormatOrder(r.Curated.Order), r.Curated.Cost,
				FormatOrder(r.Exhaustive.Order), r.Exhaustive.Cost,
				r.Regret, fmt.Sprintf("%.2f", r.RegretPercent()), "",
			)
		}
		if err := setRow(f, sheet, rowNum, row); err != nil {
			return err
		}
		if r.Regret > 0 {
			first, _ := excelize.CoordinatesToCellName(1, rowNum)
			end, _ := excelize.CoordinatesToCellName(len(auditHeaders), rowNum)
			if err := f.SetCellStyle(sheet, first, end, regretStyle); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}

	if err := writeAuditSummary(f, engine.Summarize(results), headerStyle); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeAuditSummary(f *excelize.File, s engine.AuditSummary, style int) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Scenarios", s.Scenarios},
		{"Failed", s.Failed},
		{"Curated worse than best", s.Suboptimal},
		{"Largest regret", s.MaxRegret},
		{"Largest regret scenario", s.MaxName},
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", style); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 26)
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
