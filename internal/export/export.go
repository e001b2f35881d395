// Package export renders calculation results as XLSX workbooks.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"calckit/internal/bracket"
	"calckit/internal/finance"
	"calckit/internal/prefs"
)

// AmortizationMeta labels an amortization workbook.
type AmortizationMeta struct {
	Title         string
	Currency      prefs.Currency
	Principal     float64
	AnnualRatePct float64
	TermYears     int
}

// AmortizationWorkbook builds a workbook with a loan summary block and
// the full period-by-period schedule. The caller owns the file and must
// Close it.
func AmortizationWorkbook(meta AmortizationMeta, schedule finance.Schedule) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Schedule"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// Summary block
	f.SetCellValue(sheet, "A1", "Title")
	f.SetCellValue(sheet, "B1", meta.Title)
	f.SetCellValue(sheet, "A2", "Principal")
	f.SetCellValue(sheet, "B2", meta.Principal)
	f.SetCellValue(sheet, "A3", "Annual Rate")
	f.SetCellValue(sheet, "B3", fmt.Sprintf("%.2f%%", meta.AnnualRatePct))
	f.SetCellValue(sheet, "A4", "Term")
	f.SetCellValue(sheet, "B4", fmt.Sprintf("%d years", meta.TermYears))
	f.SetCellValue(sheet, "A5", "Periodic Payment")
	f.SetCellValue(sheet, "B5", schedule.Payment)
	f.SetCellValue(sheet, "A6", "Currency")
	f.SetCellValue(sheet, "B6", string(meta.Currency))

	const headerRow = 8
	setRow(f, sheet, headerRow, []interface{}{"Period", "Payment", "Interest", "Principal", "Balance"})

	for i, row := range schedule.Rows {
		setRow(f, sheet, headerRow+1+i, []interface{}{
			row.Period,
			row.Payment,
			row.Interest,
			row.Principal,
			row.Balance,
		})
	}

	totalsRow := headerRow + 1 + len(schedule.Rows)
	setRow(f, sheet, totalsRow, []interface{}{
		"Total",
		schedule.TotalPaid,
		schedule.TotalInterest,
		meta.Principal,
		0.0,
	})

	// Formatting
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheet, "A1", "A6", style)
	headerStart, _ := excelize.CoordinatesToCellName(1, headerRow)
	headerEnd, _ := excelize.CoordinatesToCellName(5, headerRow)
	f.SetCellStyle(sheet, headerStart, headerEnd, style)

	f.SetActiveSheet(index)
	return f, nil
}

// BracketWorkbook builds a workbook with the per-band breakdown of a
// bracket assessment. The caller owns the file and must Close it.
func BracketWorkbook(tableID string, currency prefs.Currency, a bracket.Assessment) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Breakdown"
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	f.SetCellValue(sheet, "A1", "Table")
	f.SetCellValue(sheet, "B1", tableID)
	f.SetCellValue(sheet, "A2", "Amount")
	f.SetCellValue(sheet, "B2", a.Amount)
	f.SetCellValue(sheet, "A3", "Currency")
	f.SetCellValue(sheet, "B3", string(currency))
	f.SetCellValue(sheet, "A4", "Effective Rate")
	f.SetCellValue(sheet, "B4", fmt.Sprintf("%.2f%%", a.EffectiveRate()*100))

	const headerRow = 6
	setRow(f, sheet, headerRow, []interface{}{"Lower Bound", "Rate", "Taxable", "Due"})

	for i, band := range a.Bands {
		setRow(f, sheet, headerRow+1+i, []interface{}{
			band.LowerBound,
			band.Rate,
			band.Taxable,
			band.Due,
		})
	}

	totalsRow := headerRow + 1 + len(a.Bands)
	setRow(f, sheet, totalsRow, []interface{}{"Total", "", a.Amount, a.Total})

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheet, "A1", "A4", style)
	headerStart, _ := excelize.CoordinatesToCellName(1, headerRow)
	headerEnd, _ := excelize.CoordinatesToCellName(4, headerRow)
	f.SetCellStyle(sheet, headerStart, headerEnd, style)

	f.SetActiveSheet(index)
	return f, nil
}

// SaveReport writes the workbook under reports/ and returns the path.
func SaveReport(f *excelize.File, name string) (string, error) {
	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join("reports", name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return path, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, value)
	}
}
