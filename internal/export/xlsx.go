package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/summary"
)

// XLSX renders the summary as a single-sheet workbook: one row per line
// item with its category, plus totals and the client-reported sections.
func XLSX(s *domain.TaxSummary, clientID string, taxYear int) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Summary"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// The workbook starts with a default sheet we don't use.
	_ = f.DeleteSheet("Sheet1")

	row := 1
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
	writeLine := func(values ...any) {
		for i, v := range values {
			write(i+1, v)
		}
		row++
	}

	writeLine(fmt.Sprintf("Tax Preparation Summary - %d", taxYear))
	writeLine("Client", clientID)
	row++

	writeLine("Category", "Source", "Item", "Amount", "Verified")
	for _, cat := range incomeCategories(s) {
		for _, item := range cat.items {
			verified := ""
			if item.Verified {
				verified = "Yes"
			}
			writeLine(cat.label, item.Source, item.Label, summary.FormatCurrency(item.Amount), verified)
		}
	}
	writeLine("Total Income", "", "", summary.FormatCurrency(s.TotalIncome), "")
	row++

	writeLine("Withholdings")
	writeLine("Federal Tax Withheld", "", "", summary.FormatCurrency(s.TotalFederalWithheld), "")
	writeLine("State Tax Withheld", "", "", summary.FormatCurrency(s.TotalStateWithheld), "")
	writeLine("Social Security Tax", "", "", summary.FormatCurrency(domain.SumLineItems(s.SocialSecurityTax)), "")
	writeLine("Medicare Tax", "", "", summary.FormatCurrency(domain.SumLineItems(s.MedicareTax)), "")

	if len(s.ClientDeductions) > 0 {
		row++
		writeLine("Deductions (Client-Reported)")
		for _, d := range s.ClientDeductions {
			writeLine("", "", d.Label, summary.FormatCurrency(d.Amount), "")
		}
		writeLine("Total Deductions", "", "", summary.FormatCurrency(s.TotalClientDeductions), "")
	}

	if len(s.Dependents) > 0 {
		row++
		writeLine("Dependents")
		for _, d := range s.Dependents {
			writeLine("", d.Name, d.Relationship, d.DateOfBirth, "")
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 32)
	_ = f.SetColWidth(sheet, "C", "C", 32)
	_ = f.SetColWidth(sheet, "D", "D", 16)
	_ = f.SetColWidth(sheet, "E", "E", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
