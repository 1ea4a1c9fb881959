// Package export renders a client's tax summary as a downloadable
// report, either plain text or a spreadsheet.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/summary"
)

type incomeCategory struct {
	label string
	items []domain.TaxLineItem
}

func incomeCategories(s *domain.TaxSummary) []incomeCategory {
	return []incomeCategory{
		{"Wages & Salary", s.WagesIncome},
		{"Interest Income", s.InterestIncome},
		{"Dividend Income", s.DividendIncome},
		{"Business Income", s.BusinessIncome},
		{"Capital Gains", s.CapitalGains},
		{"Other Income", s.OtherIncome},
	}
}

// Text renders the preparer-facing plain text summary. Empty income
// categories are omitted; deductions and dependents sections only appear
// when the client reported any.
func Text(s *domain.TaxSummary, clientID string, taxYear int, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "TAX PREPARATION SUMMARY - %d\n", taxYear)
	fmt.Fprintf(&b, "Client: %s\n", clientID)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("1/2/2006"))
	b.WriteString("\n=== INCOME ===\n")

	for _, cat := range incomeCategories(s) {
		if len(cat.items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", cat.label)
		for _, item := range cat.items {
			verified := ""
			if item.Verified {
				verified = " [Verified]"
			}
			fmt.Fprintf(&b, "  %s - %s: %s%s\n", item.Source, item.Label, summary.FormatCurrency(item.Amount), verified)
		}
	}
	fmt.Fprintf(&b, "\nTOTAL INCOME: %s\n", summary.FormatCurrency(s.TotalIncome))

	b.WriteString("\n=== WITHHOLDINGS ===\n")
	fmt.Fprintf(&b, "Federal Tax Withheld: %s\n", summary.FormatCurrency(s.TotalFederalWithheld))
	fmt.Fprintf(&b, "State Tax Withheld: %s\n", summary.FormatCurrency(s.TotalStateWithheld))
	fmt.Fprintf(&b, "Social Security Tax: %s\n", summary.FormatCurrency(domain.SumLineItems(s.SocialSecurityTax)))
	fmt.Fprintf(&b, "Medicare Tax: %s\n", summary.FormatCurrency(domain.SumLineItems(s.MedicareTax)))

	if len(s.ClientDeductions) > 0 {
		b.WriteString("\n=== DEDUCTIONS (Client-Reported) ===\n")
		for _, d := range s.ClientDeductions {
			fmt.Fprintf(&b, "  %s: %s\n", d.Label, summary.FormatCurrency(d.Amount))
		}
		fmt.Fprintf(&b, "TOTAL DEDUCTIONS: %s\n", summary.FormatCurrency(s.TotalClientDeductions))
	}

	if len(s.Dependents) > 0 {
		b.WriteString("\n=== DEPENDENTS ===\n")
		for _, d := range s.Dependents {
			fmt.Fprintf(&b, "  %s (%s) - DOB: %s\n", d.Name, d.Relationship, d.DateOfBirth)
		}
	}

	return b.String()
}

// FileName builds the download name for an exported report.
func FileName(clientID string, taxYear int, extension string) string {
	safe := strings.ReplaceAll(strings.TrimSpace(clientID), " ", "_")
	return fmt.Sprintf("tax-summary-%s-%d.%s", safe, taxYear, extension)
}
