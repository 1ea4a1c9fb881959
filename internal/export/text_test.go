package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

func sampleSummary() *domain.TaxSummary {
	return &domain.TaxSummary{
		WagesIncome: []domain.TaxLineItem{
			{Label: "Wages (Box 1)", Amount: decimal.RequireFromString("55000"), Source: "Acme", Verified: true},
		},
		InterestIncome: []domain.TaxLineItem{
			{Label: "Interest Income (Box 1)", Amount: decimal.RequireFromString("1200.50"), Source: "First National Bank"},
		},
		TotalIncome:          decimal.RequireFromString("56200.50"),
		TotalFederalWithheld: decimal.RequireFromString("8000"),
		TotalStateWithheld:   decimal.RequireFromString("2500"),
		SocialSecurityTax: []domain.TaxLineItem{
			{Label: "Social Security Tax Withheld (Box 4)", Amount: decimal.RequireFromString("3410")},
		},
		ClientDeductions: []domain.TaxLineItem{
			{Label: "Home office", Amount: decimal.RequireFromString("1500")},
		},
		TotalClientDeductions: decimal.RequireFromString("1500"),
		Dependents: []domain.Dependent{
			{Name: "Sam Doe", Relationship: "child", DateOfBirth: "2015-03-02"},
		},
	}
}

func TestTextRendersSectionsAndItems(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	got := Text(sampleSummary(), "client-1", 2024, now)

	want := []string{
		"TAX PREPARATION SUMMARY - 2024",
		"Client: client-1",
		"Generated: 4/1/2025",
		"=== INCOME ===",
		"Wages & Salary:",
		"  Acme - Wages (Box 1): $55,000.00 [Verified]",
		"Interest Income:",
		"  First National Bank - Interest Income (Box 1): $1,200.50",
		"TOTAL INCOME: $56,200.50",
		"=== WITHHOLDINGS ===",
		"Federal Tax Withheld: $8,000.00",
		"State Tax Withheld: $2,500.00",
		"Social Security Tax: $3,410.00",
		"Medicare Tax: $0.00",
		"=== DEDUCTIONS (Client-Reported) ===",
		"  Home office: $1,500.00",
		"TOTAL DEDUCTIONS: $1,500.00",
		"=== DEPENDENTS ===",
		"  Sam Doe (child) - DOB: 2015-03-02",
	}
	for _, line := range want {
		if !strings.Contains(got, line) {
			t.Fatalf("report missing line %q\n%s", line, got)
		}
	}
}

func TestTextOmitsEmptyOptionalSections(t *testing.T) {
	s := &domain.TaxSummary{}
	got := Text(s, "client-1", 2024, time.Now())

	if strings.Contains(got, "DEDUCTIONS") {
		t.Fatalf("deductions section should be omitted when empty:\n%s", got)
	}
	if strings.Contains(got, "DEPENDENTS") {
		t.Fatalf("dependents section should be omitted when empty:\n%s", got)
	}
	if strings.Contains(got, "Wages & Salary:") {
		t.Fatalf("empty income category should be omitted:\n%s", got)
	}
	if !strings.Contains(got, "TOTAL INCOME: $0.00") {
		t.Fatalf("total income line must always render:\n%s", got)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("client 1", 2024, "txt"); got != "tax-summary-client_1-2024.txt" {
		t.Fatalf("FileName() = %q", got)
	}
}

func TestXLSXProducesWorkbook(t *testing.T) {
	data, err := XLSX(sampleSummary(), "client-1", 2024)
	if err != nil {
		t.Fatalf("XLSX() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected workbook bytes")
	}
	// XLSX files are zip archives.
	if data[0] != 'P' || data[1] != 'K' {
		t.Fatalf("expected zip magic, got %v", data[:2])
	}
}
