package domain

import "time"

// ClientTaxInfo is the loosely structured self-reported blob a client fills
// in for a tax year. Amounts stay strings; parsing happens at summary time
// and unparseable entries are silently skipped there.
type ClientTaxInfo struct {
	ClientID      string         `json:"client_id"`
	TaxYear       int            `json:"tax_year"`
	IncomeSources []IncomeSource `json:"income_sources"`
	Deductions    []Deduction    `json:"deductions"`
	Dependents    []Dependent    `json:"dependents"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type IncomeSource struct {
	Type       string `json:"type"`
	SourceName string `json:"source_name"`
	Amount     string `json:"amount"`
}

type Deduction struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

type Dependent struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	DateOfBirth  string `json:"date_of_birth"`
}
