package domain

import "github.com/shopspring/decimal"

// TaxLineItem is one contribution to a summary bucket. It is ephemeral:
// summaries are rebuilt from field rows and client tax info on every request.
type TaxLineItem struct {
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
	Source     string          `json:"source"`
	Verified   bool            `json:"verified"`
	DocumentID string          `json:"document_id,omitempty"`
	FieldID    string          `json:"field_id,omitempty"`
}

// TaxSummary is the categorized rollup for one client and tax year.
// TotalIncome always equals the sum over the six income buckets; social
// security and medicare lists carry no pre-aggregated total.
type TaxSummary struct {
	WagesIncome    []TaxLineItem   `json:"wages_income"`
	InterestIncome []TaxLineItem   `json:"interest_income"`
	DividendIncome []TaxLineItem   `json:"dividend_income"`
	BusinessIncome []TaxLineItem   `json:"business_income"`
	CapitalGains   []TaxLineItem   `json:"capital_gains"`
	OtherIncome    []TaxLineItem   `json:"other_income"`
	TotalIncome    decimal.Decimal `json:"total_income"`

	FederalWithheld      []TaxLineItem   `json:"federal_withheld"`
	StateWithheld        []TaxLineItem   `json:"state_withheld"`
	SocialSecurityTax    []TaxLineItem   `json:"social_security_tax"`
	MedicareTax          []TaxLineItem   `json:"medicare_tax"`
	TotalFederalWithheld decimal.Decimal `json:"total_federal_withheld"`
	TotalStateWithheld   decimal.Decimal `json:"total_state_withheld"`

	ClientDeductions      []TaxLineItem   `json:"client_deductions"`
	TotalClientDeductions decimal.Decimal `json:"total_client_deductions"`

	Dependents []Dependent `json:"dependents"`
}

// SumLineItems adds up the amounts of a bucket. Callers needing a single
// number for social security or medicare tax use this on the raw lists.
func SumLineItems(items []TaxLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}
