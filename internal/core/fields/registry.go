// Package fields holds the static per-type field schema and the seeder that
// turns a freshly classified upload into placeholder extracted-field rows.
package fields

import (
	"strings"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

// fieldDefinitions lists the expected structured fields per document type,
// in review-screen order. Types with no entry (or an empty list) need no
// data entry at all.
var fieldDefinitions = map[domain.DocumentType][]string{
	domain.TypeW2: {
		"employer_name",
		"employer_ein",
		"wages_tips_compensation",
		"federal_tax_withheld",
		"social_security_wages",
		"social_security_tax",
		"medicare_wages",
		"medicare_tax",
		"state",
		"state_wages",
		"state_tax_withheld",
	},
	domain.Type1099INT: {
		"payer_name",
		"payer_tin",
		"interest_income",
		"early_withdrawal_penalty",
		"federal_tax_withheld",
	},
	domain.Type1099DIV: {
		"payer_name",
		"payer_tin",
		"ordinary_dividends",
		"qualified_dividends",
		"capital_gain_distributions",
		"federal_tax_withheld",
	},
	domain.Type1099MISC: {
		"payer_name",
		"payer_tin",
		"rents",
		"royalties",
		"other_income",
		"federal_tax_withheld",
	},
	domain.Type1099NEC: {
		"payer_name",
		"payer_tin",
		"nonemployee_compensation",
		"federal_tax_withheld",
	},
	domain.Type1099B: {
		"broker_name",
		"broker_tin",
		"proceeds",
		"cost_basis",
		"gain_loss",
		"wash_sale_loss",
	},
	domain.TypeScheduleC: {
		"business_name",
		"business_ein",
		"gross_receipts",
		"total_expenses",
		"net_profit_loss",
	},
	domain.TypeReceipt: {
		"vendor_name",
		"expense_category",
		"amount",
		"date",
	},
	domain.TypeBankStatement: {
		"bank_name",
		"account_type",
		"statement_period",
		"ending_balance",
	},
	domain.TypeOther: {},
}

var fieldLabels = map[string]string{
	"employer_name":              "Employer Name",
	"employer_ein":               "Employer EIN",
	"wages_tips_compensation":    "Wages (Box 1)",
	"federal_tax_withheld":       "Federal Tax Withheld",
	"social_security_wages":      "Social Security Wages",
	"social_security_tax":        "Social Security Tax",
	"medicare_wages":             "Medicare Wages",
	"medicare_tax":               "Medicare Tax",
	"state":                      "State",
	"state_wages":                "State Wages",
	"state_tax_withheld":         "State Tax Withheld",
	"payer_name":                 "Payer Name",
	"payer_tin":                  "Payer TIN",
	"interest_income":            "Interest Income (Box 1)",
	"early_withdrawal_penalty":   "Early Withdrawal Penalty",
	"ordinary_dividends":         "Ordinary Dividends (Box 1a)",
	"qualified_dividends":        "Qualified Dividends (Box 1b)",
	"capital_gain_distributions": "Capital Gain Distributions",
	"rents":                      "Rents",
	"royalties":                  "Royalties",
	"other_income":               "Other Income",
	"nonemployee_compensation":   "Nonemployee Compensation (Box 1)",
	"broker_name":                "Broker Name",
	"broker_tin":                 "Broker TIN",
	"proceeds":                   "Proceeds",
	"cost_basis":                 "Cost Basis",
	"gain_loss":                  "Gain/Loss",
	"wash_sale_loss":             "Wash Sale Loss",
	"business_name":              "Business Name",
	"business_ein":               "Business EIN",
	"gross_receipts":             "Gross Receipts",
	"total_expenses":             "Total Expenses",
	"net_profit_loss":            "Net Profit/Loss",
	"vendor_name":                "Vendor Name",
	"expense_category":           "Category",
	"amount":                     "Amount",
	"date":                       "Date",
	"bank_name":                  "Bank Name",
	"account_type":               "Account Type",
	"statement_period":           "Statement Period",
	"ending_balance":             "Ending Balance",
}

// ExpectedFields returns the ordered field names for a document type.
func ExpectedFields(docType domain.DocumentType) []string {
	return fieldDefinitions[docType]
}

// RequiresDataEntry reports whether documents of this type carry fields a
// preparer has to fill in during review.
func RequiresDataEntry(docType domain.DocumentType) bool {
	return len(fieldDefinitions[docType]) > 0
}

// Label returns the human-readable label for a field name, falling back to
// a snake_case to Title Case transform for names outside the curated table.
func Label(fieldName string) string {
	if label, ok := fieldLabels[fieldName]; ok {
		return label
	}
	words := strings.Split(fieldName, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
