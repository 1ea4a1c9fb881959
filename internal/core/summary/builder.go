// Package summary builds the categorized, deduplicated tax rollup for a
// client and tax year out of verified extracted fields and the client's
// self-reported entries. Building is pure: a fresh summary is computed from
// the inputs on every call and nothing is cached or mutated.
package summary

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/fields"
)

type incomeBucket int

const (
	wagesIncome incomeBucket = iota
	interestIncome
	dividendIncome
	businessIncome
	capitalGains
	otherIncome
)

type withholdingBucket int

const (
	federalWithheld withholdingBucket = iota
	stateWithheld
	socialSecurityTax
	medicareTax
)

// incomeFieldMap routes extracted field names to income buckets. A field
// name appears in at most one of the two routing tables.
var incomeFieldMap = map[string]incomeBucket{
	"wages_tips_compensation":  wagesIncome,
	"interest_income":          interestIncome,
	"ordinary_dividends":       dividendIncome,
	"qualified_dividends":      dividendIncome,
	"nonemployee_compensation": otherIncome,
	"gross_receipts":           businessIncome,
	"net_profit_loss":          businessIncome,
	"gain_loss":                capitalGains,
	"proceeds":                 capitalGains,
	"rents":                    otherIncome,
	"royalties":                otherIncome,
	"other_income":             otherIncome,
	"amount":                   otherIncome,
}

var withholdingFieldMap = map[string]withholdingBucket{
	"federal_tax_withheld": federalWithheld,
	"state_tax_withheld":   stateWithheld,
	"social_security_tax":  socialSecurityTax,
	"medicare_tax":         medicareTax,
}

// clientIncomeMap routes a self-reported income source's type to a bucket.
// Unrecognized types land in other income.
var clientIncomeMap = map[string]incomeBucket{
	"w2_wages":        wagesIncome,
	"1099_int":        interestIncome,
	"1099_div":        dividendIncome,
	"1099_nec":        otherIncome,
	"1099_misc":       otherIncome,
	"1099_b":          capitalGains,
	"business":        businessIncome,
	"rental":          otherIncome,
	"retirement":      otherIncome,
	"social_security": otherIncome,
	"other":           otherIncome,
}

// sourceNameFields are the per-document slots preferred over the filename
// when labeling where a line item came from.
var sourceNameFields = map[string]bool{
	"employer_name": true,
	"payer_name":    true,
	"broker_name":   true,
	"business_name": true,
	"vendor_name":   true,
	"bank_name":     true,
}

// Build computes the tax summary. extracted carries every field row for the
// client and tax year joined with its document; taxInfo may be nil, which
// contributes nothing. Build never fails: rows whose values do not parse as
// numbers, or parse to exactly zero, are skipped silently.
func Build(extracted []domain.FieldWithDocument, taxInfo *domain.ClientTaxInfo) domain.TaxSummary {
	s := domain.TaxSummary{
		WagesIncome:       []domain.TaxLineItem{},
		InterestIncome:    []domain.TaxLineItem{},
		DividendIncome:    []domain.TaxLineItem{},
		BusinessIncome:    []domain.TaxLineItem{},
		CapitalGains:      []domain.TaxLineItem{},
		OtherIncome:       []domain.TaxLineItem{},
		FederalWithheld:   []domain.TaxLineItem{},
		StateWithheld:     []domain.TaxLineItem{},
		SocialSecurityTax: []domain.TaxLineItem{},
		MedicareTax:       []domain.TaxLineItem{},
		ClientDeductions:  []domain.TaxLineItem{},
		Dependents:        []domain.Dependent{},
	}

	sourceLabels := documentSourceLabels(extracted)

	for _, field := range extracted {
		amount, ok := parseAmount(field.FieldValue)
		if !ok || amount.IsZero() {
			continue
		}

		sourceName := sourceLabels[field.DocumentID]
		if sourceName == "" {
			sourceName = "Document"
		}

		item := domain.TaxLineItem{
			Label:      fields.Label(field.FieldName),
			Amount:     amount,
			Source:     sourceName,
			Verified:   field.ManuallyVerified,
			DocumentID: field.DocumentID,
			FieldID:    field.ID,
		}

		if bucket, ok := incomeFieldMap[field.FieldName]; ok {
			if suppressed(field, extracted) {
				continue
			}
			appendIncome(&s, bucket, item)
		}

		if bucket, ok := withholdingFieldMap[field.FieldName]; ok {
			appendWithholding(&s, bucket, item)
		}
	}

	if taxInfo != nil {
		mergeClientReported(&s, taxInfo)
	}

	s.TotalIncome = domain.SumLineItems(s.WagesIncome).
		Add(domain.SumLineItems(s.InterestIncome)).
		Add(domain.SumLineItems(s.DividendIncome)).
		Add(domain.SumLineItems(s.BusinessIncome)).
		Add(domain.SumLineItems(s.CapitalGains)).
		Add(domain.SumLineItems(s.OtherIncome))
	s.TotalFederalWithheld = domain.SumLineItems(s.FederalWithheld)
	s.TotalStateWithheld = domain.SumLineItems(s.StateWithheld)
	s.TotalClientDeductions = domain.SumLineItems(s.ClientDeductions)

	return s
}

// documentSourceLabels picks a display label per document: a populated
// entity-name field value when one exists, otherwise the file name.
func documentSourceLabels(extracted []domain.FieldWithDocument) map[string]string {
	labels := make(map[string]string)
	for _, field := range extracted {
		if field.FileName == "" {
			continue
		}
		if _, done := labels[field.DocumentID]; done {
			continue
		}
		label := field.FileName
		for _, candidate := range extracted {
			if candidate.DocumentID == field.DocumentID &&
				sourceNameFields[candidate.FieldName] &&
				candidate.FieldValue != nil && *candidate.FieldValue != "" {
				label = *candidate.FieldValue
				break
			}
		}
		labels[field.DocumentID] = label
	}
	return labels
}

// suppressed applies the two double-count rules: a document's gross proceeds
// are dropped when it also reports a net gain/loss, and gross receipts are
// dropped when it also reports a net profit/loss. Exactly these two pairs;
// no other fields suppress each other.
func suppressed(field domain.FieldWithDocument, extracted []domain.FieldWithDocument) bool {
	switch field.FieldName {
	case "proceeds":
		return hasPopulatedField(extracted, field.DocumentID, "gain_loss")
	case "gross_receipts":
		return hasPopulatedField(extracted, field.DocumentID, "net_profit_loss")
	default:
		return false
	}
}

func hasPopulatedField(extracted []domain.FieldWithDocument, documentID, fieldName string) bool {
	for _, f := range extracted {
		if f.DocumentID == documentID && f.FieldName == fieldName &&
			f.FieldValue != nil && *f.FieldValue != "" {
			return true
		}
	}
	return false
}

// mergeClientReported appends self-reported income and deductions. These are
// never treated as verified, regardless of anything on the source record.
func mergeClientReported(s *domain.TaxSummary, taxInfo *domain.ClientTaxInfo) {
	for _, src := range taxInfo.IncomeSources {
		amount, ok := parseAmountString(src.Amount)
		if !ok || amount.IsZero() {
			continue
		}
		label := src.SourceName
		if label == "" {
			label = src.Type
		}
		bucket, ok := clientIncomeMap[src.Type]
		if !ok {
			bucket = otherIncome
		}
		appendIncome(s, bucket, domain.TaxLineItem{
			Label:    label,
			Amount:   amount,
			Source:   "Client-reported",
			Verified: false,
		})
	}

	for _, ded := range taxInfo.Deductions {
		amount, ok := parseAmountString(ded.Amount)
		if !ok || amount.IsZero() {
			continue
		}
		label := ded.Description
		if label == "" {
			label = ded.Category
		}
		s.ClientDeductions = append(s.ClientDeductions, domain.TaxLineItem{
			Label:    label,
			Amount:   amount,
			Source:   "Client-reported",
			Verified: false,
		})
	}

	// Dependents pass through untouched; validation is the preparer's job.
	s.Dependents = append(s.Dependents, taxInfo.Dependents...)
}

func appendIncome(s *domain.TaxSummary, bucket incomeBucket, item domain.TaxLineItem) {
	switch bucket {
	case wagesIncome:
		s.WagesIncome = append(s.WagesIncome, item)
	case interestIncome:
		s.InterestIncome = append(s.InterestIncome, item)
	case dividendIncome:
		s.DividendIncome = append(s.DividendIncome, item)
	case businessIncome:
		s.BusinessIncome = append(s.BusinessIncome, item)
	case capitalGains:
		s.CapitalGains = append(s.CapitalGains, item)
	case otherIncome:
		s.OtherIncome = append(s.OtherIncome, item)
	}
}

func appendWithholding(s *domain.TaxSummary, bucket withholdingBucket, item domain.TaxLineItem) {
	switch bucket {
	case federalWithheld:
		s.FederalWithheld = append(s.FederalWithheld, item)
	case stateWithheld:
		s.StateWithheld = append(s.StateWithheld, item)
	case socialSecurityTax:
		s.SocialSecurityTax = append(s.SocialSecurityTax, item)
	case medicareTax:
		s.MedicareTax = append(s.MedicareTax, item)
	}
}

func parseAmount(value *string) (decimal.Decimal, bool) {
	if value == nil {
		return decimal.Zero, false
	}
	return parseAmountString(*value)
}

func parseAmountString(value string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}
