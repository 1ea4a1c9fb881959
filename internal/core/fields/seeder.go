package fields

import (
	"github.com/jfaulkner/taxdesk/internal/core/classify"
	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

// filenameNameConfidence scores a name guessed from the filename: below a
// real extraction would score and well below the 1.0 a preparer review sets.
const filenameNameConfidence = 0.6

// entityNameFields are the per-type slots a filename-derived name may seed.
var entityNameFields = map[string]bool{
	"employer_name": true,
	"payer_name":    true,
	"broker_name":   true,
	"vendor_name":   true,
	"bank_name":     true,
	"business_name": true,
}

// Seed produces the initial extracted-field records for a newly uploaded
// document: one per expected field, empty at zero confidence, except entity
// name slots pre-filled from the filename when a name could be guessed.
// Types with no schema get no records at all.
func Seed(filename string, docType domain.DocumentType) []domain.SeededField {
	expected := ExpectedFields(docType)
	if len(expected) == 0 {
		return nil
	}

	extractedName := classify.ExtractName(filename, docType)

	seeded := make([]domain.SeededField, 0, len(expected))
	for _, fieldName := range expected {
		field := domain.SeededField{
			FieldName:        fieldName,
			ExtractionMethod: domain.MethodDeterministic,
		}
		if extractedName != "" && entityNameFields[fieldName] {
			value := extractedName
			field.FieldValue = &value
			field.Confidence = filenameNameConfidence
		}
		seeded = append(seeded, field)
	}
	return seeded
}
