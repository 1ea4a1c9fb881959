package domain

import "time"

// ExtractionMethod records how an extracted field value was produced.
// Seeded rows are always deterministic; preparer edits become manual.
type ExtractionMethod string

const (
	MethodDeterministic ExtractionMethod = "deterministic"
	MethodOCR           ExtractionMethod = "ocr"
	MethodAI            ExtractionMethod = "ai"
	MethodManual        ExtractionMethod = "manual"
)

// ExtractedField is one expected structured value on a document, created in
// bulk when the document is seeded and edited during preparer review.
// Confidence is the internal [0,1] scale; seeded rows start at 0. Nil only
// appears for legacy rows with no score recorded.
type ExtractedField struct {
	ID               string           `json:"id"`
	DocumentID       string           `json:"document_id"`
	FieldName        string           `json:"field_name"`
	FieldValue       *string          `json:"field_value"`
	Confidence       *float64         `json:"confidence"`
	ExtractionMethod ExtractionMethod `json:"extraction_method"`
	ManuallyVerified bool             `json:"manually_verified"`
	VerifiedBy       *string          `json:"verified_by,omitempty"`
	VerifiedAt       *time.Time       `json:"verified_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// FieldWithDocument joins a field row with the owning document's identity,
// which the summary builder needs for source labeling and classification.
type FieldWithDocument struct {
	ExtractedField
	FileName     string       `json:"file_name"`
	DocumentType DocumentType `json:"document_type"`
}

// SeededField is the pre-persistence shape produced by the field seeder.
type SeededField struct {
	FieldName        string
	FieldValue       *string
	Confidence       float64
	ExtractionMethod ExtractionMethod
}
