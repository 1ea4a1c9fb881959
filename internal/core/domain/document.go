package domain

import "time"

// DocumentType is the closed set of tax form types the portal understands.
// It drives both filename classification and the expected-field schema.
type DocumentType string

const (
	TypeW2            DocumentType = "w2"
	Type1099INT       DocumentType = "1099_int"
	Type1099DIV       DocumentType = "1099_div"
	Type1099MISC      DocumentType = "1099_misc"
	Type1099NEC       DocumentType = "1099_nec"
	Type1099B         DocumentType = "1099_b"
	TypeScheduleC     DocumentType = "schedule_c"
	TypeReceipt       DocumentType = "receipt"
	TypeBankStatement DocumentType = "bank_statement"
	TypeOther         DocumentType = "other"
)

type DocumentStatus string

const (
	StatusUploaded DocumentStatus = "uploaded"
	StatusSeeding  DocumentStatus = "seeding"
	StatusReady    DocumentStatus = "ready"
	StatusFailed   DocumentStatus = "failed"
)

type Document struct {
	ID             string         `json:"id"`
	ClientID       string         `json:"client_id"`
	TaxYear        int            `json:"tax_year"`
	FileName       string         `json:"file_name"`
	StoragePath    string         `json:"storage_path"`
	MimeType       string         `json:"mime_type"`
	DocumentType   DocumentType   `json:"document_type"`
	Confidence     float64        `json:"confidence"`
	RequiresReview bool           `json:"requires_review"`
	Status         DocumentStatus `json:"status"`
	Error          string         `json:"error,omitempty"`
	UploadedBy     string         `json:"uploaded_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Classification is the outcome of filename-based type detection.
// Confidence is on the internal [0,1] scale; repositories persist it x100.
type Classification struct {
	DocumentType DocumentType `json:"document_type"`
	Confidence   float64      `json:"confidence"`
}

var typeLabels = map[DocumentType]string{
	TypeW2:            "W-2 Wage Statement",
	Type1099INT:       "1099-INT Interest Income",
	Type1099DIV:       "1099-DIV Dividend Income",
	Type1099MISC:      "1099-MISC Miscellaneous Income",
	Type1099NEC:       "1099-NEC Nonemployee Compensation",
	Type1099B:         "1099-B Broker Transactions",
	TypeScheduleC:     "Schedule C Business Income",
	TypeReceipt:       "Receipt/Expense",
	TypeBankStatement: "Bank Statement",
	TypeOther:         "Other Document",
}

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// Label returns the display name for a document type.
func (t DocumentType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return typeLabels[TypeOther]
}

// Describe renders a classification for document lists, e.g.
// "W-2 Wage Statement (High confidence)".
func (c Classification) Describe() string {
	band := "Low confidence"
	switch {
	case c.Confidence >= 0.9:
		band = "High confidence"
	case c.Confidence >= 0.75:
		band = "Medium confidence"
	}
	return c.DocumentType.Label() + " (" + band + ")"
}
