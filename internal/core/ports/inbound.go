package ports

import (
	"context"
	"io"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

// DocumentUploader is the inbound contract for document intake.
type DocumentUploader interface {
	Upload(ctx context.Context, req UploadRequest) (*domain.Document, error)
}

// UploadRequest carries one incoming file. DocumentType is optional: when
// empty the filename classifier decides.
type UploadRequest struct {
	ClientID     string
	TaxYear      int
	FileName     string
	MimeType     string
	DocumentType domain.DocumentType
	UploadedBy   string
	Body         io.Reader
}

// DocumentSeeder is the inbound contract for asynchronous field seeding.
type DocumentSeeder interface {
	SeedByID(ctx context.Context, documentID string) error
}

// FieldReviewer applies a preparer's verification edit to a field row.
type FieldReviewer interface {
	Verify(ctx context.Context, fieldID, value, verifiedBy string) (*domain.ExtractedField, error)
}

// SummaryService builds the rollup for a client and tax year.
type SummaryService interface {
	BuildForClient(ctx context.Context, clientID string, taxYear int) (*domain.TaxSummary, error)
}
