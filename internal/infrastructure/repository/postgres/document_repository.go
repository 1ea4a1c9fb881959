package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

// confidenceScale converts between the internal [0,1] confidence and the
// 0-100 scale stored in the database.
const confidenceScale = 100

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO documents (
	id, client_id, tax_year, file_name, storage_path, mime_type,
	document_type, confidence_score, requires_review, status, error_message,
	uploaded_by, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`,
		doc.ID, doc.ClientID, doc.TaxYear, doc.FileName, doc.StoragePath, doc.MimeType,
		string(doc.DocumentType), doc.Confidence*confidenceScale, doc.RequiresReview,
		string(doc.Status), doc.Error, doc.UploadedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, client_id, tax_year, file_name, storage_path, mime_type,
	document_type, confidence_score, requires_review, status, error_message,
	uploaded_by, created_at, updated_at
FROM documents
WHERE id = $1
`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document by id", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return doc, nil
}

func (r *DocumentRepository) ListByClient(ctx context.Context, clientID string, taxYear int) ([]domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, client_id, tax_year, file_name, storage_path, mime_type,
	document_type, confidence_score, requires_review, status, error_message,
	uploaded_by, created_at, updated_at
FROM documents
WHERE client_id = $1 AND tax_year = $2
ORDER BY created_at DESC
`, clientID, taxYear)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE documents
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "update document status", fmt.Errorf("id=%s", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var docType, status string
	var errMessage, uploadedBy sql.NullString

	err := row.Scan(
		&doc.ID, &doc.ClientID, &doc.TaxYear, &doc.FileName, &doc.StoragePath, &doc.MimeType,
		&docType, &doc.Confidence, &doc.RequiresReview, &status, &errMessage,
		&uploadedBy, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.DocumentType = domain.DocumentType(docType)
	doc.Confidence /= confidenceScale
	doc.Status = domain.DocumentStatus(status)
	doc.Error = errMessage.String
	doc.UploadedBy = uploadedBy.String
	return &doc, nil
}
