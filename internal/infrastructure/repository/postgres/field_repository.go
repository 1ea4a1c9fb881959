package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

type FieldRepository struct {
	db *sql.DB
}

func NewFieldRepository(db *sql.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

// CreateBatch inserts one row per seeded field inside a transaction, so a
// document either gets its whole scaffold or none of it.
func (r *FieldRepository) CreateBatch(ctx context.Context, documentID string, seeded []domain.SeededField) ([]domain.ExtractedField, error) {
	if len(seeded) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	out := make([]domain.ExtractedField, 0, len(seeded))
	for _, s := range seeded {
		field := domain.ExtractedField{
			ID:               uuid.NewString(),
			DocumentID:       documentID,
			FieldName:        s.FieldName,
			FieldValue:       s.FieldValue,
			ExtractionMethod: s.ExtractionMethod,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		confidence := s.Confidence
		field.Confidence = &confidence

		storedConfidence := confidence * confidenceScale
		_, err := tx.ExecContext(ctx, `
INSERT INTO extracted_fields (
	id, document_id, field_name, field_value, confidence_score,
	extraction_method, manually_verified, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`,
			field.ID, field.DocumentID, field.FieldName, field.FieldValue, storedConfidence,
			string(field.ExtractionMethod), field.ManuallyVerified, field.CreatedAt, field.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert field %s: %w", s.FieldName, err)
		}
		out = append(out, field)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit batch tx: %w", err)
	}
	return out, nil
}

func (r *FieldRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.ExtractedField, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, document_id, field_name, field_value, confidence_score,
	extraction_method, manually_verified, verified_by, verified_at,
	created_at, updated_at
FROM extracted_fields
WHERE document_id = $1
ORDER BY created_at, id
`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list fields by document: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ExtractedField, 0)
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		out = append(out, *field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fields: %w", err)
	}
	return out, nil
}

// ListByClientYear joins each field row with its document's file name and
// type, the shape the summary builder consumes.
func (r *FieldRepository) ListByClientYear(ctx context.Context, clientID string, taxYear int) ([]domain.FieldWithDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT f.id, f.document_id, f.field_name, f.field_value, f.confidence_score,
	f.extraction_method, f.manually_verified, f.verified_by, f.verified_at,
	f.created_at, f.updated_at,
	d.file_name, d.document_type
FROM extracted_fields f
JOIN documents d ON d.id = f.document_id
WHERE d.client_id = $1 AND d.tax_year = $2
ORDER BY d.created_at, f.created_at, f.id
`, clientID, taxYear)
	if err != nil {
		return nil, fmt.Errorf("list fields by client/year: %w", err)
	}
	defer rows.Close()

	out := make([]domain.FieldWithDocument, 0)
	for rows.Next() {
		var joined domain.FieldWithDocument
		var docType string
		field := &joined.ExtractedField
		var confidence sql.NullFloat64
		var method string
		var verifiedBy sql.NullString
		var verifiedAt sql.NullTime

		err := rows.Scan(
			&field.ID, &field.DocumentID, &field.FieldName, &field.FieldValue, &confidence,
			&method, &field.ManuallyVerified, &verifiedBy, &verifiedAt,
			&field.CreatedAt, &field.UpdatedAt,
			&joined.FileName, &docType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan joined field: %w", err)
		}
		applyNullable(field, confidence, method, verifiedBy, verifiedAt)
		joined.DocumentType = domain.DocumentType(docType)
		out = append(out, joined)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate joined fields: %w", err)
	}
	return out, nil
}

// Verify applies a preparer review edit: value, verified flags and full
// confidence. The extraction method is left as recorded at creation.
func (r *FieldRepository) Verify(ctx context.Context, fieldID, value, verifiedBy string) (*domain.ExtractedField, error) {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `
UPDATE extracted_fields
SET field_value = $2, manually_verified = TRUE, confidence_score = $3,
	verified_by = $4, verified_at = $5, updated_at = $5
WHERE id = $1
RETURNING id, document_id, field_name, field_value, confidence_score,
	extraction_method, manually_verified, verified_by, verified_at,
	created_at, updated_at
`, fieldID, value, float64(confidenceScale), verifiedBy, now)

	field, err := scanField(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrFieldNotFound, "verify field", fmt.Errorf("id=%s", fieldID))
		}
		return nil, fmt.Errorf("verify field: %w", err)
	}
	return field, nil
}

func scanField(row rowScanner) (*domain.ExtractedField, error) {
	var field domain.ExtractedField
	var confidence sql.NullFloat64
	var method string
	var verifiedBy sql.NullString
	var verifiedAt sql.NullTime

	err := row.Scan(
		&field.ID, &field.DocumentID, &field.FieldName, &field.FieldValue, &confidence,
		&method, &field.ManuallyVerified, &verifiedBy, &verifiedAt,
		&field.CreatedAt, &field.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyNullable(&field, confidence, method, verifiedBy, verifiedAt)
	return &field, nil
}

func applyNullable(field *domain.ExtractedField, confidence sql.NullFloat64, method string, verifiedBy sql.NullString, verifiedAt sql.NullTime) {
	if confidence.Valid {
		internal := confidence.Float64 / confidenceScale
		field.Confidence = &internal
	}
	field.ExtractionMethod = domain.ExtractionMethod(method)
	if verifiedBy.Valid {
		v := verifiedBy.String
		field.VerifiedBy = &v
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		field.VerifiedAt = &t
	}
}
