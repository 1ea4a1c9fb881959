package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

func newRepoWithMock(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &DocumentRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, client_id, tax_year, file_name").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDRescalesConfidence(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "client_id", "tax_year", "file_name", "storage_path", "mime_type",
		"document_type", "confidence_score", "requires_review", "status", "error_message",
		"uploaded_by", "created_at", "updated_at",
	}).AddRow(
		"doc-1", "client-1", 2024, "W2_Acme_2024.pdf", "doc-1_W2_Acme_2024.pdf", "application/pdf",
		"w2", 95.0, false, "ready", nil,
		"client-1", now, now,
	)
	mock.ExpectQuery("SELECT id, client_id, tax_year, file_name").
		WithArgs("doc-1").
		WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if doc.Confidence != 0.95 {
		t.Fatalf("Confidence = %v, want 0.95", doc.Confidence)
	}
	if doc.DocumentType != domain.TypeW2 {
		t.Fatalf("DocumentType = %q, want %q", doc.DocumentType, domain.TypeW2)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateScalesConfidenceForStorage(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:           "doc-1",
		ClientID:     "client-1",
		TaxYear:      2024,
		FileName:     "1099-INT_bank.pdf",
		StoragePath:  "doc-1_1099-INT_bank.pdf",
		MimeType:     "application/pdf",
		DocumentType: domain.Type1099INT,
		Confidence:   0.95,
		Status:       domain.StatusUploaded,
		UploadedBy:   "client-1",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			"doc-1", "client-1", 2024, "1099-INT_bank.pdf", "doc-1_1099-INT_bank.pdf", "application/pdf",
			"1099_int", 95.0, false, "uploaded", "",
			"client-1", now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateStatusReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("missing", string(domain.StatusSeeding), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusSeeding, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
