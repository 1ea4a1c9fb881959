package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

type fieldRepoFake struct {
	batchDocID string
	batch      []domain.SeededField
	batchErr   error

	verified  *domain.ExtractedField
	verifyErr error
	joined    []domain.FieldWithDocument
	joinedErr error
}

func (f *fieldRepoFake) CreateBatch(_ context.Context, documentID string, seeded []domain.SeededField) ([]domain.ExtractedField, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	f.batchDocID = documentID
	f.batch = seeded
	out := make([]domain.ExtractedField, len(seeded))
	for i, s := range seeded {
		out[i] = domain.ExtractedField{
			ID:               s.FieldName,
			DocumentID:       documentID,
			FieldName:        s.FieldName,
			FieldValue:       s.FieldValue,
			ExtractionMethod: s.ExtractionMethod,
		}
	}
	return out, nil
}

func (f *fieldRepoFake) ListByDocument(context.Context, string) ([]domain.ExtractedField, error) {
	return nil, errors.New("not implemented")
}

func (f *fieldRepoFake) ListByClientYear(context.Context, string, int) ([]domain.FieldWithDocument, error) {
	if f.joinedErr != nil {
		return nil, f.joinedErr
	}
	return f.joined, nil
}

func (f *fieldRepoFake) Verify(_ context.Context, fieldID, value, verifiedBy string) (*domain.ExtractedField, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	now := time.Now().UTC()
	confidence := 1.0
	field := &domain.ExtractedField{
		ID:               fieldID,
		FieldValue:       &value,
		Confidence:       &confidence,
		ManuallyVerified: true,
		VerifiedBy:       &verifiedBy,
		VerifiedAt:       &now,
	}
	f.verified = field
	return field, nil
}

func TestSeedByIDCreatesRowsAndMarksReady(t *testing.T) {
	repo := &docRepoFake{byID: map[string]*domain.Document{
		"doc-1": {
			ID:           "doc-1",
			FileName:     "W2_AcmeCorp_2024.pdf",
			DocumentType: domain.TypeW2,
		},
	}}
	rows := &fieldRepoFake{}
	uc := NewSeedFieldsUseCase(repo, rows)

	if err := uc.SeedByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("SeedByID() error = %v", err)
	}
	if rows.batchDocID != "doc-1" {
		t.Fatalf("expected batch insert for doc-1, got %q", rows.batchDocID)
	}
	if len(rows.batch) != 11 {
		t.Fatalf("expected 11 seeded w2 fields, got %d", len(rows.batch))
	}
	wantStatuses := []domain.DocumentStatus{domain.StatusSeeding, domain.StatusReady}
	if len(repo.statuses) != 2 || repo.statuses[0] != wantStatuses[0] || repo.statuses[1] != wantStatuses[1] {
		t.Fatalf("status transitions = %v, want %v", repo.statuses, wantStatuses)
	}
}

func TestSeedByIDOtherTypeCreatesNothing(t *testing.T) {
	repo := &docRepoFake{byID: map[string]*domain.Document{
		"doc-2": {
			ID:           "doc-2",
			FileName:     "mystery.bin",
			DocumentType: domain.TypeOther,
		},
	}}
	rows := &fieldRepoFake{batchErr: errors.New("must not be called")}
	uc := NewSeedFieldsUseCase(repo, rows)

	if err := uc.SeedByID(context.Background(), "doc-2"); err != nil {
		t.Fatalf("SeedByID() error = %v", err)
	}
	if len(repo.statuses) == 0 || repo.statuses[len(repo.statuses)-1] != domain.StatusReady {
		t.Fatalf("empty scaffold should still end ready, got %v", repo.statuses)
	}
}

func TestSeedByIDMarksFailedOnPersistError(t *testing.T) {
	repo := &docRepoFake{byID: map[string]*domain.Document{
		"doc-3": {
			ID:           "doc-3",
			FileName:     "W2_Initech_2024.pdf",
			DocumentType: domain.TypeW2,
		},
	}}
	rows := &fieldRepoFake{batchErr: errors.New("insert failed")}
	uc := NewSeedFieldsUseCase(repo, rows)

	err := uc.SeedByID(context.Background(), "doc-3")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statuses) == 0 || repo.statuses[len(repo.statuses)-1] != domain.StatusFailed {
		t.Fatalf("expected final status failed, got %v", repo.statuses)
	}
}

func TestSeedByIDMarksFailedOnFetchError(t *testing.T) {
	repo := &docRepoFake{} // no documents, so the fetch fails
	rows := &fieldRepoFake{batchErr: errors.New("must not be called")}
	uc := NewSeedFieldsUseCase(repo, rows)

	err := uc.SeedByID(context.Background(), "doc-gone")
	if err == nil {
		t.Fatalf("expected error")
	}
	wantStatuses := []domain.DocumentStatus{domain.StatusSeeding, domain.StatusFailed}
	if len(repo.statuses) != 2 || repo.statuses[0] != wantStatuses[0] || repo.statuses[1] != wantStatuses[1] {
		t.Fatalf("status transitions = %v, want %v", repo.statuses, wantStatuses)
	}
}
