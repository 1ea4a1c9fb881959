package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

type taxInfoRepoFake struct {
	info *domain.ClientTaxInfo
	err  error
}

func (f *taxInfoRepoFake) Upsert(context.Context, *domain.ClientTaxInfo) (*domain.ClientTaxInfo, error) {
	return nil, errors.New("not implemented")
}

func (f *taxInfoRepoFake) Get(context.Context, string, int) (*domain.ClientTaxInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func joinedRow(docID, fileName, fieldName, value string) domain.FieldWithDocument {
	row := domain.FieldWithDocument{FileName: fileName}
	row.DocumentID = docID
	row.FieldName = fieldName
	if value != "" {
		row.FieldValue = &value
	}
	return row
}

func TestBuildForClientCombinesFieldsAndTaxInfo(t *testing.T) {
	rows := &fieldRepoFake{joined: []domain.FieldWithDocument{
		joinedRow("doc-1", "w2.pdf", "wages_tips_compensation", "50000"),
	}}
	taxInfo := &taxInfoRepoFake{info: &domain.ClientTaxInfo{
		IncomeSources: []domain.IncomeSource{
			{Type: "rental", SourceName: "Duplex", Amount: "7200"},
		},
	}}
	uc := NewBuildSummaryUseCase(rows, taxInfo)

	s, err := uc.BuildForClient(context.Background(), "client-1", 2024)
	if err != nil {
		t.Fatalf("BuildForClient() error = %v", err)
	}
	if !s.TotalIncome.Equal(decimal.RequireFromString("57200")) {
		t.Fatalf("TotalIncome = %s, want 57200", s.TotalIncome)
	}
}

func TestBuildForClientMissingTaxInfoIsNotAnError(t *testing.T) {
	rows := &fieldRepoFake{joined: []domain.FieldWithDocument{
		joinedRow("doc-1", "int.pdf", "interest_income", "100"),
	}}
	taxInfo := &taxInfoRepoFake{err: domain.WrapError(domain.ErrTaxInfoNotFound, "get tax info", errors.New("client-1"))}
	uc := NewBuildSummaryUseCase(rows, taxInfo)

	s, err := uc.BuildForClient(context.Background(), "client-1", 2024)
	if err != nil {
		t.Fatalf("BuildForClient() error = %v", err)
	}
	if !s.TotalIncome.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("TotalIncome = %s, want 100", s.TotalIncome)
	}
}

func TestBuildForClientPropagatesRepoError(t *testing.T) {
	rows := &fieldRepoFake{joinedErr: errors.New("db down")}
	uc := NewBuildSummaryUseCase(rows, &taxInfoRepoFake{})
	if _, err := uc.BuildForClient(context.Background(), "client-1", 2024); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBuildForClientRequiresClientID(t *testing.T) {
	uc := NewBuildSummaryUseCase(&fieldRepoFake{}, &taxInfoRepoFake{})
	if _, err := uc.BuildForClient(context.Background(), "  ", 2024); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVerifyFieldRequiresReviewer(t *testing.T) {
	uc := NewReviewFieldUseCase(&fieldRepoFake{})
	if _, err := uc.Verify(context.Background(), "field-1", "85000", ""); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVerifyFieldDelegatesToRepository(t *testing.T) {
	rows := &fieldRepoFake{}
	uc := NewReviewFieldUseCase(rows)

	field, err := uc.Verify(context.Background(), "field-1", "85000", "preparer-9")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !field.ManuallyVerified {
		t.Fatalf("expected manually_verified=true")
	}
	if field.Confidence == nil || *field.Confidence != 1.0 {
		t.Fatalf("expected full confidence after review, got %v", field.Confidence)
	}
	if rows.verified == nil {
		t.Fatalf("expected repository Verify call")
	}
}
