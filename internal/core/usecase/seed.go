package usecase

import (
	"context"
	"fmt"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/fields"
	"github.com/jfaulkner/taxdesk/internal/core/ports"
)

type SeedFieldsUseCase struct {
	docs ports.DocumentRepository
	rows ports.FieldRepository
}

func NewSeedFieldsUseCase(docs ports.DocumentRepository, rows ports.FieldRepository) *SeedFieldsUseCase {
	return &SeedFieldsUseCase{docs: docs, rows: rows}
}

// SeedByID creates the placeholder field rows for a freshly uploaded
// document and moves it to ready. Types without a schema produce no rows
// and still land on ready: an empty scaffold is a valid outcome, not a
// failure. Any error after the seeding transition marks the document
// failed, so a consumed queue event never strands it in seeding.
func (uc *SeedFieldsUseCase) SeedByID(ctx context.Context, documentID string) error {
	if err := uc.docs.UpdateStatus(ctx, documentID, domain.StatusSeeding, ""); err != nil {
		return fmt.Errorf("set status=seeding: %w", err)
	}

	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		return uc.failDocument(ctx, documentID, fmt.Errorf("fetch document by id: %w", err))
	}

	seeded := fields.Seed(doc.FileName, doc.DocumentType)
	if len(seeded) > 0 {
		if _, err := uc.rows.CreateBatch(ctx, doc.ID, seeded); err != nil {
			return uc.failDocument(ctx, documentID, fmt.Errorf("create field rows: %w", err))
		}
	}

	if err := uc.docs.UpdateStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *SeedFieldsUseCase) failDocument(ctx context.Context, documentID string, cause error) error {
	if failErr := uc.docs.UpdateStatus(ctx, documentID, domain.StatusFailed, cause.Error()); failErr != nil {
		return fmt.Errorf("%w; mark failed status: %v", cause, failErr)
	}
	return cause
}
