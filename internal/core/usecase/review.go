package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/ports"
)

type ReviewFieldUseCase struct {
	rows ports.FieldRepository
}

func NewReviewFieldUseCase(rows ports.FieldRepository) *ReviewFieldUseCase {
	return &ReviewFieldUseCase{rows: rows}
}

// Verify records a preparer's review of one field: the value they confirmed,
// who confirmed it and when, at full confidence. Review is the only path to
// manually_verified=true.
func (uc *ReviewFieldUseCase) Verify(ctx context.Context, fieldID, value, verifiedBy string) (*domain.ExtractedField, error) {
	if strings.TrimSpace(fieldID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "verify field", errors.New("field id is required"))
	}
	if strings.TrimSpace(verifiedBy) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "verify field", errors.New("verified_by is required"))
	}

	field, err := uc.rows.Verify(ctx, fieldID, value, verifiedBy)
	if err != nil {
		return nil, fmt.Errorf("verify field: %w", err)
	}
	return field, nil
}
