package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/ports"
	"github.com/jfaulkner/taxdesk/internal/core/summary"
)

type BuildSummaryUseCase struct {
	rows    ports.FieldRepository
	taxInfo ports.TaxInfoRepository
}

func NewBuildSummaryUseCase(rows ports.FieldRepository, taxInfo ports.TaxInfoRepository) *BuildSummaryUseCase {
	return &BuildSummaryUseCase{rows: rows, taxInfo: taxInfo}
}

// BuildForClient fetches every field row for the client and year plus their
// self-reported tax info and computes a fresh summary. Missing tax info is
// not an error; it simply contributes nothing.
func (uc *BuildSummaryUseCase) BuildForClient(ctx context.Context, clientID string, taxYear int) (*domain.TaxSummary, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "build summary", errors.New("client id is required"))
	}

	extracted, err := uc.rows.ListByClientYear(ctx, clientID, taxYear)
	if err != nil {
		return nil, fmt.Errorf("list fields for client: %w", err)
	}

	info, err := uc.taxInfo.Get(ctx, clientID, taxYear)
	if err != nil {
		if !domain.IsKind(err, domain.ErrTaxInfoNotFound) {
			return nil, fmt.Errorf("load client tax info: %w", err)
		}
		info = nil
	}

	s := summary.Build(extracted, info)
	return &s, nil
}
