package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

// TaxInfoRepository stores the client-reported sheet as one row per
// client/year, with the three lists serialized as JSONB.
type TaxInfoRepository struct {
	db *sql.DB
}

func NewTaxInfoRepository(db *sql.DB) *TaxInfoRepository {
	return &TaxInfoRepository{db: db}
}

func (r *TaxInfoRepository) Upsert(ctx context.Context, info *domain.ClientTaxInfo) (*domain.ClientTaxInfo, error) {
	incomeJSON, err := json.Marshal(emptyIfNilSources(info.IncomeSources))
	if err != nil {
		return nil, fmt.Errorf("marshal income sources: %w", err)
	}
	deductionsJSON, err := json.Marshal(emptyIfNilDeductions(info.Deductions))
	if err != nil {
		return nil, fmt.Errorf("marshal deductions: %w", err)
	}
	dependentsJSON, err := json.Marshal(emptyIfNilDependents(info.Dependents))
	if err != nil {
		return nil, fmt.Errorf("marshal dependents: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
INSERT INTO client_tax_info (client_id, tax_year, income_sources, deductions, dependents, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (client_id, tax_year) DO UPDATE SET
	income_sources = EXCLUDED.income_sources,
	deductions = EXCLUDED.deductions,
	dependents = EXCLUDED.dependents,
	updated_at = EXCLUDED.updated_at
`, info.ClientID, info.TaxYear, incomeJSON, deductionsJSON, dependentsJSON, now)
	if err != nil {
		return nil, fmt.Errorf("upsert tax info: %w", err)
	}

	stored := *info
	stored.UpdatedAt = now
	return &stored, nil
}

func (r *TaxInfoRepository) Get(ctx context.Context, clientID string, taxYear int) (*domain.ClientTaxInfo, error) {
	var info domain.ClientTaxInfo
	var incomeJSON, deductionsJSON, dependentsJSON []byte

	err := r.db.QueryRowContext(ctx, `
SELECT client_id, tax_year, income_sources, deductions, dependents, updated_at
FROM client_tax_info
WHERE client_id = $1 AND tax_year = $2
`, clientID, taxYear).Scan(
		&info.ClientID, &info.TaxYear, &incomeJSON, &deductionsJSON, &dependentsJSON, &info.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrTaxInfoNotFound, "get tax info",
			fmt.Errorf("client=%s year=%d", clientID, taxYear))
	}
	if err != nil {
		return nil, fmt.Errorf("get tax info: %w", err)
	}

	if err := json.Unmarshal(incomeJSON, &info.IncomeSources); err != nil {
		return nil, fmt.Errorf("unmarshal income sources: %w", err)
	}
	if err := json.Unmarshal(deductionsJSON, &info.Deductions); err != nil {
		return nil, fmt.Errorf("unmarshal deductions: %w", err)
	}
	if err := json.Unmarshal(dependentsJSON, &info.Dependents); err != nil {
		return nil, fmt.Errorf("unmarshal dependents: %w", err)
	}
	return &info, nil
}

func emptyIfNilSources(in []domain.IncomeSource) []domain.IncomeSource {
	if in == nil {
		return []domain.IncomeSource{}
	}
	return in
}

func emptyIfNilDeductions(in []domain.Deduction) []domain.Deduction {
	if in == nil {
		return []domain.Deduction{}
	}
	return in
}

func emptyIfNilDependents(in []domain.Dependent) []domain.Dependent {
	if in == nil {
		return []domain.Dependent{}
	}
	return in
}
