package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jfaulkner/taxdesk/internal/config"
	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

func TestGetDocumentByIDReturns404ForNotFound(t *testing.T) {
	handler := newTestHandler(config.Config{}, routerFakes{
		documents: docRepoFake{err: domain.WrapError(domain.ErrDocumentNotFound, "get", errors.New("id=missing"))},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestVerifyFieldMapsInvalidInputTo400(t *testing.T) {
	handler := newTestHandler(config.Config{}, routerFakes{
		reviewer: reviewerFake{err: domain.WrapError(domain.ErrInvalidInput, "verify", errors.New("verified_by is required"))},
	})

	payload, _ := json.Marshal(map[string]string{"field_value": "500"})
	req := httptest.NewRequest(http.MethodPut, "/v1/fields/field-1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestVerifyFieldMapsFieldNotFoundTo404(t *testing.T) {
	handler := newTestHandler(config.Config{}, routerFakes{
		reviewer: reviewerFake{err: domain.WrapError(domain.ErrFieldNotFound, "verify", errors.New("id=missing"))},
	})

	payload, _ := json.Marshal(map[string]string{"field_value": "500", "verified_by": "preparer-1"})
	req := httptest.NewRequest(http.MethodPut, "/v1/fields/missing", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestGetTaxInfoMapsNotFoundTo404(t *testing.T) {
	handler := newTestHandler(config.Config{}, routerFakes{
		taxInfo: taxInfoFake{err: domain.WrapError(domain.ErrTaxInfoNotFound, "get", errors.New("client=client-1"))},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clients/client-1/tax-info?tax_year=2024", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestSummaryMapsTemporaryTo503(t *testing.T) {
	handler := newTestHandler(config.Config{}, routerFakes{
		summaries: summaryFake{err: domain.WrapError(domain.ErrTemporary, "build", errors.New("db down"))},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/clients/client-1/summary?tax_year=2024", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}
