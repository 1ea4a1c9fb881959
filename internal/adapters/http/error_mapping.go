package httpadapter

import (
	"net/http"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrDocumentNotFound),
		domain.IsKind(err, domain.ErrFieldNotFound),
		domain.IsKind(err, domain.ErrTaskNotFound),
		domain.IsKind(err, domain.ErrTaxInfoNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
