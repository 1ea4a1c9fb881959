package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (rt *Router) verifyField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}

	fieldID := strings.TrimPrefix(r.URL.Path, "/v1/fields/")
	if fieldID == "" || strings.Contains(fieldID, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "field id is required"})
		return
	}

	var req struct {
		FieldValue string `json:"field_value"`
		VerifiedBy string `json:"verified_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	field, err := rt.reviewer.Verify(r.Context(), fieldID, req.FieldValue, req.VerifiedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordFieldVerification(serviceName)
	}
	writeJSON(w, http.StatusOK, field)
}
