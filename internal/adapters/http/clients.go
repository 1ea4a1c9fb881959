package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/export"
)

func (rt *Router) taxInfoResource(w http.ResponseWriter, r *http.Request, clientID string) {
	switch r.Method {
	case http.MethodGet:
		rt.getTaxInfo(w, r, clientID)
	case http.MethodPut:
		rt.putTaxInfo(w, r, clientID)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) getTaxInfo(w http.ResponseWriter, r *http.Request, clientID string) {
	taxYear, ok := taxYearParam(w, r)
	if !ok {
		return
	}

	info, err := rt.taxInfo.Get(r.Context(), clientID, taxYear)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (rt *Router) putTaxInfo(w http.ResponseWriter, r *http.Request, clientID string) {
	var req struct {
		TaxYear       int                   `json:"tax_year"`
		IncomeSources []domain.IncomeSource `json:"income_sources"`
		Deductions    []domain.Deduction    `json:"deductions"`
		Dependents    []domain.Dependent    `json:"dependents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.TaxYear == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tax_year is required"})
		return
	}

	info, err := rt.taxInfo.Upsert(r.Context(), &domain.ClientTaxInfo{
		ClientID:      clientID,
		TaxYear:       req.TaxYear,
		IncomeSources: req.IncomeSources,
		Deductions:    req.Deductions,
		Dependents:    req.Dependents,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (rt *Router) getSummary(w http.ResponseWriter, r *http.Request, clientID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	taxYear, ok := taxYearParam(w, r)
	if !ok {
		return
	}

	start := time.Now()
	summary, err := rt.summaries.BuildForClient(r.Context(), clientID, taxYear)
	if rt.metrics != nil {
		rt.metrics.RecordSummaryBuild(serviceName, time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (rt *Router) exportSummary(w http.ResponseWriter, r *http.Request, clientID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	taxYear, ok := taxYearParam(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "text"
	}

	start := time.Now()
	summary, err := rt.summaries.BuildForClient(r.Context(), clientID, taxYear)
	if rt.metrics != nil {
		rt.metrics.RecordSummaryBuild(serviceName, time.Since(start), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	switch format {
	case "text":
		report := export.Text(summary, clientID, taxYear, time.Now())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+export.FileName(clientID, taxYear, "txt"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(report))
	case "xlsx":
		workbook, err := export.XLSX(summary, clientID, taxYear)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+export.FileName(clientID, taxYear, "xlsx"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(workbook)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "format must be text or xlsx"})
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordExport(serviceName, format)
	}
}

func (rt *Router) messagesResource(w http.ResponseWriter, r *http.Request, clientID string) {
	switch r.Method {
	case http.MethodGet:
		rt.listMessages(w, r, clientID)
	case http.MethodPost:
		rt.postMessage(w, r, clientID)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) listMessages(w http.ResponseWriter, r *http.Request, clientID string) {
	limit := rt.cfg.MessageListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive number"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	messages, err := rt.messages.ListMessages(r.Context(), clientID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (rt *Router) postMessage(w http.ResponseWriter, r *http.Request, clientID string) {
	var req struct {
		SenderID   string `json:"sender_id"`
		SenderRole string `json:"sender_role"`
		Body       string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "body is required"})
		return
	}
	role := domain.SenderRole(req.SenderRole)
	if role != domain.RolePreparer && role != domain.RoleClient {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "sender_role must be preparer or client"})
		return
	}

	message := &domain.Message{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		SenderID:   req.SenderID,
		SenderRole: role,
		Body:       req.Body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := rt.messages.AppendMessage(r.Context(), message); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, message)
}

func taxYearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	taxYear, err := strconv.Atoi(r.URL.Query().Get("tax_year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tax_year must be a number"})
		return 0, false
	}
	return taxYear, true
}
