// Package httpadapter exposes the intake API: document upload and
// lookup, field review, client tax info, summaries and exports, tasks
// and the message thread.
package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jfaulkner/taxdesk/internal/config"
	"github.com/jfaulkner/taxdesk/internal/core/ports"
	"github.com/jfaulkner/taxdesk/internal/observability/metrics"
)

const serviceName = "api"

const (
	backpressureMaxInFlight = 256
	backpressureWait        = 100 * time.Millisecond
)

type Router struct {
	cfg config.Config

	uploader  ports.DocumentUploader
	reviewer  ports.FieldReviewer
	summaries ports.SummaryService

	documents ports.DocumentRepository
	fields    ports.FieldRepository
	taxInfo   ports.TaxInfoRepository
	tasks     ports.TaskStore
	messages  ports.MessageStore

	metrics *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	uploader ports.DocumentUploader,
	reviewer ports.FieldReviewer,
	summaries ports.SummaryService,
	documents ports.DocumentRepository,
	fields ports.FieldRepository,
	taxInfo ports.TaxInfoRepository,
	tasks ports.TaskStore,
	messages ports.MessageStore,
	httpMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:       cfg,
		uploader:  uploader,
		reviewer:  reviewer,
		summaries: summaries,
		documents: documents,
		fields:    fields,
		taxInfo:   taxInfo,
		tasks:     tasks,
		messages:  messages,
		metrics:   httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.documentsCollection)
	mux.HandleFunc("/v1/documents/", rt.documentSubtree)
	mux.HandleFunc("/v1/fields/", rt.verifyField)
	mux.HandleFunc("/v1/tasks", rt.tasksCollection)
	mux.HandleFunc("/v1/tasks/", rt.taskByID)
	mux.HandleFunc("/v1/clients/", rt.clientSubtree)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = backpressureMiddleware(handler, backpressureMaxInFlight, backpressureWait)

	var onReject func()
	if rt.metrics != nil {
		onReject = func() { rt.metrics.RecordRateLimited(serviceName) }
	}
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, onReject)
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// clientSubtree dispatches /v1/clients/{client_id}/... routes.
func (rt *Router) clientSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/clients/")
	clientID, resource, _ := strings.Cut(rest, "/")
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client id is required"})
		return
	}

	switch resource {
	case "tax-info":
		rt.taxInfoResource(w, r, clientID)
	case "summary":
		rt.getSummary(w, r, clientID)
	case "summary/export":
		rt.exportSummary(w, r, clientID)
	case "messages":
		rt.messagesResource(w, r, clientID)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
