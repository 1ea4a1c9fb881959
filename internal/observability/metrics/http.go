package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics carries the API service's request metrics plus the
// intake-specific counters (uploads, reviews, summaries, exports).
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	uploadsTotal            *prometheus.CounterVec
	classificationTotal     *prometheus.CounterVec
	fieldVerificationsTotal *prometheus.CounterVec
	summaryBuildsTotal      *prometheus.CounterVec
	summaryBuildDuration    *prometheus.HistogramVec
	exportsTotal            *prometheus.CounterVec
	rateLimitedTotal        *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxdesk",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxdesk",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "taxdesk",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxdesk",
			Subsystem: "intake",
			Name:      "uploads_total",
			Help:      "Total uploaded documents by classified type.",
		},
		[]string{"service", "document_type"},
	)
	classificationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxdesk",
			Subsystem: "intake",
			Name:      "classification_review_total",
			Help:      "Total classifications by whether they require review.",
		},
		[]string{"service", "requires_review"},
	)
	fieldVerificationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxdesk",
			Subsystem: "intake",
			Name:      "field_verifications_total",
			Help:      "Total preparer field verifications.",
		},
		[]string{"service"},
	)
	summaryBuildsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxdesk",
			Subsystem: "summary",
			Name:      "builds_total",
			Help:      "Total summary builds by status.",
		},
		[]string{"service", "status"},
	)
	summaryBuildDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxdesk",
			Subsystem: "summary",
			Name:      "build_duration_seconds",
			Help:      "Summary build duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	exportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxdesk",
			Subsystem: "summary",
			Name:      "exports_total",
			Help:      "Total summary exports by format.",
		},
		[]string{"service", "format"},
	)
	rateLimitedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxdesk",
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Total requests rejected by the rate limiter.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		uploadsTotal,
		classificationTotal,
		fieldVerificationsTotal,
		summaryBuildsTotal,
		summaryBuildDuration,
		exportsTotal,
		rateLimitedTotal,
	)

	return &HTTPServerMetrics{
		registry:                registry,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		uploadsTotal:            uploadsTotal,
		classificationTotal:     classificationTotal,
		fieldVerificationsTotal: fieldVerificationsTotal,
		summaryBuildsTotal:      summaryBuildsTotal,
		summaryBuildDuration:    summaryBuildDuration,
		exportsTotal:            exportsTotal,
		rateLimitedTotal:        rateLimitedTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses resource ids so the path label stays bounded.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/documents/"):
		if strings.HasSuffix(path, "/fields") {
			return "/v1/documents/{document_id}/fields"
		}
		return "/v1/documents/{document_id}"
	case strings.HasPrefix(path, "/v1/fields/"):
		return "/v1/fields/{field_id}"
	case strings.HasPrefix(path, "/v1/tasks/"):
		return "/v1/tasks/{task_id}"
	case strings.HasPrefix(path, "/v1/clients/"):
		rest := strings.TrimPrefix(path, "/v1/clients/")
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			return "/v1/clients/{client_id}/" + rest[idx+1:]
		}
		return "/v1/clients/{client_id}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordUpload(service, documentType string, requiresReview bool) {
	if documentType == "" {
		documentType = "unknown"
	}
	m.uploadsTotal.WithLabelValues(service, documentType).Inc()
	m.classificationTotal.WithLabelValues(service, strconv.FormatBool(requiresReview)).Inc()
}

func (m *HTTPServerMetrics) RecordFieldVerification(service string) {
	m.fieldVerificationsTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordSummaryBuild(service string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.summaryBuildsTotal.WithLabelValues(service, status).Inc()
	if err == nil {
		m.summaryBuildDuration.WithLabelValues(service).Observe(duration.Seconds())
	}
}

func (m *HTTPServerMetrics) RecordExport(service, format string) {
	if format == "" {
		format = "unknown"
	}
	m.exportsTotal.WithLabelValues(service, format).Inc()
}

func (m *HTTPServerMetrics) RecordRateLimited(service string) {
	m.rateLimitedTotal.WithLabelValues(service).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
