package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics tracks the seeding worker: how many documents got their
// field scaffolds, how long it took, and how far behind the queue runs.
type WorkerMetrics struct {
	registry *prometheus.Registry

	seedTotal    *prometheus.CounterVec
	seedDuration *prometheus.HistogramVec
	seedInFlight prometheus.Gauge
	seededFields *prometheus.HistogramVec
	queueLag     *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	seedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxdesk",
			Subsystem: "worker",
			Name:      "document_seed_total",
			Help:      "Total seeded documents by type and status.",
		},
		[]string{"service", "document_type", "status"},
	)
	seedDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxdesk",
			Subsystem: "worker",
			Name:      "document_seed_duration_seconds",
			Help:      "Field seeding duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	seedInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "taxdesk",
			Subsystem: "worker",
			Name:      "document_seed_in_flight",
			Help:      "Number of in-flight seeding tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	seededFields := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxdesk",
			Subsystem: "worker",
			Name:      "seeded_fields",
			Help:      "Distribution of field rows created per document.",
			Buckets:   []float64{0, 1, 2, 4, 6, 8, 11, 16},
		},
		[]string{"service"},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taxdesk",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document upload and seeding start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(seedTotal, seedDuration, seedInFlight, seededFields, queueLag)

	return &WorkerMetrics{
		registry:     registry,
		seedTotal:    seedTotal,
		seedDuration: seedDuration,
		seedInFlight: seedInFlight,
		seededFields: seededFields,
		queueLag:     queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartSeed() {
	m.seedInFlight.Inc()
}

func (m *WorkerMetrics) FinishSeed(service, documentType string, duration time.Duration, err error) {
	m.seedInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}
	if documentType == "" {
		documentType = "unknown"
	}

	m.seedTotal.WithLabelValues(service, documentType, status).Inc()
	m.seedDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveSeededFields(service string, count int) {
	m.seededFields.WithLabelValues(service).Observe(float64(count))
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
