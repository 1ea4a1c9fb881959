package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jfaulkner/taxdesk/internal/bootstrap"
	"github.com/jfaulkner/taxdesk/internal/config"
	"github.com/jfaulkner/taxdesk/internal/observability/logging"
	"github.com/jfaulkner/taxdesk/internal/observability/metrics"
)

const serviceName = "worker"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("worker metrics server error: %v", err)
		}
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeDocumentUploaded(ctx, func(handlerCtx context.Context, documentID string) error {
		seedCtx, cancel := context.WithTimeout(handlerCtx, 1*time.Minute)
		defer cancel()

		documentType := ""
		if doc, err := app.Documents.GetByID(seedCtx, documentID); err == nil {
			documentType = string(doc.DocumentType)
			workerMetrics.ObserveQueueLag(serviceName, time.Since(doc.CreatedAt))
		}

		workerMetrics.StartSeed()
		start := time.Now()
		err := app.SeedUC.SeedByID(seedCtx, documentID)
		workerMetrics.FinishSeed(serviceName, documentType, time.Since(start), err)

		if err == nil {
			if rows, listErr := app.Fields.ListByDocument(seedCtx, documentID); listErr == nil {
				workerMetrics.ObserveSeededFields(serviceName, len(rows))
			}
		}
		return err
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = metricsServer.Shutdown(shutdownCtx)
}
