// Package bootstrap wires the shared dependency graph for the api and
// worker binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jfaulkner/taxdesk/internal/config"
	"github.com/jfaulkner/taxdesk/internal/core/ports"
	"github.com/jfaulkner/taxdesk/internal/core/usecase"
	"github.com/jfaulkner/taxdesk/internal/infrastructure/queue/nats"
	"github.com/jfaulkner/taxdesk/internal/infrastructure/repository/postgres"
	"github.com/jfaulkner/taxdesk/internal/infrastructure/resilience"
	"github.com/jfaulkner/taxdesk/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Documents ports.DocumentRepository
	Fields    ports.FieldRepository
	TaxInfo   ports.TaxInfoRepository
	Tasks     ports.TaskStore
	Messages  ports.MessageStore

	UploadUC  ports.DocumentUploader
	SeedUC    ports.DocumentSeeder
	ReviewUC  ports.FieldReviewer
	SummaryUC ports.SummaryService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	documents := postgres.NewDocumentRepository(db)
	fields := postgres.NewFieldRepository(db)
	taxInfo := postgres.NewTaxInfoRepository(db)
	tasks := postgres.NewTaskRepository(db)
	messages := postgres.NewMessageRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	uploadUC := usecase.NewUploadDocumentUseCase(documents, storage, queue)
	seedUC := usecase.NewSeedFieldsUseCase(documents, fields)
	reviewUC := usecase.NewReviewFieldUseCase(fields)
	summaryUC := usecase.NewBuildSummaryUseCase(fields, taxInfo)

	return &App{
		Config: cfg,

		Queue:     queue,
		Documents: documents,
		Fields:    fields,
		TaxInfo:   taxInfo,
		Tasks:     tasks,
		Messages:  messages,

		UploadUC:  uploadUC,
		SeedUC:    seedUC,
		ReviewUC:  reviewUC,
		SummaryUC: summaryUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
