package httpadapter

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jfaulkner/taxdesk/internal/config"
	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/ports"
)

type uploaderFake struct {
	doc *domain.Document
	err error
}

func (f uploaderFake) Upload(_ context.Context, req ports.UploadRequest) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
	}
	if f.doc != nil {
		return f.doc, nil
	}
	now := time.Now().UTC()
	return &domain.Document{
		ID:           "doc-1",
		ClientID:     req.ClientID,
		TaxYear:      req.TaxYear,
		FileName:     req.FileName,
		MimeType:     req.MimeType,
		DocumentType: domain.TypeW2,
		Confidence:   0.95,
		Status:       domain.StatusUploaded,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

type reviewerFake struct {
	field *domain.ExtractedField
	err   error
}

func (f reviewerFake) Verify(context.Context, string, string, string) (*domain.ExtractedField, error) {
	return f.field, f.err
}

type summaryFake struct {
	summary *domain.TaxSummary
	err     error
}

func (f summaryFake) BuildForClient(context.Context, string, int) (*domain.TaxSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.summary != nil {
		return f.summary, nil
	}
	return &domain.TaxSummary{}, nil
}

type docRepoFake struct {
	doc  *domain.Document
	docs []domain.Document
	err  error
}

func (f docRepoFake) Create(context.Context, *domain.Document) error { return f.err }

func (f docRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f docRepoFake) ListByClient(context.Context, string, int) ([]domain.Document, error) {
	return f.docs, f.err
}

func (f docRepoFake) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return f.err
}

type fieldRepoFake struct {
	rows []domain.ExtractedField
	err  error
}

func (f fieldRepoFake) CreateBatch(context.Context, string, []domain.SeededField) ([]domain.ExtractedField, error) {
	return f.rows, f.err
}

func (f fieldRepoFake) ListByDocument(context.Context, string) ([]domain.ExtractedField, error) {
	return f.rows, f.err
}

func (f fieldRepoFake) ListByClientYear(context.Context, string, int) ([]domain.FieldWithDocument, error) {
	return nil, f.err
}

func (f fieldRepoFake) Verify(context.Context, string, string, string) (*domain.ExtractedField, error) {
	return nil, f.err
}

type taxInfoFake struct {
	info *domain.ClientTaxInfo
	err  error
}

func (f taxInfoFake) Upsert(_ context.Context, info *domain.ClientTaxInfo) (*domain.ClientTaxInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return info, nil
}

func (f taxInfoFake) Get(context.Context, string, int) (*domain.ClientTaxInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

type taskStoreFake struct {
	mu    sync.Mutex
	tasks map[string]*domain.Task
	err   error
}

func newTaskStoreFake() *taskStoreFake {
	return &taskStoreFake{tasks: make(map[string]*domain.Task)}
}

func (f *taskStoreFake) CreateTask(_ context.Context, task *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *taskStoreFake) ListTasks(context.Context, string, bool) ([]domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Task, 0, len(f.tasks))
	for _, task := range f.tasks {
		out = append(out, *task)
	}
	return out, nil
}

func (f *taskStoreFake) GetTaskByID(_ context.Context, clientID, taskID string) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[taskID]
	if !ok || task.ClientID != clientID {
		return nil, domain.WrapError(domain.ErrTaskNotFound, "get task", io.EOF)
	}
	copied := *task
	return &copied, nil
}

func (f *taskStoreFake) UpdateTask(_ context.Context, task *domain.Task) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[task.ID]; !ok {
		return domain.WrapError(domain.ErrTaskNotFound, "update task", io.EOF)
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *taskStoreFake) SoftDeleteTask(_ context.Context, clientID, taskID string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[taskID]
	if !ok || task.ClientID != clientID {
		return domain.WrapError(domain.ErrTaskNotFound, "delete task", io.EOF)
	}
	now := time.Now().UTC()
	task.DeletedAt = &now
	return nil
}

type messageStoreFake struct {
	messages []domain.Message
	err      error
}

func (f *messageStoreFake) AppendMessage(_ context.Context, message *domain.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, *message)
	return nil
}

func (f *messageStoreFake) ListMessages(context.Context, string, int) ([]domain.Message, error) {
	return f.messages, f.err
}

type routerFakes struct {
	uploader  uploaderFake
	reviewer  reviewerFake
	summaries summaryFake
	documents docRepoFake
	fields    fieldRepoFake
	taxInfo   taxInfoFake
	tasks     *taskStoreFake
	messages  *messageStoreFake
}

func newTestHandler(cfg config.Config, fakes routerFakes) http.Handler {
	if fakes.tasks == nil {
		fakes.tasks = newTaskStoreFake()
	}
	if fakes.messages == nil {
		fakes.messages = &messageStoreFake{}
	}
	return NewRouter(
		cfg,
		fakes.uploader,
		fakes.reviewer,
		fakes.summaries,
		fakes.documents,
		fakes.fields,
		fakes.taxInfo,
		fakes.tasks,
		fakes.messages,
		nil,
	).Handler()
}
