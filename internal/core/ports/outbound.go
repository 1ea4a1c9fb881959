package ports

import (
	"context"
	"io"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	ListByClient(ctx context.Context, clientID string, taxYear int) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
}

// FieldRepository persists the extracted-field rows for documents.
type FieldRepository interface {
	CreateBatch(ctx context.Context, documentID string, seeded []domain.SeededField) ([]domain.ExtractedField, error)
	ListByDocument(ctx context.Context, documentID string) ([]domain.ExtractedField, error)
	ListByClientYear(ctx context.Context, clientID string, taxYear int) ([]domain.FieldWithDocument, error)
	Verify(ctx context.Context, fieldID, value, verifiedBy string) (*domain.ExtractedField, error)
}

// TaxInfoRepository stores the client's self-reported tax info blob.
type TaxInfoRepository interface {
	Upsert(ctx context.Context, info *domain.ClientTaxInfo) (*domain.ClientTaxInfo, error)
	Get(ctx context.Context, clientID string, taxYear int) (*domain.ClientTaxInfo, error)
}

// TaskStore persists preparer/client work items.
type TaskStore interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	ListTasks(ctx context.Context, clientID string, includeDeleted bool) ([]domain.Task, error)
	GetTaskByID(ctx context.Context, clientID, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, task *domain.Task) error
	SoftDeleteTask(ctx context.Context, clientID, taskID string) error
}

// MessageStore persists the client/preparer message thread.
type MessageStore interface {
	AppendMessage(ctx context.Context, message *domain.Message) error
	ListMessages(ctx context.Context, clientID string, limit int) ([]domain.Message, error)
}

// ObjectStorage stores the uploaded source files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes document-uploaded events.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, documentID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}
