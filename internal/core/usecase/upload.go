package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jfaulkner/taxdesk/internal/core/classify"
	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/fields"
	"github.com/jfaulkner/taxdesk/internal/core/ports"
)

type UploadDocumentUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewUploadDocumentUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

// Upload stores the file, classifies it by filename unless the caller chose
// a type, persists the document record and hands the id to the seeding
// worker. A caller-chosen type must be a known one and is then trusted at
// full confidence.
func (uc *UploadDocumentUseCase) Upload(ctx context.Context, req ports.UploadRequest) (*domain.Document, error) {
	if strings.TrimSpace(req.FileName) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", errors.New("file name is required"))
	}
	if strings.TrimSpace(req.ClientID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document", errors.New("client id is required"))
	}

	docType := req.DocumentType
	confidence := 1.0
	if docType == "" {
		result := classify.Classify(req.FileName)
		docType = result.DocumentType
		confidence = result.Confidence
	} else if !docType.Valid() {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document",
			fmt.Errorf("unknown document type %q", docType))
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(req.FileName))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, req.Body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	doc := &domain.Document{
		ID:             id,
		ClientID:       req.ClientID,
		TaxYear:        req.TaxYear,
		FileName:       req.FileName,
		StoragePath:    storageKey,
		MimeType:       req.MimeType,
		DocumentType:   docType,
		Confidence:     confidence,
		RequiresReview: fields.RequiresDataEntry(docType),
		Status:         domain.StatusUploaded,
		UploadedBy:     req.UploadedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document record: %w", err)
	}

	if err := uc.queue.PublishDocumentUploaded(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish upload event: %w", err)
	}

	return doc, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
