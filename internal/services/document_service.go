package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/storage"
)

// DocumentService handles the upload side of the document inbox. Recognition
// itself happens in the worker consuming the scan queue.
type DocumentService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewDocumentService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *DocumentService {
	return &DocumentService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// UploadDocument records an uploaded document and queues it for recognition
func (s *DocumentService) UploadDocument(ctx context.Context, fileName, fileURL, contentType string) (core.Document, error) {
	doc := core.Document{
		ID:          uuid.NewString(),
		FileName:    fileName,
		FileURL:     fileURL,
		ContentType: contentType,
		Status:      core.DocumentPending,
		UploadedAt:  time.Now().UTC(),
	}

	if err := doc.Validate(); err != nil {
		return core.Document{}, fmt.Errorf("validate document: %w", err)
	}

	created, err := s.storage.CreateDocument(ctx, doc)
	if err != nil {
		return core.Document{}, fmt.Errorf("save document: %w", err)
	}

	if err := s.publishScanMessage(ctx, created.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish scan message",
			"document_id", created.ID, "error", err)
		// Don't fail the upload - the document stays pending and the worker
		// backlog pass will pick it up
	}

	return created, nil
}

func (s *DocumentService) GetDocument(ctx context.Context, id string) (core.Document, error) {
	return s.storage.GetDocument(ctx, id)
}

func (s *DocumentService) ListDocuments(ctx context.Context) ([]core.Document, error) {
	return s.storage.ListDocuments(ctx)
}

func (s *DocumentService) publishScanMessage(ctx context.Context, documentID string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping scan message")
		return nil
	}

	return s.amqpClient.PublishDocumentScan(ctx, documentID)
}
