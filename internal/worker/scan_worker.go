package worker

import (
	"context"
	"fmt"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/recognizer"
)

// ScanStore is the slice of the repository the scan worker needs.
type ScanStore interface {
	GetDocument(ctx context.Context, id string) (core.Document, error)
	ListDocuments(ctx context.Context) ([]core.Document, error)
	MarkDocumentRecognized(ctx context.Context, id, amount, vendor, date string) error
	MarkDocumentFailed(ctx context.Context, id string) error
}

// ScanWorker runs recognition on uploaded documents and writes the result
// back onto the document row.
type ScanWorker struct {
	storage    ScanStore
	recognizer recognizer.Recognizer
}

func NewScanWorker(storage ScanStore, rec recognizer.Recognizer) *ScanWorker {
	return &ScanWorker{
		storage:    storage,
		recognizer: rec,
	}
}

// HandleScanMessage processes a single document scan message from AMQP
func (w *ScanWorker) HandleScanMessage(ctx context.Context, msg *amqp.DocumentScanMessage) error {
	slog.InfoContext(ctx, "Processing scan message",
		"document_id", msg.DocumentID)

	doc, err := w.storage.GetDocument(ctx, msg.DocumentID)
	if err != nil {
		return fmt.Errorf("get document from storage: %w", err)
	}

	if doc.Status != core.DocumentPending {
		// Already handled, likely by the backlog pass. Ack and move on.
		slog.InfoContext(ctx, "Document already processed, skipping",
			"document_id", doc.ID,
			"status", doc.Status)
		return nil
	}

	if err := w.recognizeDocument(ctx, doc); err != nil {
		return fmt.Errorf("recognize document: %w", err)
	}

	return nil
}

// ProcessPendingDocuments scans any documents still waiting for recognition
// This is a backup mechanism in case AMQP messages are lost
func (w *ScanWorker) ProcessPendingDocuments(ctx context.Context) error {
	docs, err := w.storage.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	pending := 0
	for _, doc := range docs {
		if doc.Status != core.DocumentPending {
			continue
		}
		pending++
		if err := w.recognizeDocument(ctx, doc); err != nil {
			slog.ErrorContext(ctx, "Failed to recognize document",
				"document_id", doc.ID, "error", err)
			continue
		}
	}

	if pending > 0 {
		slog.InfoContext(ctx, "Processed pending documents", "count", pending)
	}

	return nil
}

func (w *ScanWorker) recognizeDocument(ctx context.Context, doc core.Document) error {
	result, err := w.recognizer.Recognize(ctx, doc)
	if err != nil {
		if markErr := w.storage.MarkDocumentFailed(ctx, doc.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark document failed",
				"document_id", doc.ID, "error", markErr)
		}
		return fmt.Errorf("recognizer %s: %w", w.recognizer.Name(), err)
	}

	if err := w.storage.MarkDocumentRecognized(ctx, doc.ID, result.Amount, result.Vendor, result.Date); err != nil {
		return fmt.Errorf("mark document recognized: %w", err)
	}

	slog.InfoContext(ctx, "Document recognized",
		"document_id", doc.ID,
		"recognizer", w.recognizer.Name(),
		"recognized_amount", result.Amount,
		"recognized_vendor", result.Vendor)

	return nil
}
