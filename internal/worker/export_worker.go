// Package worker holds the background message handlers: ledger export and
// document recognition.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/export"
	"homeledger/internal/storage"
)

// ExportStore is the slice of the repository the export worker needs.
type ExportStore interface {
	GetPaymentItem(ctx context.Context, id int64) (core.PaymentItem, error)
	GetPendingExportItems(ctx context.Context, limit int) ([]storage.PendingExportItem, error)
	MarkExported(ctx context.Context, id int64) error
	MarkExportError(ctx context.Context, id int64) error
}

// ExportWorker appends payment items from SQLite to the external ledger.
type ExportWorker struct {
	storage   ExportStore
	ledger    export.LedgerWriter
	batchSize int
}

func NewExportWorker(storage ExportStore, ledger export.LedgerWriter, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   storage,
		ledger:    ledger,
		batchSize: batchSize,
	}
}

// HandleExportMessage processes a single ledger export message from AMQP
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.LedgerExportMessage) error {
	slog.InfoContext(ctx, "Processing export message",
		"id", msg.ID,
		"version", msg.Version)

	if err := w.exportItem(ctx, msg.ID); err != nil {
		return fmt.Errorf("export payment item: %w", err)
	}

	return nil
}

// ProcessPendingItems exports any payment items that haven't been appended yet
// This is a backup mechanism in case AMQP messages are lost
func (w *ExportWorker) ProcessPendingItems(ctx context.Context) error {
	pending, err := w.storage.GetPendingExportItems(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending export items: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending export items", "count", len(pending))

	for _, p := range pending {
		if err := w.exportItem(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export payment item", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupExportCheck verifies and exports any pending items at worker startup
// This is useful to recover from missed AMQP messages or worker downtime
func (w *ExportWorker) StartupExportCheck(ctx context.Context) error {
	// Get a larger batch for startup check
	pending, err := w.storage.GetPendingExportItems(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending export items for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending export items found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending export items on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		if err := w.exportItem(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export payment item during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup export completed",
		"total", len(pending),
		"exported", successCount,
		"errors", errorCount)

	return nil
}

func (w *ExportWorker) exportItem(ctx context.Context, id int64) error {
	item, err := w.storage.GetPaymentItem(ctx, id)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("get payment item from storage: %w", err)
	}

	ref, err := w.ledger.Append(ctx, item)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := w.storage.MarkExported(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", id, "error", err)
		// Don't return error here - the append actually worked
	}

	slog.InfoContext(ctx, "Successfully exported payment item",
		"id", id,
		"sheets_ref", ref,
		"item_name", item.ItemName,
		"total_amount", item.TotalAmount)

	return nil
}
