package services

import (
	"context"
	"fmt"
	"log/slog"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/storage"
)

// PaymentService orchestrates payment item operations across SQLite and AMQP
type PaymentService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewPaymentService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *PaymentService {
	return &PaymentService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreatePaymentItem saves an item locally and queues it for ledger export
func (s *PaymentService) CreatePaymentItem(ctx context.Context, item core.PaymentItem) (core.PaymentItem, error) {
	if err := item.Validate(); err != nil {
		return core.PaymentItem{}, fmt.Errorf("validate payment item: %w", err)
	}

	// Save to SQLite first (fast, reliable)
	created, err := s.storage.CreatePaymentItem(ctx, item)
	if err != nil {
		return core.PaymentItem{}, fmt.Errorf("save payment item: %w", err)
	}

	// Publish async export message (non-blocking, version 1 for new items)
	if err := s.publishExportMessage(ctx, created.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"id", created.ID, "error", err)
		// Don't fail the request - item is saved locally
	}

	return created, nil
}

// UpdatePaymentItem updates an item locally and queues it for re-export
func (s *PaymentService) UpdatePaymentItem(ctx context.Context, item core.PaymentItem) (core.PaymentItem, error) {
	if err := item.Validate(); err != nil {
		return core.PaymentItem{}, fmt.Errorf("validate payment item: %w", err)
	}

	updated, err := s.storage.UpdatePaymentItem(ctx, item)
	if err != nil {
		return core.PaymentItem{}, fmt.Errorf("update payment item: %w", err)
	}

	if err := s.publishExportMessage(ctx, updated.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"id", updated.ID, "error", err)
	}

	return updated, nil
}

// DeletePaymentItem removes an item locally. The external ledger keeps its
// appended rows; it is an append-only journal, not a mirror.
func (s *PaymentService) DeletePaymentItem(ctx context.Context, id int64) error {
	if err := s.storage.DeletePaymentItem(ctx, id); err != nil {
		return fmt.Errorf("delete payment item: %w", err)
	}
	return nil
}

func (s *PaymentService) GetPaymentItem(ctx context.Context, id int64) (core.PaymentItem, error) {
	return s.storage.GetPaymentItem(ctx, id)
}

func (s *PaymentService) ListPaymentItems(ctx context.Context) ([]core.PaymentItem, error) {
	return s.storage.ListPaymentItems(ctx)
}

func (s *PaymentService) ListPaymentItemsByType(ctx context.Context, paymentType string) ([]core.PaymentItem, error) {
	return s.storage.ListPaymentItemsByType(ctx, paymentType)
}

func (s *PaymentService) publishExportMessage(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping export message")
		return nil
	}

	return s.amqpClient.PublishLedgerExport(ctx, id, version)
}

// Close closes both storage and AMQP connections
func (s *PaymentService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close payment service: %v", errs)
	}

	return nil
}
