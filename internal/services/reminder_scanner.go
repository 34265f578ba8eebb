package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"homeledger/internal/core"
	"homeledger/internal/installment"
)

// ItemLister is the slice of storage the reminder scanner needs.
type ItemLister interface {
	ListPaymentItems(ctx context.Context) ([]core.PaymentItem, error)
}

// ReminderScanner walks all payment items on a schedule and surfaces the
// ones that are overdue or about to come due. It only logs; delivery
// channels (mail, push) sit behind the log stream.
type ReminderScanner struct {
	storage ItemLister
}

func NewReminderScanner(storage ItemLister) *ReminderScanner {
	return &ReminderScanner{storage: storage}
}

// ScanResult summarizes one reminder pass.
type ScanResult struct {
	Checked int
	Overdue int
	DueSoon int
}

// Scan runs one reminder pass as of now.
func (s *ReminderScanner) Scan(ctx context.Context) (ScanResult, error) {
	return s.ScanAt(ctx, time.Now())
}

// ScanAt is Scan with an explicit reference time.
func (s *ReminderScanner) ScanAt(ctx context.Context, now time.Time) (ScanResult, error) {
	if s.storage == nil {
		return ScanResult{}, fmt.Errorf("scanner not properly initialized")
	}

	items, err := s.storage.ListPaymentItems(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("list payment items: %w", err)
	}

	var result ScanResult
	for _, item := range items {
		analysis := installment.AnalyzeAt(item, now)
		if analysis.IsPaid {
			continue
		}
		result.Checked++

		switch {
		case analysis.IsOverdue:
			result.Overdue++
			slog.WarnContext(ctx, "Payment overdue",
				"item_id", item.ID,
				"item_name", analysis.BaseName,
				"days_overdue", -analysis.DaysUntilDue,
				"remaining_amount", analysis.RemainingAmount)
		case analysis.IsDueSoon:
			result.DueSoon++
			slog.InfoContext(ctx, "Payment due soon",
				"item_id", item.ID,
				"item_name", analysis.BaseName,
				"days_until_due", analysis.DaysUntilDue,
				"remaining_amount", analysis.RemainingAmount)
		}
	}

	slog.InfoContext(ctx, "Reminder scan complete",
		"checked", result.Checked,
		"overdue", result.Overdue,
		"due_soon", result.DueSoon,
		"scan_date", now.Format("2006-01-02"))

	return result, nil
}
