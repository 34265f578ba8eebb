package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"homeledger/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreatePaymentItem(ctx context.Context, item core.PaymentItem) (core.PaymentItem, error) {
	created, err := r.queries.CreatePaymentItem(ctx, item)
	if err != nil {
		return core.PaymentItem{}, fmt.Errorf("create payment item: %w", err)
	}

	slog.InfoContext(ctx, "Payment item saved",
		"id", created.ID,
		"item_name", created.ItemName,
		"payment_type", created.PaymentType,
		"total_amount", created.TotalAmount)

	return created, nil
}

func (r *SQLiteRepository) GetPaymentItem(ctx context.Context, id int64) (core.PaymentItem, error) {
	item, err := r.queries.GetPaymentItem(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.PaymentItem{}, fmt.Errorf("payment item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.PaymentItem{}, fmt.Errorf("get payment item: %w", err)
	}
	return item, nil
}

func (r *SQLiteRepository) ListPaymentItems(ctx context.Context) ([]core.PaymentItem, error) {
	items, err := r.queries.ListPaymentItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment items: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) ListPaymentItemsByType(ctx context.Context, paymentType string) ([]core.PaymentItem, error) {
	items, err := r.queries.ListPaymentItemsByType(ctx, paymentType)
	if err != nil {
		return nil, fmt.Errorf("list payment items by type: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) UpdatePaymentItem(ctx context.Context, item core.PaymentItem) (core.PaymentItem, error) {
	updated, err := r.queries.UpdatePaymentItem(ctx, item)
	if errors.Is(err, sql.ErrNoRows) {
		return core.PaymentItem{}, fmt.Errorf("payment item %d: %w", item.ID, ErrNotFound)
	}
	if err != nil {
		return core.PaymentItem{}, fmt.Errorf("update payment item: %w", err)
	}
	return updated, nil
}

func (r *SQLiteRepository) DeletePaymentItem(ctx context.Context, id int64) error {
	err := r.queries.DeletePaymentItem(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("payment item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete payment item: %w", err)
	}
	return nil
}

// GetPendingExportItems returns payment items that still need to be appended
// to the external ledger.
func (r *SQLiteRepository) GetPendingExportItems(ctx context.Context, limit int) ([]PendingExportItem, error) {
	items, err := r.queries.GetPendingExportItems(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending export items: %w", err)
	}
	return items, nil
}

// MarkExported marks a payment item as successfully appended to the ledger.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	if err := r.queries.MarkItemExported(ctx, id); err != nil {
		return fmt.Errorf("mark item exported: %w", err)
	}
	slog.InfoContext(ctx, "Payment item marked as exported", "id", id)
	return nil
}

// MarkExportError marks a payment item as having failed export.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	if err := r.queries.MarkItemExportError(ctx, id); err != nil {
		return fmt.Errorf("mark item export error: %w", err)
	}
	slog.WarnContext(ctx, "Payment item marked with export error", "id", id)
	return nil
}

func (r *SQLiteRepository) CreateEmployee(ctx context.Context, e core.Employee) (core.Employee, error) {
	created, err := r.queries.CreateEmployee(ctx, e)
	if err != nil {
		return core.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	slog.InfoContext(ctx, "Employee saved",
		"id", created.ID,
		"name", created.Name,
		"monthly_salary", created.MonthlySalary)

	return created, nil
}

func (r *SQLiteRepository) GetEmployee(ctx context.Context, id int64) (core.Employee, error) {
	e, err := r.queries.GetEmployee(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Employee{}, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListEmployees(ctx context.Context) ([]core.Employee, error) {
	employees, err := r.queries.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func (r *SQLiteRepository) UpdateEmployee(ctx context.Context, e core.Employee) (core.Employee, error) {
	updated, err := r.queries.UpdateEmployee(ctx, e)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Employee{}, fmt.Errorf("employee %d: %w", e.ID, ErrNotFound)
	}
	if err != nil {
		return core.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return updated, nil
}

func (r *SQLiteRepository) DeleteEmployee(ctx context.Context, id int64) error {
	err := r.queries.DeleteEmployee(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateDocument(ctx context.Context, d core.Document) (core.Document, error) {
	created, err := r.queries.CreateDocument(ctx, d)
	if err != nil {
		return core.Document{}, fmt.Errorf("create document: %w", err)
	}

	slog.InfoContext(ctx, "Document saved",
		"document_id", created.ID,
		"file_name", created.FileName,
		"status", created.Status)

	return created, nil
}

func (r *SQLiteRepository) GetDocument(ctx context.Context, id string) (core.Document, error) {
	d, err := r.queries.GetDocument(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Document{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) ListDocuments(ctx context.Context) ([]core.Document, error) {
	docs, err := r.queries.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (r *SQLiteRepository) MarkDocumentRecognized(ctx context.Context, id, amount, vendor, date string) error {
	if err := r.queries.MarkDocumentRecognized(ctx, id, amount, vendor, date); err != nil {
		return fmt.Errorf("mark document recognized: %w", err)
	}
	slog.InfoContext(ctx, "Document marked as recognized",
		"document_id", id,
		"recognized_amount", amount,
		"recognized_vendor", vendor)
	return nil
}

func (r *SQLiteRepository) MarkDocumentFailed(ctx context.Context, id string) error {
	if err := r.queries.MarkDocumentFailed(ctx, id); err != nil {
		return fmt.Errorf("mark document failed: %w", err)
	}
	slog.WarnContext(ctx, "Document marked as failed", "document_id", id)
	return nil
}

func (r *SQLiteRepository) UpsertBudgetPlan(ctx context.Context, b core.BudgetPlan) (core.BudgetPlan, error) {
	plan, err := r.queries.UpsertBudgetPlan(ctx, b)
	if err != nil {
		return core.BudgetPlan{}, fmt.Errorf("upsert budget plan: %w", err)
	}
	return plan, nil
}

func (r *SQLiteRepository) ListBudgetPlans(ctx context.Context, year, month int) ([]core.BudgetPlan, error) {
	plans, err := r.queries.ListBudgetPlans(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("list budget plans: %w", err)
	}
	return plans, nil
}

func (r *SQLiteRepository) CreateAllowanceEntry(ctx context.Context, a core.AllowanceEntry) (core.AllowanceEntry, error) {
	entry, err := r.queries.CreateAllowanceEntry(ctx, a)
	if err != nil {
		return core.AllowanceEntry{}, fmt.Errorf("create allowance entry: %w", err)
	}
	return entry, nil
}

func (r *SQLiteRepository) ListAllowanceEntries(ctx context.Context, childName string) ([]core.AllowanceEntry, error) {
	entries, err := r.queries.ListAllowanceEntries(ctx, childName)
	if err != nil {
		return nil, fmt.Errorf("list allowance entries: %w", err)
	}
	return entries, nil
}
