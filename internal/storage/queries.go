package storage

import (
	"context"
	"database/sql"
	"time"

	"homeledger/internal/core"
)

// Queries is the hand-written SQL layer over the SQLite schema. Every method
// takes a context and returns the driver error unwrapped; the repository
// wraps them with operation context.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const paymentItemColumns = `id, item_name, category, start_date, due_date, total_amount, paid_amount, payment_type, notes`

func scanPaymentItem(row interface{ Scan(...any) error }) (core.PaymentItem, error) {
	var p core.PaymentItem
	err := row.Scan(&p.ID, &p.ItemName, &p.Category, &p.StartDate, &p.DueDate,
		&p.TotalAmount, &p.PaidAmount, &p.PaymentType, &p.Notes)
	return p, err
}

func (q *Queries) CreatePaymentItem(ctx context.Context, p core.PaymentItem) (core.PaymentItem, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO payment_items (item_name, category, start_date, due_date, total_amount, paid_amount, payment_type, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+paymentItemColumns,
		p.ItemName, p.Category, p.StartDate, p.DueDate, p.TotalAmount, p.PaidAmount, p.PaymentType, p.Notes)
	return scanPaymentItem(row)
}

func (q *Queries) GetPaymentItem(ctx context.Context, id int64) (core.PaymentItem, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+paymentItemColumns+` FROM payment_items WHERE id = ?`, id)
	return scanPaymentItem(row)
}

func (q *Queries) ListPaymentItems(ctx context.Context) ([]core.PaymentItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+paymentItemColumns+` FROM payment_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []core.PaymentItem
	for rows.Next() {
		p, err := scanPaymentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (q *Queries) ListPaymentItemsByType(ctx context.Context, paymentType string) ([]core.PaymentItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+paymentItemColumns+` FROM payment_items WHERE payment_type = ? ORDER BY id`, paymentType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []core.PaymentItem
	for rows.Next() {
		p, err := scanPaymentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (q *Queries) UpdatePaymentItem(ctx context.Context, p core.PaymentItem) (core.PaymentItem, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE payment_items
		SET item_name = ?, category = ?, start_date = ?, due_date = ?,
		    total_amount = ?, paid_amount = ?, payment_type = ?, notes = ?,
		    export_state = 'pending', version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+paymentItemColumns,
		p.ItemName, p.Category, p.StartDate, p.DueDate, p.TotalAmount, p.PaidAmount, p.PaymentType, p.Notes, p.ID)
	return scanPaymentItem(row)
}

func (q *Queries) DeletePaymentItem(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM payment_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PendingExportItem is the minimal row shape queued for ledger export.
type PendingExportItem struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

func (q *Queries) GetPendingExportItems(ctx context.Context, limit int64) ([]PendingExportItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, version, created_at FROM payment_items
		WHERE export_state = 'pending'
		ORDER BY created_at
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PendingExportItem
	for rows.Next() {
		var p PendingExportItem
		if err := rows.Scan(&p.ID, &p.Version, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (q *Queries) MarkItemExported(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE payment_items SET export_state = 'synced', updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func (q *Queries) MarkItemExportError(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE payment_items SET export_state = 'error', updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

const employeeColumns = `id, name, monthly_salary, insured_salary, dependents, voluntary_pension_rate`

func scanEmployee(row interface{ Scan(...any) error }) (core.Employee, error) {
	var e core.Employee
	err := row.Scan(&e.ID, &e.Name, &e.MonthlySalary, &e.InsuredSalary, &e.Dependents, &e.VoluntaryPensionRate)
	return e, err
}

func (q *Queries) CreateEmployee(ctx context.Context, e core.Employee) (core.Employee, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO employees (name, monthly_salary, insured_salary, dependents, voluntary_pension_rate)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+employeeColumns,
		e.Name, e.MonthlySalary, e.InsuredSalary, e.Dependents, e.VoluntaryPensionRate)
	return scanEmployee(row)
}

func (q *Queries) GetEmployee(ctx context.Context, id int64) (core.Employee, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	return scanEmployee(row)
}

func (q *Queries) ListEmployees(ctx context.Context) ([]core.Employee, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []core.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (q *Queries) UpdateEmployee(ctx context.Context, e core.Employee) (core.Employee, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE employees
		SET name = ?, monthly_salary = ?, insured_salary = ?, dependents = ?,
		    voluntary_pension_rate = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		RETURNING `+employeeColumns,
		e.Name, e.MonthlySalary, e.InsuredSalary, e.Dependents, e.VoluntaryPensionRate, e.ID)
	return scanEmployee(row)
}

func (q *Queries) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const documentColumns = `id, file_name, file_url, content_type, status, recognized_amount, recognized_vendor, recognized_date, uploaded_at`

func scanDocument(row interface{ Scan(...any) error }) (core.Document, error) {
	var d core.Document
	err := row.Scan(&d.ID, &d.FileName, &d.FileURL, &d.ContentType, &d.Status,
		&d.RecognizedAmount, &d.RecognizedVendor, &d.RecognizedDate, &d.UploadedAt)
	return d, err
}

func (q *Queries) CreateDocument(ctx context.Context, d core.Document) (core.Document, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO documents (id, file_name, file_url, content_type, status, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+documentColumns,
		d.ID, d.FileName, d.FileURL, d.ContentType, d.Status, d.UploadedAt)
	return scanDocument(row)
}

func (q *Queries) GetDocument(ctx context.Context, id string) (core.Document, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

func (q *Queries) ListDocuments(ctx context.Context) ([]core.Document, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+documentColumns+` FROM documents ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []core.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (q *Queries) MarkDocumentRecognized(ctx context.Context, id, amount, vendor, date string) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE documents
		SET status = 'recognized', recognized_amount = ?, recognized_vendor = ?, recognized_date = ?
		WHERE id = ?`, amount, vendor, date, id)
	return err
}

func (q *Queries) MarkDocumentFailed(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE documents SET status = 'failed' WHERE id = ?`, id)
	return err
}

func (q *Queries) UpsertBudgetPlan(ctx context.Context, b core.BudgetPlan) (core.BudgetPlan, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO budget_plans (category, year, month, planned_amount)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (category, year, month) DO UPDATE SET planned_amount = excluded.planned_amount
		RETURNING id, category, year, month, planned_amount`,
		b.Category, b.Year, b.Month, b.PlannedAmount)
	var out core.BudgetPlan
	err := row.Scan(&out.ID, &out.Category, &out.Year, &out.Month, &out.PlannedAmount)
	return out, err
}

func (q *Queries) ListBudgetPlans(ctx context.Context, year, month int) ([]core.BudgetPlan, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, category, year, month, planned_amount FROM budget_plans
		WHERE year = ? AND month = ?
		ORDER BY category`, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []core.BudgetPlan
	for rows.Next() {
		var b core.BudgetPlan
		if err := rows.Scan(&b.ID, &b.Category, &b.Year, &b.Month, &b.PlannedAmount); err != nil {
			return nil, err
		}
		plans = append(plans, b)
	}
	return plans, rows.Err()
}

func (q *Queries) CreateAllowanceEntry(ctx context.Context, a core.AllowanceEntry) (core.AllowanceEntry, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO allowance_entries (child_name, kind, amount, goal_name, goal_target, note, entry_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, child_name, kind, amount, goal_name, goal_target, note, entry_date`,
		a.ChildName, a.Kind, a.Amount, a.GoalName, a.GoalTarget, a.Note, a.EntryDate)
	var out core.AllowanceEntry
	err := row.Scan(&out.ID, &out.ChildName, &out.Kind, &out.Amount, &out.GoalName, &out.GoalTarget, &out.Note, &out.EntryDate)
	return out, err
}

func (q *Queries) ListAllowanceEntries(ctx context.Context, childName string) ([]core.AllowanceEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, child_name, kind, amount, goal_name, goal_target, note, entry_date
		FROM allowance_entries
		WHERE child_name = ?
		ORDER BY id`, childName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []core.AllowanceEntry
	for rows.Next() {
		var a core.AllowanceEntry
		if err := rows.Scan(&a.ID, &a.ChildName, &a.Kind, &a.Amount, &a.GoalName, &a.GoalTarget, &a.Note, &a.EntryDate); err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}
