package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Payment types stored on a payment item.
	PaymentTypeSingle      = "single"
	PaymentTypeInstallment = "installment"
	PaymentTypeRecurring   = "recurring"

	// Document inbox lifecycle states.
	DocumentPending    = "pending"
	DocumentRecognized = "recognized"
	DocumentFailed     = "failed"

	// Allowance entry kinds for the kids ledger.
	AllowanceEarn  = "earn"
	AllowanceSpend = "spend"
	AllowanceSave  = "save"
)

type (
	// PaymentItem is a tracked payment: a one-off bill, one period of an
	// installment plan, or a recurring charge. Amounts are decimal strings
	// as entered by the user; StartDate and DueDate are YYYY-MM-DD strings
	// and may be empty. ItemName may embed a 第N期/共M期 period marker and
	// Notes may embed a 總費用= project total.
	PaymentItem struct {
		ID          int64  `json:"id"`
		ItemName    string `json:"item_name"`
		Category    string `json:"category"`
		StartDate   string `json:"start_date"`
		DueDate     string `json:"due_date"`
		TotalAmount string `json:"total_amount"`
		PaidAmount  string `json:"paid_amount"`
		PaymentType string `json:"payment_type"`
		Notes       string `json:"notes"`
	}

	// Employee carries the payroll inputs for one person. MonthlySalary and
	// InsuredSalary are whole NTD; InsuredSalary 0 means no override.
	Employee struct {
		ID                   int64   `json:"id"`
		Name                 string  `json:"name"`
		MonthlySalary        int64   `json:"monthly_salary"`
		InsuredSalary        int64   `json:"insured_salary"`
		Dependents           int     `json:"dependents"`
		VoluntaryPensionRate float64 `json:"voluntary_pension_rate"`
	}

	// Document is an uploaded receipt or invoice awaiting recognition.
	// FileURL points at external object storage; this service keeps only
	// metadata and the recognition result.
	Document struct {
		ID               string    `json:"id"`
		FileName         string    `json:"file_name"`
		FileURL          string    `json:"file_url"`
		ContentType      string    `json:"content_type"`
		Status           string    `json:"status"`
		RecognizedAmount string    `json:"recognized_amount"`
		RecognizedVendor string    `json:"recognized_vendor"`
		RecognizedDate   string    `json:"recognized_date"`
		UploadedAt       time.Time `json:"uploaded_at"`
	}

	// BudgetPlan is the planned spend for one category in one month.
	BudgetPlan struct {
		ID            int64  `json:"id"`
		Category      string `json:"category"`
		Year          int    `json:"year"`
		Month         int    `json:"month"`
		PlannedAmount int64  `json:"planned_amount"`
	}

	// AllowanceEntry is one line in a child's allowance ledger. Save entries
	// accumulate toward GoalTarget when a goal is named.
	AllowanceEntry struct {
		ID         int64  `json:"id"`
		ChildName  string `json:"child_name"`
		Kind       string `json:"kind"`
		Amount     int64  `json:"amount"`
		GoalName   string `json:"goal_name"`
		GoalTarget int64  `json:"goal_target"`
		Note       string `json:"note"`
		EntryDate  string `json:"entry_date"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidType     = errors.New("invalid payment type")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidKind     = errors.New("invalid allowance kind")
	ErrNegativeSalary  = errors.New("monthly salary must be positive")
	ErrInvalidDocState = errors.New("invalid document status")
)

func (p PaymentItem) Validate() error {
	if len(strings.TrimSpace(p.ItemName)) == 0 {
		return ErrEmptyName
	}
	if len(p.ItemName) > 200 {
		return errors.New("item name too long (max 200 characters)")
	}
	switch p.PaymentType {
	case PaymentTypeSingle, PaymentTypeInstallment, PaymentTypeRecurring:
	default:
		return ErrInvalidType
	}
	if _, err := ParseAmount(p.TotalAmount); err != nil {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(p.PaidAmount) != "" {
		if _, err := ParseAmount(p.PaidAmount); err != nil {
			return ErrInvalidAmount
		}
	}
	if p.StartDate != "" {
		if _, ok := ParseDate(p.StartDate); !ok {
			return errors.New("invalid start date: expected YYYY-MM-DD")
		}
	}
	if p.DueDate != "" {
		if _, ok := ParseDate(p.DueDate); !ok {
			return errors.New("invalid due date: expected YYYY-MM-DD")
		}
	}
	return nil
}

func (e Employee) Validate() error {
	if len(strings.TrimSpace(e.Name)) == 0 {
		return ErrEmptyName
	}
	if e.MonthlySalary <= 0 {
		return ErrNegativeSalary
	}
	if e.Dependents < 0 {
		return errors.New("dependents cannot be negative")
	}
	if e.VoluntaryPensionRate < 0 || e.VoluntaryPensionRate > 6 {
		return errors.New("voluntary pension rate must be between 0 and 6")
	}
	return nil
}

func (d Document) Validate() error {
	if len(strings.TrimSpace(d.FileName)) == 0 {
		return ErrEmptyName
	}
	switch d.Status {
	case DocumentPending, DocumentRecognized, DocumentFailed:
	default:
		return ErrInvalidDocState
	}
	return nil
}

func (b BudgetPlan) Validate() error {
	if len(strings.TrimSpace(b.Category)) == 0 {
		return ErrEmptyName
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	if b.PlannedAmount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (a AllowanceEntry) Validate() error {
	if len(strings.TrimSpace(a.ChildName)) == 0 {
		return ErrEmptyName
	}
	switch a.Kind {
	case AllowanceEarn, AllowanceSpend, AllowanceSave:
	default:
		return ErrInvalidKind
	}
	if a.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD string and normalizes it to midnight UTC.
// Day-offset arithmetic against a local reference time must use ParseDateIn
// so both sides share a location.
// The second return is false when the string is empty or malformed.
func ParseDate(s string) (time.Time, bool) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn parses a YYYY-MM-DD string as midnight in loc.
func ParseDateIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return Midnight(t), true
}

// Midnight truncates a time to 00:00:00 in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
