package installment

import (
	"math"
	"time"

	"homeledger/internal/core"
)

// Status classification for an analyzed item, in evaluation precedence.
const (
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
	StatusDueSoon = "due-soon"
	StatusNormal  = "normal"
)

// dueSoonWindowDays is the inclusive day-offset window for "due-soon".
const dueSoonWindowDays = 7

// Analysis is a pure projection over one payment item. It is computed fresh
// on every read, never persisted, and has no mutation methods.
type Analysis struct {
	CurrentPeriod int    `json:"current_period"`
	TotalPeriods  int    `json:"total_periods"`
	BaseName      string `json:"base_name"`

	DueDate      time.Time `json:"due_date"`
	DaysUntilDue int       `json:"days_until_due"`

	PaidAmount      int64   `json:"paid_amount"`
	TotalAmount     int64   `json:"total_amount"`
	RemainingAmount int64   `json:"remaining_amount"`
	Progress        float64 `json:"progress"`
	PeriodProgress  float64 `json:"period_progress"`

	IsPaid    bool   `json:"is_paid"`
	IsOverdue bool   `json:"is_overdue"`
	IsDueSoon bool   `json:"is_due_soon"`
	Status    string `json:"status"`

	ProjectTotalAmount   int64 `json:"project_total_amount"`
	PaidPeriods          int   `json:"paid_periods"`
	RemainingPeriods     int   `json:"remaining_periods"`
	MonthlyAmount        int64 `json:"monthly_amount"`
	AverageMonthlyAmount int64 `json:"average_monthly_amount"`
}

// Stats aggregates the installment items of a collection. Computed on
// demand, not cached.
type Stats struct {
	Total     int `json:"total"`
	DueSoon   int `json:"due_soon"`
	Overdue   int `json:"overdue"`
	Completed int `json:"completed"`

	TotalAmount     int64   `json:"total_amount"`
	PaidAmount      int64   `json:"paid_amount"`
	RemainingAmount int64   `json:"remaining_amount"`
	AverageProgress float64 `json:"average_progress"`
}

// Analyze derives the full installment view of a payment item as of now.
func Analyze(item core.PaymentItem) Analysis {
	return AnalyzeAt(item, time.Now())
}

// AnalyzeAt is Analyze with an explicit reference time, for deterministic
// callers and tests.
func AnalyzeAt(item core.PaymentItem, now time.Time) Analysis {
	var a Analysis

	a.CurrentPeriod, a.TotalPeriods = ExtractPeriods(item.ItemName)
	a.BaseName = BaseName(item.ItemName)

	// A schedule with no usable start date is treated as due today. The due
	// date is parsed in the reference time's location so the two midnights
	// share a UTC offset and day arithmetic stays whole.
	today := core.Midnight(now)
	due, ok := core.ParseDateIn(item.StartDate, now.Location())
	if !ok {
		due = today
	}
	a.DueDate = due
	a.DaysUntilDue = daysBetween(today, due)

	a.PaidAmount = core.AmountOrZero(item.PaidAmount)
	a.TotalAmount = core.AmountOrZero(item.TotalAmount)
	a.RemainingAmount = a.TotalAmount - a.PaidAmount
	if a.TotalAmount > 0 {
		a.Progress = float64(a.PaidAmount) / float64(a.TotalAmount) * 100
	}
	a.PeriodProgress = float64(a.CurrentPeriod) / float64(a.TotalPeriods) * 100

	// Over-payment counts as paid.
	a.IsPaid = a.Progress >= 100
	a.IsOverdue = !a.IsPaid && a.DaysUntilDue < 0
	a.IsDueSoon = !a.IsPaid && a.DaysUntilDue >= 0 && a.DaysUntilDue <= dueSoonWindowDays

	switch {
	case a.IsPaid:
		a.Status = StatusPaid
	case a.IsOverdue:
		a.Status = StatusOverdue
	case a.IsDueSoon:
		a.Status = StatusDueSoon
	default:
		a.Status = StatusNormal
	}

	if total, ok := ExtractProjectTotal(item.Notes); ok {
		a.ProjectTotalAmount = total
	} else {
		// Approximation: assumes every period carries this period's amount.
		a.ProjectTotalAmount = a.TotalAmount * int64(a.TotalPeriods)
	}

	if a.IsPaid {
		a.PaidPeriods = a.CurrentPeriod
	} else {
		a.PaidPeriods = a.CurrentPeriod - 1
		if a.PaidPeriods < 0 {
			a.PaidPeriods = 0
		}
	}
	a.RemainingPeriods = a.TotalPeriods - a.PaidPeriods

	a.MonthlyAmount = a.TotalAmount
	a.AverageMonthlyAmount = a.ProjectTotalAmount / int64(a.TotalPeriods)

	return a
}

// CalculateStats aggregates all items whose payment type is "installment".
//
// Dueness here is sourced from the item's DueDate field, not from the
// StartDate-derived due date AnalyzeAt uses. The two code paths are kept
// independent on purpose; see DESIGN.md.
func CalculateStats(items []core.PaymentItem) Stats {
	return CalculateStatsAt(items, time.Now())
}

// CalculateStatsAt is CalculateStats with an explicit reference time.
func CalculateStatsAt(items []core.PaymentItem, now time.Time) Stats {
	var s Stats
	today := core.Midnight(now)

	for _, item := range items {
		if item.PaymentType != core.PaymentTypeInstallment {
			continue
		}
		s.Total++

		total := core.AmountOrZero(item.TotalAmount)
		paid := core.AmountOrZero(item.PaidAmount)
		s.TotalAmount += total
		s.PaidAmount += paid

		isPaid := total > 0 && paid >= total
		if isPaid {
			s.Completed++
			continue
		}

		// An absent or unparseable due date buckets as neither overdue nor
		// due-soon.
		due, ok := core.ParseDateIn(item.DueDate, now.Location())
		if !ok {
			continue
		}
		days := daysBetween(today, due)
		switch {
		case days < 0:
			s.Overdue++
		case days <= dueSoonWindowDays:
			s.DueSoon++
		}
	}

	s.RemainingAmount = s.TotalAmount - s.PaidAmount
	if s.TotalAmount > 0 {
		s.AverageProgress = math.Round(float64(s.PaidAmount)/float64(s.TotalAmount)*1000) / 10
	}
	return s
}

// Progress returns the payment progress percentage of a single item without
// the full analysis.
func Progress(item core.PaymentItem) float64 {
	total := core.AmountOrZero(item.TotalAmount)
	if total <= 0 {
		return 0
	}
	return float64(core.AmountOrZero(item.PaidAmount)) / float64(total) * 100
}

// daysBetween returns the ceiling day offset from today to due; both inputs
// must already be midnight-normalized.
func daysBetween(today, due time.Time) int {
	return int(math.Ceil(due.Sub(today).Hours() / 24))
}
