package installment

import (
	"testing"
	"time"

	"homeledger/internal/core"
)

var analysisNow = time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)

func TestAnalyzeOverdueInstallment(t *testing.T) {
	// Start date 10 days in the past, nothing paid.
	item := core.PaymentItem{
		ItemName:    "裝修費 (第2期/共5期)",
		StartDate:   "2026-08-18",
		PaidAmount:  "0",
		TotalAmount: "5000",
		PaymentType: core.PaymentTypeInstallment,
	}
	a := AnalyzeAt(item, analysisNow)

	if a.CurrentPeriod != 2 || a.TotalPeriods != 5 {
		t.Fatalf("periods = (%d, %d), want (2, 5)", a.CurrentPeriod, a.TotalPeriods)
	}
	if a.BaseName != "裝修費" {
		t.Errorf("base name = %q, want 裝修費", a.BaseName)
	}
	if a.DaysUntilDue != -10 {
		t.Errorf("days until due = %d, want -10", a.DaysUntilDue)
	}
	if a.IsPaid {
		t.Error("item with 0 paid should not be paid")
	}
	if !a.IsOverdue || a.Status != StatusOverdue {
		t.Errorf("expected overdue status, got %q (overdue=%v)", a.Status, a.IsOverdue)
	}
	if a.RemainingAmount != 5000 {
		t.Errorf("remaining = %d, want 5000", a.RemainingAmount)
	}
	// No notes marker: project total approximated as amount × periods.
	if a.ProjectTotalAmount != 25000 {
		t.Errorf("project total = %d, want 25000", a.ProjectTotalAmount)
	}
	if a.PaidPeriods != 1 || a.RemainingPeriods != 4 {
		t.Errorf("period counters = (%d, %d), want (1, 4)", a.PaidPeriods, a.RemainingPeriods)
	}
	if a.AverageMonthlyAmount != 5000 {
		t.Errorf("average monthly = %d, want 5000", a.AverageMonthlyAmount)
	}
}

func TestAnalyzeStatusPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		startDate  string
		paidAmount string
		wantStatus string
	}{
		{"paid wins over overdue", "2026-08-01", "5000", StatusPaid},
		{"overpaid counts as paid", "2026-08-01", "6000", StatusPaid},
		{"overdue", "2026-08-01", "100", StatusOverdue},
		{"due today is due-soon", "2026-08-28", "0", StatusDueSoon},
		{"due in seven days is due-soon", "2026-09-04", "0", StatusDueSoon},
		{"due in eight days is normal", "2026-09-05", "0", StatusNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AnalyzeAt(core.PaymentItem{
				ItemName:    "貸款",
				StartDate:   tt.startDate,
				PaidAmount:  tt.paidAmount,
				TotalAmount: "5000",
				PaymentType: core.PaymentTypeInstallment,
			}, analysisNow)
			if a.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (days=%d)", a.Status, tt.wantStatus, a.DaysUntilDue)
			}
			if a.IsOverdue && a.IsDueSoon {
				t.Error("overdue and due-soon must be mutually exclusive")
			}
			if a.IsPaid && (a.IsOverdue || a.IsDueSoon) {
				t.Error("a paid item can be neither overdue nor due-soon")
			}
		})
	}
}

func TestAnalyzeMissingStartDateIsDueToday(t *testing.T) {
	for _, start := range []string{"", "not-a-date"} {
		a := AnalyzeAt(core.PaymentItem{
			ItemName:    "房租",
			StartDate:   start,
			TotalAmount: "12000",
			PaymentType: core.PaymentTypeSingle,
		}, analysisNow)
		if a.DaysUntilDue != 0 {
			t.Errorf("start=%q: days until due = %d, want 0", start, a.DaysUntilDue)
		}
		if a.Status != StatusDueSoon {
			t.Errorf("start=%q: status = %q, want due-soon", start, a.Status)
		}
	}
}

func TestAnalyzeZeroPeriodMarker(t *testing.T) {
	// 共0期 passes free-text validation; the marker must degrade to the
	// single-period default instead of dividing by zero.
	a := AnalyzeAt(core.PaymentItem{
		ItemName:    "裝修費 第1期/共0期",
		TotalAmount: "5000",
		PaidAmount:  "0",
		PaymentType: core.PaymentTypeInstallment,
	}, analysisNow)
	if a.CurrentPeriod != 1 || a.TotalPeriods != 1 {
		t.Fatalf("periods = (%d, %d), want (1, 1)", a.CurrentPeriod, a.TotalPeriods)
	}
	if a.PeriodProgress != 100 {
		t.Errorf("period progress = %v, want 100", a.PeriodProgress)
	}
	if a.AverageMonthlyAmount != 5000 {
		t.Errorf("average monthly = %d, want 5000", a.AverageMonthlyAmount)
	}
}

func TestAnalyzeLocalTimezoneDayOffsets(t *testing.T) {
	// Reference time at noon in UTC+8: a due date must be parsed in the
	// same zone, or the offset between the two midnights shifts every day
	// count by one.
	zone := time.FixedZone("UTC+8", 8*60*60)
	noon := time.Date(2026, 8, 28, 12, 0, 0, 0, zone)

	today := AnalyzeAt(core.PaymentItem{
		ItemName:    "房貸",
		StartDate:   "2026-08-28",
		TotalAmount: "20000",
		PaidAmount:  "0",
	}, noon)
	if today.DaysUntilDue != 0 {
		t.Errorf("due today: days until due = %d, want 0", today.DaysUntilDue)
	}
	if today.Status != StatusDueSoon {
		t.Errorf("due today: status = %q, want due-soon", today.Status)
	}

	yesterday := AnalyzeAt(core.PaymentItem{
		ItemName:    "房貸",
		StartDate:   "2026-08-27",
		TotalAmount: "20000",
		PaidAmount:  "0",
	}, noon)
	if yesterday.DaysUntilDue != -1 {
		t.Errorf("due yesterday: days until due = %d, want -1", yesterday.DaysUntilDue)
	}
	if yesterday.Status != StatusOverdue {
		t.Errorf("due yesterday: status = %q, want overdue", yesterday.Status)
	}

	s := CalculateStatsAt([]core.PaymentItem{{
		ItemName:    "房貸",
		PaymentType: core.PaymentTypeInstallment,
		TotalAmount: "20000",
		PaidAmount:  "0",
		DueDate:     "2026-08-27",
	}}, noon)
	if s.Overdue != 1 {
		t.Errorf("stats overdue = %d, want 1", s.Overdue)
	}
}

func TestAnalyzeZeroTotalAmount(t *testing.T) {
	a := AnalyzeAt(core.PaymentItem{
		ItemName:    "未知費用",
		TotalAmount: "0",
		PaidAmount:  "0",
	}, analysisNow)
	if a.Progress != 0 {
		t.Errorf("progress with zero total = %f, want 0", a.Progress)
	}
	if a.IsPaid {
		t.Error("zero-total item must not classify as paid")
	}
}

func TestAnalyzeProjectTotalFromNotes(t *testing.T) {
	a := AnalyzeAt(core.PaymentItem{
		ItemName:    "裝修費 (第1期/共4期)",
		TotalAmount: "5000",
		Notes:       "總費用=22,000",
	}, analysisNow)
	if a.ProjectTotalAmount != 22000 {
		t.Errorf("project total = %d, want 22000 from notes", a.ProjectTotalAmount)
	}
	if a.AverageMonthlyAmount != 5500 {
		t.Errorf("average monthly = %d, want 5500", a.AverageMonthlyAmount)
	}
}

func TestAnalyzePaidPeriodsCountsCurrentWhenPaid(t *testing.T) {
	a := AnalyzeAt(core.PaymentItem{
		ItemName:    "車貸 (第3期/共10期)",
		TotalAmount: "8000",
		PaidAmount:  "8000",
	}, analysisNow)
	if a.PaidPeriods != 3 {
		t.Errorf("paid periods = %d, want 3", a.PaidPeriods)
	}
	if a.RemainingPeriods != 7 {
		t.Errorf("remaining periods = %d, want 7", a.RemainingPeriods)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	item := core.PaymentItem{
		ItemName:    "裝修費 (第2期/共5期)",
		StartDate:   "2026-08-18",
		PaidAmount:  "1000",
		TotalAmount: "5000",
		Notes:       "總費用=25000",
	}
	a := AnalyzeAt(item, analysisNow)
	b := AnalyzeAt(item, analysisNow)
	if a != b {
		t.Fatalf("identical inputs produced different analyses")
	}
}

func TestCalculateStats(t *testing.T) {
	items := []core.PaymentItem{
		{ // paid
			ItemName: "A", PaymentType: core.PaymentTypeInstallment,
			TotalAmount: "1000", PaidAmount: "1000", DueDate: "2026-08-01",
		},
		{ // overdue
			ItemName: "B", PaymentType: core.PaymentTypeInstallment,
			TotalAmount: "2000", PaidAmount: "500", DueDate: "2026-08-20",
		},
		{ // due soon
			ItemName: "C", PaymentType: core.PaymentTypeInstallment,
			TotalAmount: "3000", PaidAmount: "0", DueDate: "2026-09-01",
		},
		{ // normal
			ItemName: "D", PaymentType: core.PaymentTypeInstallment,
			TotalAmount: "4000", PaidAmount: "0", DueDate: "2026-12-01",
		},
		{ // wrong type: excluded entirely
			ItemName: "E", PaymentType: core.PaymentTypeSingle,
			TotalAmount: "99999", PaidAmount: "0", DueDate: "2026-08-01",
		},
	}
	s := CalculateStatsAt(items, analysisNow)

	if s.Total != 4 {
		t.Fatalf("total = %d, want 4", s.Total)
	}
	if s.Completed != 1 || s.Overdue != 1 || s.DueSoon != 1 {
		t.Errorf("buckets = completed %d, overdue %d, dueSoon %d; want 1 each",
			s.Completed, s.Overdue, s.DueSoon)
	}
	if s.TotalAmount != 10000 || s.PaidAmount != 1500 {
		t.Errorf("sums = (%d, %d), want (10000, 1500)", s.TotalAmount, s.PaidAmount)
	}
	if s.RemainingAmount != 8500 {
		t.Errorf("remaining = %d, want 8500", s.RemainingAmount)
	}
	// 1500/10000 = 15.0%
	if s.AverageProgress != 15.0 {
		t.Errorf("average progress = %v, want 15.0", s.AverageProgress)
	}
}

func TestCalculateStatsUsesDueDateField(t *testing.T) {
	// StartDate says overdue, DueDate says far future: stats must follow
	// DueDate. The analyzer and the stats aggregation intentionally read
	// different date fields.
	item := core.PaymentItem{
		ItemName:    "F",
		PaymentType: core.PaymentTypeInstallment,
		TotalAmount: "1000",
		PaidAmount:  "0",
		StartDate:   "2026-08-01",
		DueDate:     "2026-12-31",
	}
	s := CalculateStatsAt([]core.PaymentItem{item}, analysisNow)
	if s.Overdue != 0 {
		t.Errorf("stats bucketed by StartDate instead of DueDate")
	}

	a := AnalyzeAt(item, analysisNow)
	if !a.IsOverdue {
		t.Errorf("analyzer should still derive dueness from StartDate")
	}
}

func TestCalculateStatsMissingDueDate(t *testing.T) {
	s := CalculateStatsAt([]core.PaymentItem{{
		ItemName:    "G",
		PaymentType: core.PaymentTypeInstallment,
		TotalAmount: "1000",
		PaidAmount:  "0",
	}}, analysisNow)
	if s.Overdue != 0 || s.DueSoon != 0 {
		t.Errorf("item without due date must bucket as neither overdue nor due-soon")
	}
	if s.Total != 1 {
		t.Errorf("item still counts toward totals")
	}
}

func TestCalculateStatsZeroTotalNeverCompleted(t *testing.T) {
	// A zero-total item with payments recorded against it is malformed
	// data; both readers agree it is not a completed installment.
	item := core.PaymentItem{
		ItemName:    "I",
		PaymentType: core.PaymentTypeInstallment,
		TotalAmount: "0",
		PaidAmount:  "500",
	}
	if s := CalculateStatsAt([]core.PaymentItem{item}, analysisNow); s.Completed != 0 {
		t.Errorf("completed = %d, want 0", s.Completed)
	}
	if a := AnalyzeAt(item, analysisNow); a.IsPaid {
		t.Errorf("analyzer classified a zero-total item as paid")
	}
}

func TestCalculateStatsEmpty(t *testing.T) {
	s := CalculateStatsAt(nil, analysisNow)
	if s.AverageProgress != 0 {
		t.Errorf("empty stats average progress = %v, want 0", s.AverageProgress)
	}
}

func TestCalculateStatsAverageProgressRounding(t *testing.T) {
	// 1/3 paid -> 33.333...% rounds to 33.3 at one decimal.
	s := CalculateStatsAt([]core.PaymentItem{{
		ItemName:    "H",
		PaymentType: core.PaymentTypeInstallment,
		TotalAmount: "3000",
		PaidAmount:  "1000",
	}}, analysisNow)
	if s.AverageProgress != 33.3 {
		t.Errorf("average progress = %v, want 33.3", s.AverageProgress)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		item core.PaymentItem
		want float64
	}{
		{"half paid", core.PaymentItem{TotalAmount: "1000", PaidAmount: "500"}, 50},
		{"zero total", core.PaymentItem{TotalAmount: "0", PaidAmount: "500"}, 0},
		{"overpaid", core.PaymentItem{TotalAmount: "1000", PaidAmount: "1500"}, 150},
		{"blank amounts", core.PaymentItem{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.item); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}
