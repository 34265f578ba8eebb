package services

import (
	"testing"

	"homeledger/internal/core"
)

func TestBudgetReport(t *testing.T) {
	plans := []core.BudgetPlan{
		{Category: "伙食", Year: 2026, Month: 8, PlannedAmount: 15000},
		{Category: "交通", Year: 2026, Month: 8, PlannedAmount: 3000},
		{Category: "伙食", Year: 2026, Month: 7, PlannedAmount: 14000}, // other month
	}
	items := []core.PaymentItem{
		{Category: "伙食", DueDate: "2026-08-10", PaidAmount: "4200", TotalAmount: "4200"},
		{Category: "伙食", DueDate: "2026-08-20", PaidAmount: "3800", TotalAmount: "3800"},
		{Category: "娛樂", DueDate: "2026-08-05", PaidAmount: "900", TotalAmount: "900"},
		{Category: "伙食", DueDate: "2026-07-10", PaidAmount: "9999", TotalAmount: "9999"}, // other month
		{Category: "伙食", DueDate: "", PaidAmount: "500", TotalAmount: "500"},             // no due date
	}

	report := BudgetReport(plans, items, 2026, 8)

	if len(report) != 3 {
		t.Fatalf("got %d lines, want 3", len(report))
	}

	// Sorted by category.
	byCategory := make(map[string]BudgetLine)
	for _, line := range report {
		byCategory[line.Category] = line
	}

	food := byCategory["伙食"]
	if food.Planned != 15000 || food.Actual != 8000 || food.Remaining != 7000 {
		t.Errorf("伙食 = %+v, want planned 15000, actual 8000, remaining 7000", food)
	}

	transport := byCategory["交通"]
	if transport.Planned != 3000 || transport.Actual != 0 || transport.Remaining != 3000 {
		t.Errorf("交通 = %+v, want planned 3000, actual 0", transport)
	}

	// Unplanned spending still shows up, with negative remaining.
	fun := byCategory["娛樂"]
	if fun.Planned != 0 || fun.Actual != 900 || fun.Remaining != -900 {
		t.Errorf("娛樂 = %+v, want planned 0, actual 900, remaining -900", fun)
	}
}

func TestBudgetReportEmpty(t *testing.T) {
	report := BudgetReport(nil, nil, 2026, 8)
	if len(report) != 0 {
		t.Errorf("empty inputs should produce empty report, got %d lines", len(report))
	}
}

func TestBudgetReportSorted(t *testing.T) {
	plans := []core.BudgetPlan{
		{Category: "c", Year: 2026, Month: 1, PlannedAmount: 1},
		{Category: "a", Year: 2026, Month: 1, PlannedAmount: 1},
		{Category: "b", Year: 2026, Month: 1, PlannedAmount: 1},
	}
	report := BudgetReport(plans, nil, 2026, 1)
	for i := 1; i < len(report); i++ {
		if report[i-1].Category > report[i].Category {
			t.Fatalf("report not sorted: %q before %q", report[i-1].Category, report[i].Category)
		}
	}
}
