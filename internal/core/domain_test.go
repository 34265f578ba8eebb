package core

import (
	"testing"
	"time"
)

func TestPaymentItemValidate(t *testing.T) {
	valid := PaymentItem{
		ItemName:    "裝修費 (第2期/共5期)",
		TotalAmount: "5000",
		PaidAmount:  "0",
		PaymentType: PaymentTypeInstallment,
		StartDate:   "2026-01-15",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*PaymentItem)
	}{
		{"empty name", func(p *PaymentItem) { p.ItemName = "  " }},
		{"bad type", func(p *PaymentItem) { p.PaymentType = "weekly" }},
		{"bad total", func(p *PaymentItem) { p.TotalAmount = "-5" }},
		{"bad paid", func(p *PaymentItem) { p.PaidAmount = "xx" }},
		{"bad start date", func(p *PaymentItem) { p.StartDate = "15/01/2026" }},
		{"bad due date", func(p *PaymentItem) { p.DueDate = "soon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)
			if err := item.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestEmployeeValidate(t *testing.T) {
	e := Employee{Name: "Chen", MonthlySalary: 30000}
	if err := e.Validate(); err != nil {
		t.Fatalf("valid employee rejected: %v", err)
	}
	e.MonthlySalary = 0
	if err := e.Validate(); err != ErrNegativeSalary {
		t.Fatalf("expected ErrNegativeSalary, got %v", err)
	}
	e.MonthlySalary = 30000
	e.VoluntaryPensionRate = 7
	if err := e.Validate(); err == nil {
		t.Fatal("rate above 6 should be rejected")
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2026-08-28")
	if !ok {
		t.Fatal("expected parse success")
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", d)
	}
	if _, ok := ParseDate(""); ok {
		t.Fatal("empty string should not parse")
	}
	if _, ok := ParseDate("28-08-2026"); ok {
		t.Fatal("wrong layout should not parse")
	}
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2026, 8, 28, 17, 45, 12, 999, time.UTC)
	got := Midnight(ts)
	want := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Midnight() = %v, want %v", got, want)
	}
}
