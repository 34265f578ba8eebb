package installment

import "testing"

func TestSchedule(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		months      int
		wantMonthly int64
		wantFirst   int64
		wantAmounts []int64
	}{
		{
			name:        "remainder goes to first period",
			total:       100000,
			months:      3,
			wantMonthly: 33333,
			wantFirst:   33334,
			wantAmounts: []int64{33334, 33333, 33333},
		},
		{
			name:        "even split has no remainder",
			total:       12000,
			months:      4,
			wantMonthly: 3000,
			wantFirst:   3000,
			wantAmounts: []int64{3000, 3000, 3000, 3000},
		},
		{
			name:        "single month",
			total:       5000,
			months:      1,
			wantMonthly: 5000,
			wantFirst:   5000,
			wantAmounts: []int64{5000},
		},
		{
			name:        "total smaller than months",
			total:       2,
			months:      3,
			wantMonthly: 0,
			wantFirst:   2,
			wantAmounts: []int64{2, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Schedule(tt.total, tt.months)
			if plan.MonthlyAmount != tt.wantMonthly {
				t.Errorf("monthly = %d, want %d", plan.MonthlyAmount, tt.wantMonthly)
			}
			if plan.FirstPayment != tt.wantFirst {
				t.Errorf("first payment = %d, want %d", plan.FirstPayment, tt.wantFirst)
			}
			if len(plan.Periods) != len(tt.wantAmounts) {
				t.Fatalf("got %d periods, want %d", len(plan.Periods), len(tt.wantAmounts))
			}
			var sum int64
			for i, p := range plan.Periods {
				if p.Period != i+1 {
					t.Errorf("period %d numbered %d", i+1, p.Period)
				}
				if p.Amount != tt.wantAmounts[i] {
					t.Errorf("period %d amount = %d, want %d", p.Period, p.Amount, tt.wantAmounts[i])
				}
				wantType := PeriodRegular
				if i == 0 {
					wantType = PeriodFirst
				}
				if p.Type != wantType {
					t.Errorf("period %d type = %q, want %q", p.Period, p.Type, wantType)
				}
				sum += p.Amount
			}
			if sum != tt.total {
				t.Errorf("periods sum to %d, want exactly %d", sum, tt.total)
			}
		})
	}
}

func TestScheduleDegenerate(t *testing.T) {
	for _, tt := range []struct {
		name   string
		total  int64
		months int
	}{
		{"zero total", 0, 3},
		{"negative total", -100, 3},
		{"zero months", 1000, 0},
		{"negative months", 1000, -1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			plan := Schedule(tt.total, tt.months)
			if len(plan.Periods) != 0 {
				t.Errorf("degenerate input produced %d periods", len(plan.Periods))
			}
			if plan.TotalAmount != 0 || plan.MonthlyAmount != 0 {
				t.Errorf("degenerate plan carries amounts: %+v", plan)
			}
		})
	}
}
