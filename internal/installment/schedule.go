package installment

// Period labels on an amortization plan.
const (
	PeriodFirst   = "first"
	PeriodRegular = "regular"
)

// PlanPeriod is one row of an amortization plan. The first period absorbs
// the division remainder so the plan sums to the total exactly.
type PlanPeriod struct {
	Period int    `json:"period"`
	Amount int64  `json:"amount"`
	Type   string `json:"type"`
}

// Plan is a deterministic equal-split amortization of a total over a number
// of months.
type Plan struct {
	TotalAmount   int64        `json:"total_amount"`
	Months        int          `json:"months"`
	MonthlyAmount int64        `json:"monthly_amount"`
	FirstPayment  int64        `json:"first_payment"`
	Remainder     int64        `json:"remainder"`
	Periods       []PlanPeriod `json:"periods"`
}

// Schedule splits totalAmount over months with floor division, assigning the
// remainder to period 1. The period amounts always sum to totalAmount
// exactly. Degenerate inputs (non-positive total or months) return a zero
// plan with an empty period list.
func Schedule(totalAmount int64, months int) Plan {
	if totalAmount <= 0 || months <= 0 {
		return Plan{Periods: []PlanPeriod{}}
	}

	monthly := totalAmount / int64(months)
	remainder := totalAmount - monthly*int64(months)

	plan := Plan{
		TotalAmount:   totalAmount,
		Months:        months,
		MonthlyAmount: monthly,
		FirstPayment:  monthly + remainder,
		Remainder:     remainder,
		Periods:       make([]PlanPeriod, 0, months),
	}

	for period := 1; period <= months; period++ {
		p := PlanPeriod{Period: period, Amount: monthly, Type: PeriodRegular}
		if period == 1 {
			p.Amount = plan.FirstPayment
			p.Type = PeriodFirst
		}
		plan.Periods = append(plan.Periods, p)
	}
	return plan
}
