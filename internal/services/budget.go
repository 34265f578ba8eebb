package services

import (
	"sort"

	"homeledger/internal/core"
)

// BudgetLine compares planned and actual spend for one category in a month.
type BudgetLine struct {
	Category  string `json:"category"`
	Planned   int64  `json:"planned"`
	Actual    int64  `json:"actual"`
	Remaining int64  `json:"remaining"`
}

// BudgetReport joins the month's budget plans against the payments whose due
// date falls in that month. Actual spend is the paid amount, not the billed
// amount. Categories with spending but no plan appear with Planned 0.
func BudgetReport(plans []core.BudgetPlan, items []core.PaymentItem, year, month int) []BudgetLine {
	actuals := make(map[string]int64)
	for _, item := range items {
		due, ok := core.ParseDate(item.DueDate)
		if !ok || due.Year() != year || int(due.Month()) != month {
			continue
		}
		actuals[item.Category] += core.AmountOrZero(item.PaidAmount)
	}

	lines := make(map[string]*BudgetLine)
	for _, plan := range plans {
		if plan.Year != year || plan.Month != month {
			continue
		}
		lines[plan.Category] = &BudgetLine{
			Category: plan.Category,
			Planned:  plan.PlannedAmount,
		}
	}
	for category, actual := range actuals {
		if category == "" {
			continue
		}
		line, ok := lines[category]
		if !ok {
			line = &BudgetLine{Category: category}
			lines[category] = line
		}
		line.Actual = actual
	}

	report := make([]BudgetLine, 0, len(lines))
	for _, line := range lines {
		line.Remaining = line.Planned - line.Actual
		report = append(report, *line)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Category < report[j].Category })
	return report
}
