package services

import "homeledger/internal/core"

// AllowanceSummary is the derived state of one child's allowance ledger.
type AllowanceSummary struct {
	ChildName  string `json:"child_name"`
	Balance    int64  `json:"balance"`
	Saved      int64  `json:"saved"`
	GoalName   string `json:"goal_name"`
	GoalTarget int64  `json:"goal_target"`
	// GoalProgress is saved/target as a percentage, 0 when no target is set.
	GoalProgress float64 `json:"goal_progress"`
}

// SummarizeAllowance folds a child's ledger entries into a summary. Earn
// increases the balance, spend decreases it, save moves money from the
// balance into the savings bucket. The goal is taken from the most recent
// save entry that names one.
func SummarizeAllowance(childName string, entries []core.AllowanceEntry) AllowanceSummary {
	summary := AllowanceSummary{ChildName: childName}

	for _, entry := range entries {
		if entry.ChildName != childName {
			continue
		}
		switch entry.Kind {
		case core.AllowanceEarn:
			summary.Balance += entry.Amount
		case core.AllowanceSpend:
			summary.Balance -= entry.Amount
		case core.AllowanceSave:
			summary.Balance -= entry.Amount
			summary.Saved += entry.Amount
			if entry.GoalName != "" {
				summary.GoalName = entry.GoalName
				summary.GoalTarget = entry.GoalTarget
			}
		}
	}

	if summary.GoalTarget > 0 {
		summary.GoalProgress = float64(summary.Saved) / float64(summary.GoalTarget) * 100
	}

	return summary
}
