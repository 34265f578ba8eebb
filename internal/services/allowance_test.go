package services

import (
	"testing"

	"homeledger/internal/core"
)

func TestSummarizeAllowance(t *testing.T) {
	entries := []core.AllowanceEntry{
		{ChildName: "小明", Kind: core.AllowanceEarn, Amount: 500},
		{ChildName: "小明", Kind: core.AllowanceSpend, Amount: 120},
		{ChildName: "小明", Kind: core.AllowanceSave, Amount: 200, GoalName: "腳踏車", GoalTarget: 2000},
		{ChildName: "小華", Kind: core.AllowanceEarn, Amount: 9999}, // other child
	}

	summary := SummarizeAllowance("小明", entries)

	if summary.Balance != 180 {
		t.Errorf("Balance = %d, want 180 (500 - 120 - 200)", summary.Balance)
	}
	if summary.Saved != 200 {
		t.Errorf("Saved = %d, want 200", summary.Saved)
	}
	if summary.GoalName != "腳踏車" || summary.GoalTarget != 2000 {
		t.Errorf("goal = %q/%d, want 腳踏車/2000", summary.GoalName, summary.GoalTarget)
	}
	if summary.GoalProgress != 10 {
		t.Errorf("GoalProgress = %v, want 10", summary.GoalProgress)
	}
}

func TestSummarizeAllowanceLatestGoalWins(t *testing.T) {
	entries := []core.AllowanceEntry{
		{ChildName: "小明", Kind: core.AllowanceSave, Amount: 100, GoalName: "玩具", GoalTarget: 500},
		{ChildName: "小明", Kind: core.AllowanceSave, Amount: 100, GoalName: "腳踏車", GoalTarget: 2000},
	}
	summary := SummarizeAllowance("小明", entries)
	if summary.GoalName != "腳踏車" {
		t.Errorf("GoalName = %q, want the most recent goal", summary.GoalName)
	}
	if summary.Saved != 200 {
		t.Errorf("Saved = %d, want 200 across both goals", summary.Saved)
	}
}

func TestSummarizeAllowanceNoEntries(t *testing.T) {
	summary := SummarizeAllowance("小明", nil)
	if summary.Balance != 0 || summary.Saved != 0 || summary.GoalProgress != 0 {
		t.Errorf("empty ledger should summarize to zero, got %+v", summary)
	}
	if summary.ChildName != "小明" {
		t.Errorf("ChildName = %q, want 小明", summary.ChildName)
	}
}
