package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"homeledger/internal/core"
	"homeledger/internal/services"
)

type budgetReportResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Lines []services.BudgetLine `json:"lines"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)
	key := fmt.Sprintf("%d-%02d", year, month)

	if lines, found := s.budgetCache.Get(key); found {
		writeJSON(w, http.StatusOK, budgetReportResponse{Year: year, Month: month, Lines: lines})
		return
	}

	plans, err := s.budgets.ListBudgetPlans(r.Context(), year, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "List budget plans error", "error", err, "year", year, "month", month)
		writeError(w, http.StatusInternalServerError, "failed to list budget plans")
		return
	}
	items, err := s.payments.ListPaymentItems(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List payments for budget error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute budget usage")
		return
	}

	lines := services.BudgetReport(plans, items, year, month)
	s.budgetCache.Set(key, lines)
	writeJSON(w, http.StatusOK, budgetReportResponse{Year: year, Month: month, Lines: lines})
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	var plan core.BudgetPlan
	if err := decodeJSON(w, r, &plan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan.Category = sanitizeInput(plan.Category)
	if err := plan.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.budgets.UpsertBudgetPlan(r.Context(), plan)
	if err != nil {
		slog.ErrorContext(r.Context(), "Upsert budget plan error", "error", err, "category", plan.Category)
		writeError(w, http.StatusInternalServerError, "failed to save budget plan")
		return
	}

	s.budgetCache.Clear()
	writeJSON(w, http.StatusOK, saved)
}

type allowanceResponse struct {
	Summary services.AllowanceSummary `json:"summary"`
	Entries []core.AllowanceEntry     `json:"entries"`
}

func (s *Server) handleAllowanceSummary(w http.ResponseWriter, r *http.Request) {
	child := strings.TrimSpace(r.PathValue("child"))
	if child == "" {
		writeError(w, http.StatusBadRequest, "missing child name")
		return
	}

	entries, err := s.allowance.ListAllowanceEntries(r.Context(), child)
	if err != nil {
		slog.ErrorContext(r.Context(), "List allowance entries error", "error", err, "child_name", child)
		writeError(w, http.StatusInternalServerError, "failed to list allowance entries")
		return
	}
	if entries == nil {
		entries = []core.AllowanceEntry{}
	}

	writeJSON(w, http.StatusOK, allowanceResponse{
		Summary: services.SummarizeAllowance(child, entries),
		Entries: entries,
	})
}

func (s *Server) handleCreateAllowanceEntry(w http.ResponseWriter, r *http.Request) {
	var entry core.AllowanceEntry
	if err := decodeJSON(w, r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry.ID = 0
	entry.ChildName = sanitizeInput(entry.ChildName)
	entry.GoalName = sanitizeInput(entry.GoalName)
	entry.Note = sanitizeInput(entry.Note)
	if err := entry.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.allowance.CreateAllowanceEntry(r.Context(), entry)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create allowance entry error", "error", err, "child_name", entry.ChildName)
		writeError(w, http.StatusInternalServerError, "failed to create allowance entry")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
