package http

import (
	"log/slog"
	"net/http"
	"strings"

	"homeledger/internal/core"
	"homeledger/internal/installment"
)

const statsCacheKey = "installment-stats"

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	var (
		items []core.PaymentItem
		err   error
	)
	if paymentType := strings.TrimSpace(r.URL.Query().Get("type")); paymentType != "" {
		items, err = s.payments.ListPaymentItemsByType(r.Context(), paymentType)
	} else {
		items, err = s.payments.ListPaymentItems(r.Context())
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "List payments error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list payment items")
		return
	}
	if items == nil {
		items = []core.PaymentItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var item core.PaymentItem
	if err := decodeJSON(w, r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item.ID = 0
	item.ItemName = sanitizeInput(item.ItemName)
	item.Category = sanitizeInput(item.Category)
	item.Notes = sanitizeInput(item.Notes)
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.payments.CreatePaymentItem(r.Context(), item)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create payment error", "error", err, "item_name", item.ItemName)
		writeError(w, http.StatusInternalServerError, "failed to create payment item")
		return
	}

	s.invalidateDerivedViews()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment item id")
		return
	}

	item, err := s.payments.GetPaymentItem(r.Context(), id)
	if err != nil {
		writeError(w, storageStatus(err), "payment item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment item id")
		return
	}

	var item core.PaymentItem
	if err := decodeJSON(w, r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item.ID = id
	item.ItemName = sanitizeInput(item.ItemName)
	item.Category = sanitizeInput(item.Category)
	item.Notes = sanitizeInput(item.Notes)
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := s.payments.UpdatePaymentItem(r.Context(), item)
	if err != nil {
		status := storageStatus(err)
		if status == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "Update payment error", "error", err, "id", id)
			writeError(w, status, "failed to update payment item")
			return
		}
		writeError(w, status, "payment item not found")
		return
	}

	s.invalidateDerivedViews()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment item id")
		return
	}

	if err := s.payments.DeletePaymentItem(r.Context(), id); err != nil {
		status := storageStatus(err)
		if status == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "Delete payment error", "error", err, "id", id)
			writeError(w, status, "failed to delete payment item")
			return
		}
		writeError(w, status, "payment item not found")
		return
	}

	s.invalidateDerivedViews()
	w.WriteHeader(http.StatusNoContent)
}

// analyzedItem pairs a stored payment item with its derived installment view.
type analyzedItem struct {
	Item     core.PaymentItem     `json:"item"`
	Analysis installment.Analysis `json:"analysis"`
}

func (s *Server) handleAnalyzeInstallments(w http.ResponseWriter, r *http.Request) {
	items, err := s.payments.ListPaymentItemsByType(r.Context(), core.PaymentTypeInstallment)
	if err != nil {
		slog.ErrorContext(r.Context(), "List installments error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list installment items")
		return
	}

	analyzed := make([]analyzedItem, 0, len(items))
	for _, item := range items {
		analyzed = append(analyzed, analyzedItem{
			Item:     item,
			Analysis: installment.Analyze(item),
		})
	}
	writeJSON(w, http.StatusOK, analyzed)
}

func (s *Server) handleInstallmentStats(w http.ResponseWriter, r *http.Request) {
	if stats, found := s.statsCache.Get(statsCacheKey); found {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	items, err := s.payments.ListPaymentItems(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List payments for stats error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute installment stats")
		return
	}

	stats := installment.CalculateStats(items)
	s.statsCache.Set(statsCacheKey, stats)
	writeJSON(w, http.StatusOK, stats)
}

type scheduleRequest struct {
	TotalAmount int64 `json:"total_amount"`
	Months      int   `json:"months"`
}

func (s *Server) handleInstallmentSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TotalAmount <= 0 || req.Months <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "total_amount and months must be positive")
		return
	}

	writeJSON(w, http.StatusOK, installment.Schedule(req.TotalAmount, req.Months))
}
