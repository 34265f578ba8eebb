// Package http is the JSON API surface: payment CRUD, installment analytics,
// the payroll calculator, budgets, the kids allowance ledger, and the
// document inbox.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"homeledger/internal/cache"
	"homeledger/internal/core"
	"homeledger/internal/installment"
	"homeledger/internal/insurance"
	"homeledger/internal/services"
)

// PaymentStore is the payment-item surface the handlers need. Satisfied by
// services.PaymentService.
type PaymentStore interface {
	CreatePaymentItem(ctx context.Context, item core.PaymentItem) (core.PaymentItem, error)
	GetPaymentItem(ctx context.Context, id int64) (core.PaymentItem, error)
	ListPaymentItems(ctx context.Context) ([]core.PaymentItem, error)
	ListPaymentItemsByType(ctx context.Context, paymentType string) ([]core.PaymentItem, error)
	UpdatePaymentItem(ctx context.Context, item core.PaymentItem) (core.PaymentItem, error)
	DeletePaymentItem(ctx context.Context, id int64) error
}

// EmployeeStore is the payroll roster surface. Satisfied by
// storage.SQLiteRepository.
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, e core.Employee) (core.Employee, error)
	GetEmployee(ctx context.Context, id int64) (core.Employee, error)
	ListEmployees(ctx context.Context) ([]core.Employee, error)
	UpdateEmployee(ctx context.Context, e core.Employee) (core.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// DocumentStore is the document inbox surface. Satisfied by
// services.DocumentService.
type DocumentStore interface {
	UploadDocument(ctx context.Context, fileName, fileURL, contentType string) (core.Document, error)
	GetDocument(ctx context.Context, id string) (core.Document, error)
	ListDocuments(ctx context.Context) ([]core.Document, error)
}

// BudgetStore is the budget-plan surface. Satisfied by
// storage.SQLiteRepository.
type BudgetStore interface {
	UpsertBudgetPlan(ctx context.Context, b core.BudgetPlan) (core.BudgetPlan, error)
	ListBudgetPlans(ctx context.Context, year, month int) ([]core.BudgetPlan, error)
}

// AllowanceStore is the kids ledger surface. Satisfied by
// storage.SQLiteRepository.
type AllowanceStore interface {
	CreateAllowanceEntry(ctx context.Context, a core.AllowanceEntry) (core.AllowanceEntry, error)
	ListAllowanceEntries(ctx context.Context, childName string) ([]core.AllowanceEntry, error)
}

// Deps bundles everything the server serves from.
type Deps struct {
	Payments  PaymentStore
	Employees EmployeeStore
	Documents DocumentStore
	Budgets   BudgetStore
	Allowance AllowanceStore
	Rates     insurance.RateTable
}

type Server struct {
	http.Server
	payments    PaymentStore
	employees   EmployeeStore
	documents   DocumentStore
	budgets     BudgetStore
	allowance   AllowanceStore
	rates       insurance.RateTable
	rateLimiter *rateLimiter

	// LRU caches for read-heavy derived views
	statsCache  *cache.LRUCache[installment.Stats]
	budgetCache *cache.LRUCache[[]services.BudgetLine]
	cacheMgr    *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		payments:    deps.Payments,
		employees:   deps.Employees,
		documents:   deps.Documents,
		budgets:     deps.Budgets,
		allowance:   deps.Allowance,
		rates:       deps.Rates,
		rateLimiter: newRateLimiter(),
		statsCache:  cache.NewLRUCache[installment.Stats](10, 5*time.Minute),
		budgetCache: cache.NewLRUCache[[]services.BudgetLine](100, 5*time.Minute),
		cacheMgr:    cache.NewManager(),
	}

	s.cacheMgr.Register(s.statsCache)
	s.cacheMgr.Register(s.budgetCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/payments", s.withSecurityHeaders(s.handleListPayments))
	mux.HandleFunc("POST /api/payments", s.withSecurityHeaders(s.handleCreatePayment))
	mux.HandleFunc("GET /api/payments/{id}", s.withSecurityHeaders(s.handleGetPayment))
	mux.HandleFunc("PUT /api/payments/{id}", s.withSecurityHeaders(s.handleUpdatePayment))
	mux.HandleFunc("DELETE /api/payments/{id}", s.withSecurityHeaders(s.handleDeletePayment))

	mux.HandleFunc("GET /api/installments/analyze", s.withSecurityHeaders(s.handleAnalyzeInstallments))
	mux.HandleFunc("GET /api/installments/stats", s.withSecurityHeaders(s.handleInstallmentStats))
	mux.HandleFunc("POST /api/installments/schedule", s.withSecurityHeaders(s.handleInstallmentSchedule))

	mux.HandleFunc("POST /api/insurance/calculate", s.withSecurityHeaders(s.handleInsuranceCalculate))
	mux.HandleFunc("GET /api/insurance/hr-summary", s.withSecurityHeaders(s.handleHRSummary))

	mux.HandleFunc("GET /api/employees", s.withSecurityHeaders(s.handleListEmployees))
	mux.HandleFunc("POST /api/employees", s.withSecurityHeaders(s.handleCreateEmployee))
	mux.HandleFunc("GET /api/employees/{id}", s.withSecurityHeaders(s.handleGetEmployee))
	mux.HandleFunc("PUT /api/employees/{id}", s.withSecurityHeaders(s.handleUpdateEmployee))
	mux.HandleFunc("DELETE /api/employees/{id}", s.withSecurityHeaders(s.handleDeleteEmployee))

	mux.HandleFunc("GET /api/budgets", s.withSecurityHeaders(s.handleListBudgets))
	mux.HandleFunc("PUT /api/budgets", s.withSecurityHeaders(s.handleUpsertBudget))

	mux.HandleFunc("GET /api/allowance/{child}", s.withSecurityHeaders(s.handleAllowanceSummary))
	mux.HandleFunc("POST /api/allowance", s.withSecurityHeaders(s.handleCreateAllowanceEntry))

	mux.HandleFunc("POST /api/documents", s.withSecurityHeaders(s.handleUploadDocument))
	mux.HandleFunc("GET /api/documents", s.withSecurityHeaders(s.handleListDocuments))
	mux.HandleFunc("GET /api/documents/{id}", s.withSecurityHeaders(s.handleGetDocument))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheMgr != nil {
			s.cacheMgr.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		// Generate request ID for tracing
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Apply rate limiting to mutating requests
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Capture status code for the completion log
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type contextKey string

// requestIDKey carries the per-request trace ID in the context.
const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) invalidateDerivedViews() {
	s.statsCache.Delete(statsCacheKey)
	// Budget lines join payments, so any payment mutation can shift a month.
	// The cache is small; dropping everything is simpler than tracking months.
	s.budgetCache.Clear()
}
