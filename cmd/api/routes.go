package main

import (
	"log"
	"net/http"

	"soldo/internal/shared/config"
	"soldo/internal/shared/middleware"
	"soldo/internal/shared/telemetry"
)

// SetupRoutes configures all HTTP routes and returns the final handler
// with middleware applied.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handleHealth)
	mux.Handle("GET /metrics", telemetry.MetricsHandler())

	// Public auth routes
	mux.HandleFunc("POST /api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authMiddleware(h))
	}

	protected("GET /api/users/me", deps.UserHandler.HandleMe)

	protected("GET /api/accounts", deps.AccountHandler.HandleList)
	protected("POST /api/accounts", deps.AccountHandler.HandleCreate)
	protected("GET /api/accounts/{id}", deps.AccountHandler.HandleGet)
	protected("PUT /api/accounts/{id}", deps.AccountHandler.HandleUpdate)
	protected("DELETE /api/accounts/{id}", deps.AccountHandler.HandleDelete)

	protected("GET /api/transactions", deps.TransactionHandler.HandleList)
	protected("POST /api/transactions", deps.TransactionHandler.HandleCreate)
	protected("GET /api/transactions/statistics", deps.TransactionHandler.HandleStatistics)
	protected("PUT /api/transactions/{id}", deps.TransactionHandler.HandleUpdate)
	protected("DELETE /api/transactions/{id}", deps.TransactionHandler.HandleDelete)

	protected("GET /api/budgets", deps.BudgetHandler.HandleList)
	protected("POST /api/budgets", deps.BudgetHandler.HandleCreate)
	protected("GET /api/budgets/{id}", deps.BudgetHandler.HandleGet)
	protected("PUT /api/budgets/{id}", deps.BudgetHandler.HandleUpdate)
	protected("DELETE /api/budgets/{id}", deps.BudgetHandler.HandleDelete)

	protected("GET /api/debts", deps.DebtHandler.HandleList)
	protected("POST /api/debts", deps.DebtHandler.HandleCreate)
	protected("GET /api/debts/{id}", deps.DebtHandler.HandleGet)
	protected("PUT /api/debts/{id}", deps.DebtHandler.HandleUpdate)
	protected("DELETE /api/debts/{id}", deps.DebtHandler.HandleDelete)
	protected("POST /api/debts/{id}/payments", deps.DebtHandler.HandleAddPayment)

	protected("GET /api/guarantees", deps.GuaranteeHandler.HandleList)
	protected("POST /api/guarantees", deps.GuaranteeHandler.HandleCreate)
	protected("GET /api/guarantees/{id}", deps.GuaranteeHandler.HandleGet)
	protected("PUT /api/guarantees/{id}", deps.GuaranteeHandler.HandleUpdate)
	protected("DELETE /api/guarantees/{id}", deps.GuaranteeHandler.HandleDelete)

	// Global middleware
	handler := middleware.Logging(middleware.Telemetry(middleware.CORS(cfg.Server.AllowedHosts)(mux)))

	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
