package rest

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/parley/internal/transport/middleware"
)

// Handlers bundles everything NewRouter mounts.
type Handlers struct {
	Chat     *ChatHandler
	Todos    *TodoHandler
	Accounts *AccountHandler
	Health   *HealthHandler
}

// NewRouter mounts the API on a ServeMux and wraps it in the standard chain.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/chat", h.Chat.Turn)

	mux.HandleFunc("GET /api/todos", h.Todos.List)
	mux.HandleFunc("POST /api/todos", h.Todos.Create)
	mux.HandleFunc("PUT /api/todos/{id}", h.Todos.Update)
	mux.HandleFunc("DELETE /api/todos/{id}", h.Todos.Delete)
	mux.HandleFunc("PATCH /api/todos/{id}/toggle", h.Todos.Toggle)

	mux.HandleFunc("GET /api/accounts", h.Accounts.List)
	mux.HandleFunc("POST /api/accounts", h.Accounts.Create)
	mux.HandleFunc("PUT /api/accounts/{id}", h.Accounts.Update)
	mux.HandleFunc("DELETE /api/accounts/{id}", h.Accounts.Delete)
	mux.HandleFunc("GET /api/accounts/email/{email}", h.Accounts.ByEmail)

	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS,
	)(mux)
}
