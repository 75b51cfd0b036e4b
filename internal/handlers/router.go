package handlers

import (
	"net/http"

	"github.com/rishavm/todoapi/internal/middleware"
)

// NewRouter builds the full HTTP surface. limiter may be nil, in which case
// the credential endpoints run unthrottled.
func NewRouter(authHandler *AuthHandler, todoHandler *TodoHandler, gate *middleware.AuthMiddleware, limiter *middleware.RateLimiter) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Credential endpoints are the only unauthenticated surface, rate
	// limited by client IP.
	mux.HandleFunc("POST /users", limiter.Limit(authHandler.Register))
	mux.HandleFunc("POST /users/login", limiter.Limit(authHandler.Login))

	mux.HandleFunc("GET /users/me", gate.RequireAuth(authHandler.Me))
	mux.HandleFunc("DELETE /users/me/token", gate.RequireAuth(authHandler.RevokeToken))

	mux.HandleFunc("POST /todos", gate.RequireAuth(todoHandler.Create))
	mux.HandleFunc("GET /todos", gate.RequireAuth(todoHandler.List))
	mux.HandleFunc("GET /todos/{id}", gate.RequireAuth(todoHandler.Get))
	mux.HandleFunc("PATCH /todos/{id}", gate.RequireAuth(todoHandler.Update))
	mux.HandleFunc("DELETE /todos/{id}", gate.RequireAuth(todoHandler.Delete))

	return mux
}
