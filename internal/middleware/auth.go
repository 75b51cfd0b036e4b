package middleware

import (
	"context"
	"net/http"

	"github.com/rishavm/todoapi/internal/logger"
	"github.com/rishavm/todoapi/internal/models"
	"github.com/rishavm/todoapi/internal/service"
)

// AuthHeader carries the session token in both directions: issued tokens go
// out in it, and protected requests present it back.
const AuthHeader = "X-Auth"

type contextKey string

const (
	userKey  contextKey = "auth_user"
	tokenKey contextKey = "auth_token"
)

type AuthMiddleware struct {
	users *service.UserService
	log   *logger.Logger
}

func NewAuthMiddleware(users *service.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
		log:   logger.New("auth-middleware"),
	}
}

// RequireAuth admits the request only when the X-Auth header holds a token
// that verifies, resolves to an existing user, and is still present in that
// user's stored sequence. Every failure is a terminal 401; auth failures are
// never transient here.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(AuthHeader)
		if token == "" {
			respondUnauthorized(w)
			return
		}

		user, err := m.users.Authenticate(r.Context(), token)
		if err != nil {
			if err != service.ErrInvalidToken {
				m.log.Error("authentication lookup failed: %v", err)
			}
			respondUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// UserFrom returns the admitted user, or nil outside a protected route.
func UserFrom(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}

// TokenFrom returns the raw token the request authenticated with.
func TokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}

func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"error","message":"authentication required"}`))
}
