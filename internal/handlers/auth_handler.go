package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rishavm/todoapi/internal/logger"
	"github.com/rishavm/todoapi/internal/middleware"
	"github.com/rishavm/todoapi/internal/service"
)

type AuthHandler struct {
	users *service.UserService
	log   *logger.Logger
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{
		users: users,
		log:   logger.New("auth-handler"),
	}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /users. The issued session token travels in the
// X-Auth response header; the body is the user record, which never includes
// the secret.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, token, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, h.log, err, true)
		return
	}

	w.Header().Set(middleware.AuthHeader, token)
	respondJSON(w, http.StatusCreated, user)
}

// Login handles POST /users/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, h.log, err, true)
		return
	}

	w.Header().Set(middleware.AuthHeader, token)
	respondJSON(w, http.StatusOK, user)
}

// Me handles GET /users/me. The gate already resolved the caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	respondJSON(w, http.StatusOK, user)
}

// RevokeToken handles DELETE /users/me/token, logging out the session the
// request authenticated with.
func (h *AuthHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	token := middleware.TokenFrom(r.Context())

	if err := h.users.Logout(r.Context(), user.ID, token); err != nil {
		respondServiceError(w, h.log, err, true)
		return
	}

	respondNoContent(w)
}
