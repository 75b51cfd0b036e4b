package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rishavm/todoapi/internal/logger"
	"github.com/rishavm/todoapi/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   "error",
		Message: message,
	})
}

func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a storage failure: 400 on write paths,
// 500 on read paths, applied uniformly across all handlers.
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error, writePath bool) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	default:
		log.Error("storage failure: %v", err)
		if writePath {
			respondError(w, http.StatusBadRequest, "request could not be completed")
		} else {
			respondError(w, http.StatusInternalServerError, "internal error")
		}
	}
}
