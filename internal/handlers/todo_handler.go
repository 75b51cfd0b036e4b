package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rishavm/todoapi/internal/logger"
	"github.com/rishavm/todoapi/internal/middleware"
	"github.com/rishavm/todoapi/internal/service"
)

type TodoHandler struct {
	todos *service.TodoService
	log   *logger.Logger
}

func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{
		todos: todos,
		log:   logger.New("todo-handler"),
	}
}

type CreateTodoRequest struct {
	Text string `json:"text"`
}

// UpdateTodoRequest is the PATCH body. Only text and completed are
// representable; any other field a caller sends simply has nowhere to land.
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user := middleware.UserFrom(r.Context())
	todo, err := h.todos.Create(r.Context(), user.ID, req.Text)
	if err != nil {
		respondServiceError(w, h.log, err, true)
		return
	}

	respondJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	todos, err := h.todos.List(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, h.log, err, false)
		return
	}

	respondJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	todo, err := h.todos.Get(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, h.log, err, false)
		return
	}

	respondJSON(w, http.StatusOK, todo)
}

// Update handles PATCH /todos/{id}. Success is 201, kept for compatibility
// with the original surface.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user := middleware.UserFrom(r.Context())
	patch := service.TodoPatch{Text: req.Text, Completed: req.Completed}

	todo, err := h.todos.Update(r.Context(), user.ID, r.PathValue("id"), patch)
	if err != nil {
		respondServiceError(w, h.log, err, true)
		return
	}

	respondJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if err := h.todos.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		respondServiceError(w, h.log, err, true)
		return
	}

	respondNoContent(w)
}
