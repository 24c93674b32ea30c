package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexanderramin/parley/internal/app"
	"github.com/alexanderramin/parley/internal/contract"
)

// TodoHandler serves the /api/todos CRUD routes.
type TodoHandler struct {
	tasks app.TaskUseCase
	log   *slog.Logger
}

func NewTodoHandler(tasks app.TaskUseCase, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{tasks: tasks, log: logger.With("handler", "todos")}
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"isCompleted"`
}

// List handles GET /api/todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "Error fetching todos")
		return
	}
	writeData(w, http.StatusOK, contract.NewTaskViewsFor(tasks))
}

// Create handles POST /api/todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	task, err := h.tasks.Create(r.Context(), req.Title, req.Description)
	if err != nil {
		h.fail(w, r, err, "Error creating todo")
		return
	}
	writeData(w, http.StatusCreated, contract.NewTaskViewFor(task))
}

// Update handles PUT /api/todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTodoRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := h.tasks.Update(r.Context(), r.PathValue("id"), contract.TaskChanges{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.fail(w, r, err, "Error updating todo")
		return
	}
	writeData(w, http.StatusOK, contract.NewTaskViewFor(task))
}

// Delete handles DELETE /api/todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, r, err, "Error deleting todo")
		return
	}
	writeMessage(w, "Todo deleted successfully")
}

// Toggle handles PATCH /api/todos/{id}/toggle.
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err, "Error toggling todo")
		return
	}
	writeData(w, http.StatusOK, contract.NewTaskViewFor(task))
}

func (h *TodoHandler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, known := statusFor(err)
	switch {
	case status == http.StatusNotFound:
		writeError(w, status, "Todo not found")
	case known:
		writeError(w, status, validationMessage(err, fallback))
	default:
		h.log.ErrorContext(r.Context(), fallback, slog.String("error", err.Error()))
		writeError(w, status, fallback)
	}
}
