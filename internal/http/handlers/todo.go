package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListTodos returns every todo ordered by ascending id.
func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.Todos.List(c.Request.Context())
	if err != nil {
		writeDBError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

type createTodoRequest struct {
	Text string `json:"text"`
}

// CreateTodo inserts a new todo with completed=false. Text must be non-empty
// after trimming and at most 255 characters; bad input never reaches the
// database.
func (h *Handler) CreateTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, []fieldError{{Field: "text", Message: "must be a string"}})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeValidationError(c, []fieldError{{Field: "text", Message: "must not be empty"}})
		return
	}
	if utf8.RuneCountInString(text) > domain.MaxTextLen {
		writeValidationError(c, []fieldError{{Field: "text", Message: "must be at most 255 characters"}})
		return
	}

	todo, err := h.Todos.Create(c.Request.Context(), text)
	if err != nil {
		writeDBError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

type updateTodoRequest struct {
	// Pointer distinguishes a missing field from an explicit false.
	Completed *bool `json:"completed"`
}

// UpdateTodo sets the completed flag of one todo and returns the updated row.
func (h *Handler) UpdateTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		writeValidationError(c, []fieldError{{Field: "completed", Message: "must be a boolean"}})
		return
	}

	todo, err := h.Todos.SetCompleted(c.Request.Context(), id, *req.Completed)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found"})
		return
	}
	if err != nil {
		writeDBError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo removes one todo. 204 on success, 404 if the id never existed
// (or was already deleted).
func (h *Handler) DeleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.Todos.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Todo not found"})
		return
	}
	if err != nil {
		writeDBError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseID reads the :id path param and rejects anything that is not a
// positive integer before the database is touched.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id. Must be a positive number."})
		return 0, false
	}
	return id, true
}
