package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/karanatwal4/todo-api/internal/application"
	"github.com/karanatwal4/todo-api/internal/domain/entity"
	"github.com/karanatwal4/todo-api/pkg/response"
	"github.com/karanatwal4/todo-api/pkg/validation"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

type updateTodoRequest struct {
	Text      *string `json:"text" binding:"omitempty,min=1"`
	Completed *bool   `json:"completed"`
}

// Create POST /todos {text}
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), currentUser(c), req.Text)
	if err != nil {
		if errors.Is(err, application.ErrEmptyText) {
			response.Error(c, http.StatusBadRequest, "text must not be empty", nil)
			return
		}
		h.Logger.WithError(err).Error("create todo failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	c.JSON(http.StatusOK, t)
}

// List GET /todos
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.Svc.List(c.Request.Context(), currentUser(c))
	if err != nil {
		h.Logger.WithError(err).Error("list todos failed")
		response.Error(c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if todos == nil {
		todos = []entity.Todo{}
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// Get GET /todos/:id
// A todo owned by someone else and a missing or malformed id respond alike.
func (h *TodoHandler) Get(c *gin.Context) {
	t, err := h.Svc.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.respondLookupErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": t})
}

// Delete DELETE /todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	t, err := h.Svc.Delete(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.respondLookupErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": t})
}

// Update PATCH /todos/:id {text?, completed?}
func (h *TodoHandler) Update(c *gin.Context) {
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.TodoUpdate{Text: req.Text, Completed: req.Completed}
	t, err := h.Svc.Update(c.Request.Context(), currentUser(c), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, application.ErrEmptyText) {
			response.Error(c, http.StatusBadRequest, "text must not be empty", nil)
			return
		}
		h.respondLookupErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": t})
}

func (h *TodoHandler) respondLookupErr(c *gin.Context, err error) {
	if errors.Is(err, application.ErrTodoNotFound) {
		response.Error(c, http.StatusNotFound, "todo not found", nil)
		return
	}
	h.Logger.WithError(err).Error("todo operation failed")
	response.Error(c, http.StatusInternalServerError, "internal error", nil)
}
