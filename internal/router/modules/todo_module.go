package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/karanatwal4/todo-api/internal/application"
	"github.com/karanatwal4/todo-api/internal/container"
	handlers "github.com/karanatwal4/todo-api/internal/interface/http"
	"github.com/karanatwal4/todo-api/internal/interface/middleware"
)

// TodoModule wires the todo HTTP handlers into routes. Every route requires
// a verified session token; the handlers never see an unauthenticated
// request.

type TodoModule struct {
	Handler *handlers.TodoHandler
	Auth    *application.AuthService
}

func NewTodoModule(h *handlers.TodoHandler, auth *application.AuthService) *TodoModule {
	return &TodoModule{Handler: h, Auth: auth}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Auth))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/todos", m.Handler.Create)
		auth.GET("/todos", m.Handler.List)
		auth.GET("/todos/:id", m.Handler.Get)
		auth.PATCH("/todos/:id", m.Handler.Update)
		auth.DELETE("/todos/:id", m.Handler.Delete)
	}
}
