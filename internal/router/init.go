package router

import (
	"github.com/karanatwal4/todo-api/internal/application"
	"github.com/karanatwal4/todo-api/internal/container"
	"github.com/karanatwal4/todo-api/internal/infrastructure/mongodb"
	handlers "github.com/karanatwal4/todo-api/internal/interface/http"
	"github.com/karanatwal4/todo-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	db := container.GetMongo()
	logger := container.GetLogger()

	authSvc := application.NewAuthService(mongodb.NewUserRepository(db), container.GetJWT(), logger)
	todoSvc := application.NewTodoService(mongodb.NewTodoRepository(db), logger)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, logger), authSvc))
	r.Add(modules.NewTodoModule(handlers.NewTodoHandler(todoSvc, logger), authSvc))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
