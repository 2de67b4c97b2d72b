package routes

import (
	"github.com/labstack/echo/v4"

	"issues-dashboard/internal/authz"
	"issues-dashboard/internal/controllers"
	"issues-dashboard/pkg/middleware"
)

func runUserRouter(g *echo.Group, users *controllers.UserController, sessions *middleware.SessionMiddleware) {
	admin := g.Group("/admin", sessions.RequireCapability(authz.UsersView))

	admin.GET("/users", users.UsersPage)
	admin.POST("/users", users.Create)
	admin.POST("/users/:id", users.Update)
	admin.POST("/users/:id/role", users.UpdateRole)
	admin.POST("/users/:id/delete", users.Delete)
}
