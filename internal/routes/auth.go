package routes

import (
	"github.com/labstack/echo/v4"

	"issues-dashboard/internal/controllers"
	"issues-dashboard/pkg/middleware"
)

func runAuthRouter(e *echo.Echo, authController *controllers.AuthController, sessions *middleware.SessionMiddleware) {
	e.GET("/login", authController.LoginPage)
	e.POST("/login", authController.Login)
	e.POST("/register", authController.Register)
	e.POST("/forgot-password", authController.ForgotPassword)
	e.POST("/logout", authController.Logout, sessions.RequireSession)
}
