package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"issues-dashboard/internal/apiclient"
	"issues-dashboard/internal/controllers"
	"issues-dashboard/internal/services"
	"issues-dashboard/pkg/config"
	"issues-dashboard/pkg/middleware"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Dashboard *zap.Logger
	Users     *zap.Logger
}

// InitRouter assembles the full dependency graph and mounts every route.
// The returned refresh service lets main stop all polling loops on
// shutdown.
func InitRouter(e *echo.Echo, api *apiclient.Client, cfg *config.Config, loggers *Loggers) services.RefreshServiceInterface {
	loggers.Main.Info("InitRouter: wiring routes")

	// --- shared components ---
	sessions := middleware.NewSessionMiddleware(cfg.Session.CookieName, loggers.Auth)

	// --- services ---
	issueViews := services.NewIssueViewService(loggers.Dashboard)
	exports := services.NewExportService(loggers.Dashboard)
	refresh := services.NewRefreshService(api, cfg.Refresh.Interval, cfg.Refresh.IdleAfter, loggers.Dashboard)
	userViews := services.NewUserViewService(loggers.Users)

	// --- controllers ---
	authController := controllers.NewAuthController(api, sessions, refresh,
		int(cfg.Session.CookieTTL.Seconds()), loggers.Auth)
	dashboardController := controllers.NewDashboardController(api, issueViews, exports,
		refresh, sessions, cfg.Refresh.Interval, loggers.Dashboard)
	teamController := controllers.NewTeamMemberController(api, refresh, sessions, loggers.Dashboard)
	userController := controllers.NewUserController(api, userViews, sessions, loggers.Users)

	// --- routers ---
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/dashboard")
	})

	runAuthRouter(e, authController, sessions)

	secured := e.Group("", sessions.RequireSession)
	runDashboardRouter(secured, dashboardController, teamController)
	runUserRouter(secured, userController, sessions)

	return refresh
}
