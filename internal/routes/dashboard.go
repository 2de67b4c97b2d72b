package routes

import (
	"github.com/labstack/echo/v4"

	"issues-dashboard/internal/controllers"
)

func runDashboardRouter(g *echo.Group, dashboard *controllers.DashboardController, team *controllers.TeamMemberController) {
	g.GET("/dashboard", dashboard.Dashboard)
	g.GET("/dashboard/export", dashboard.Export)

	g.POST("/issues", dashboard.CreateIssue)
	g.POST("/issues/:id", dashboard.UpdateIssue)
	g.POST("/issues/:id/delete", dashboard.DeleteIssue)

	g.POST("/team-members", team.Create)
	g.POST("/team-members/:id", team.Rename)
	g.POST("/team-members/:id/delete", team.Delete)
}
