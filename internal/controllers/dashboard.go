package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"issues-dashboard/internal/apiclient"
	"issues-dashboard/internal/authz"
	"issues-dashboard/internal/dto"
	"issues-dashboard/internal/entities"
	"issues-dashboard/internal/services"
	apperrors "issues-dashboard/pkg/errors"
	"issues-dashboard/pkg/middleware"
	"issues-dashboard/pkg/utils"
)

type DashboardController struct {
	api      *apiclient.Client
	views    services.IssueViewServiceInterface
	exports  services.ExportServiceInterface
	refresh  services.RefreshServiceInterface
	sessions *middleware.SessionMiddleware
	interval time.Duration
	logger   *zap.Logger
}

func NewDashboardController(
	api *apiclient.Client,
	views services.IssueViewServiceInterface,
	exports services.ExportServiceInterface,
	refresh services.RefreshServiceInterface,
	sessions *middleware.SessionMiddleware,
	interval time.Duration,
	logger *zap.Logger,
) *DashboardController {
	return &DashboardController{
		api:      api,
		views:    views,
		exports:  exports,
		refresh:  refresh,
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Dashboard renders the issues table with stats, filters and the gated
// edit affordances. The page re-requests itself on the polling interval so
// the rendered table tracks the refresher snapshot.
func (c *DashboardController) Dashboard(ctx echo.Context) error {
	token := utils.SessionToken(ctx)
	role := utils.SessionRole(ctx)

	issues, members, err := c.loadLists(ctx, token)
	if err != nil {
		return c.exitOnExpiredSession(ctx, token, err)
	}

	spec := utils.ParseFilterSpecFromQuery(ctx.QueryParams())
	filtered := c.views.ApplyFilters(issues, spec)
	stats := c.views.ComputeStats(issues)

	var editing *entities.Issue
	isEditing := false
	if editID := ctx.QueryParam("edit"); editID != "" {
		for i := range issues {
			if issues[i].ID == editID {
				editing = &issues[i]
				isEditing = true
				break
			}
		}
	}
	showForm := isEditing || ctx.QueryParam("add") == "1"
	if ctx.QueryParam("add") == "1" && !authz.Can(role, authz.IssuesCreate) {
		showForm = false
	}

	// The truncated RCA cell opens the full narrative in its own modal.
	var rcaIssue *entities.Issue
	if rcaID := ctx.QueryParam("rca"); rcaID != "" {
		for i := range issues {
			if issues[i].ID == rcaID && issues[i].RCA.String != "" {
				rcaIssue = &issues[i]
				break
			}
		}
	}

	return ctx.Render(http.StatusOK, "dashboard.html", map[string]interface{}{
		"Role":           role.String(),
		"CanAddIssue":    authz.Can(role, authz.IssuesCreate),
		"CanMutate":      authz.CanMutateIssues(role),
		"CanManageTeam":  authz.Can(role, authz.TeamManage),
		"CanAdminNav":    authz.Can(role, authz.AdminNavigate),
		"Stats":          stats,
		"Filters":        spec,
		"Issues":         filtered,
		"TeamMembers":    members,
		"Statuses":       entities.Statuses,
		"Priorities":     entities.Priorities,
		"ShowForm":       showForm,
		"IsEditing":      isEditing,
		"Editing":        editing,
		"FormFields":     authz.EditableFields(role, isEditing),
		"RCAIssue":       rcaIssue,
		"ShowTeamModal":  ctx.QueryParam("team") == "1" && authz.Can(role, authz.TeamManage),
		"Error":          ctx.QueryParam("error"),
		"Success":        ctx.QueryParam("success"),
		"RefreshSeconds": int(c.interval.Seconds()),
		"FilterQuery":    ctx.QueryString(),
	})
}

func (c *DashboardController) CreateIssue(ctx echo.Context) error {
	if !authz.Can(utils.SessionRole(ctx), authz.IssuesCreate) {
		return utils.RedirectWithError(ctx, "/dashboard", apperrors.ErrForbidden)
	}

	var form dto.IssueFormDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/dashboard", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/dashboard", err)
	}
	defaultDates(&form)

	token := utils.SessionToken(ctx)
	if err := c.api.CreateIssue(ctx.Request().Context(), token, form); err != nil {
		return c.exitOnExpiredSession(ctx, token, err)
	}

	c.refresh.Poke(token)
	return utils.RedirectWithSuccess(ctx, "/dashboard", "Issue created")
}

func (c *DashboardController) UpdateIssue(ctx echo.Context) error {
	if !authz.CanMutateIssues(utils.SessionRole(ctx)) {
		return utils.RedirectWithError(ctx, "/dashboard", apperrors.ErrForbidden)
	}

	var form dto.IssueFormDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/dashboard", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/dashboard", err)
	}
	defaultDates(&form)

	token := utils.SessionToken(ctx)
	if err := c.api.UpdateIssue(ctx.Request().Context(), token, ctx.Param("id"), form); err != nil {
		return c.exitOnExpiredSession(ctx, token, err)
	}

	c.refresh.Poke(token)
	return utils.RedirectWithSuccess(ctx, "/dashboard", "Issue updated")
}

func (c *DashboardController) DeleteIssue(ctx echo.Context) error {
	if !authz.Can(utils.SessionRole(ctx), authz.IssuesDelete) {
		return utils.RedirectWithError(ctx, "/dashboard", apperrors.ErrForbidden)
	}

	token := utils.SessionToken(ctx)
	if err := c.api.DeleteIssue(ctx.Request().Context(), token, ctx.Param("id")); err != nil {
		return c.exitOnExpiredSession(ctx, token, err)
	}

	c.refresh.Poke(token)
	return utils.RedirectWithSuccess(ctx, "/dashboard", "Issue deleted")
}

// Export streams the workbook for the currently filtered view; the filter
// query travels on the export link, so the download matches what the table
// shows.
func (c *DashboardController) Export(ctx echo.Context) error {
	token := utils.SessionToken(ctx)

	issues, _, err := c.loadLists(ctx, token)
	if err != nil {
		return c.exitOnExpiredSession(ctx, token, err)
	}

	spec := utils.ParseFilterSpecFromQuery(ctx.QueryParams())
	filtered := c.views.ApplyFilters(issues, spec)

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, services.ExportFilename))
	ctx.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	return c.exports.WriteWorkbook(ctx.Response(), filtered)
}

// loadLists serves the cached snapshot when the session's polling loop has
// one, falling back to a synchronous fetch on the first render.
func (c *DashboardController) loadLists(ctx echo.Context, token string) ([]entities.Issue, []entities.TeamMember, error) {
	c.refresh.Ensure(token)
	if snap, ok := c.refresh.Snapshot(token); ok {
		return snap.Issues, snap.TeamMembers, nil
	}

	reqCtx := ctx.Request().Context()
	issues, err := c.api.ListIssues(reqCtx, token)
	if err != nil {
		return nil, nil, err
	}
	members, err := c.api.ListTeamMembers(reqCtx, token)
	if err != nil {
		return nil, nil, err
	}
	return issues, members, nil
}

// exitOnExpiredSession forces navigation to the login page on 401/403 from
// the upstream; every other error becomes an inline dashboard message.
func (c *DashboardController) exitOnExpiredSession(ctx echo.Context, token string, err error) error {
	if errors.Is(err, apperrors.ErrSessionExpired) {
		c.refresh.Stop(token)
		c.sessions.ClearCookie(ctx)
		return utils.RedirectWithError(ctx, "/login", err)
	}
	return utils.RedirectWithError(ctx, "/dashboard", err)
}

// defaultDates mirrors the add-form defaults: absent dates become "now".
func defaultDates(form *dto.IssueFormDTO) {
	now := time.Now().Format(time.RFC3339)
	if form.IssueReportedDate == "" {
		form.IssueReportedDate = now
	}
	if form.SupportTeamReceivedDate == "" {
		form.SupportTeamReceivedDate = now
	}
	if form.AssignedDate == "" {
		form.AssignedDate = now
	}
	if form.TargetCompletionDate == "" {
		form.TargetCompletionDate = now
	}
}
