package controllers

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"issues-dashboard/internal/apiclient"
	"issues-dashboard/internal/authz"
	"issues-dashboard/internal/dto"
	"issues-dashboard/internal/services"
	apperrors "issues-dashboard/pkg/errors"
	"issues-dashboard/pkg/middleware"
	"issues-dashboard/pkg/utils"
)

type TeamMemberController struct {
	api      *apiclient.Client
	refresh  services.RefreshServiceInterface
	sessions *middleware.SessionMiddleware
	logger   *zap.Logger
}

func NewTeamMemberController(
	api *apiclient.Client,
	refresh services.RefreshServiceInterface,
	sessions *middleware.SessionMiddleware,
	logger *zap.Logger,
) *TeamMemberController {
	return &TeamMemberController{api: api, refresh: refresh, sessions: sessions, logger: logger}
}

func (c *TeamMemberController) Create(ctx echo.Context) error {
	if !authz.Can(utils.SessionRole(ctx), authz.TeamManage) {
		return utils.RedirectWithError(ctx, "/dashboard", apperrors.ErrForbidden)
	}

	var form dto.TeamMemberDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/dashboard?team=1", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/dashboard?team=1", err)
	}

	token := utils.SessionToken(ctx)
	if _, err := c.api.CreateTeamMember(ctx.Request().Context(), token, form); err != nil {
		return c.fail(ctx, token, err)
	}

	c.refresh.Poke(token)
	return utils.RedirectWithSuccess(ctx, "/dashboard?team=1", "Team member added")
}

func (c *TeamMemberController) Rename(ctx echo.Context) error {
	if !authz.Can(utils.SessionRole(ctx), authz.TeamManage) {
		return utils.RedirectWithError(ctx, "/dashboard", apperrors.ErrForbidden)
	}

	var form dto.TeamMemberDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/dashboard?team=1", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/dashboard?team=1", err)
	}

	token := utils.SessionToken(ctx)
	if err := c.api.RenameTeamMember(ctx.Request().Context(), token, ctx.Param("id"), form); err != nil {
		return c.fail(ctx, token, err)
	}

	c.refresh.Poke(token)
	return utils.RedirectWithSuccess(ctx, "/dashboard?team=1", "Team member updated")
}

func (c *TeamMemberController) Delete(ctx echo.Context) error {
	if !authz.Can(utils.SessionRole(ctx), authz.TeamManage) {
		return utils.RedirectWithError(ctx, "/dashboard", apperrors.ErrForbidden)
	}

	token := utils.SessionToken(ctx)
	if err := c.api.DeleteTeamMember(ctx.Request().Context(), token, ctx.Param("id")); err != nil {
		return c.fail(ctx, token, err)
	}

	c.refresh.Poke(token)
	return utils.RedirectWithSuccess(ctx, "/dashboard?team=1", "Team member removed")
}

func (c *TeamMemberController) fail(ctx echo.Context, token string, err error) error {
	if errors.Is(err, apperrors.ErrSessionExpired) {
		c.refresh.Stop(token)
		c.sessions.ClearCookie(ctx)
		return utils.RedirectWithError(ctx, "/login", err)
	}
	c.logger.Warn("team member call failed", zap.Error(err))
	return utils.RedirectWithError(ctx, "/dashboard?team=1", err)
}
