package controllers

import (
	"errors"
	"net/http"

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

type UserController struct {
	api      *apiclient.Client
	views    services.UserViewServiceInterface
	sessions *middleware.SessionMiddleware
	logger   *zap.Logger
}

func NewUserController(
	api *apiclient.Client,
	views services.UserViewServiceInterface,
	sessions *middleware.SessionMiddleware,
	logger *zap.Logger,
) *UserController {
	return &UserController{api: api, views: views, sessions: sessions, logger: logger}
}

// UsersPage renders the role-gated user-management screen: summary cards,
// the account table and the add/edit modal.
func (c *UserController) UsersPage(ctx echo.Context) error {
	token := utils.SessionToken(ctx)
	role := utils.SessionRole(ctx)
	reqCtx := ctx.Request().Context()

	users, err := c.api.ListUsers(reqCtx, token)
	if err != nil {
		return c.fail(ctx, token, err)
	}

	// The summary endpoint is decorative; a failure hides the counters
	// but never blocks the page.
	summary, err := c.api.UsersSummary(reqCtx, token)
	if err != nil {
		c.logger.Debug("users summary fetch failed", zap.Error(err))
		summary = nil
	}

	selectedRole := ctx.QueryParam("role")

	var editing interface{}
	if editID := ctx.QueryParam("edit"); editID != "" {
		for i := range users {
			if users[i].ID == editID {
				editing = users[i]
				break
			}
		}
	}

	return ctx.Render(http.StatusOK, "users.html", map[string]interface{}{
		"Role":         role.String(),
		"CanManage":    authz.CanManageUsers(role),
		"Cards":        c.views.SummaryCards(summary),
		"Rows":         c.views.BuildRows(users, selectedRole),
		"Roles":        authz.RoleNames,
		"Accesses":     []string{"Full", "View Only"},
		"SelectedRole": selectedRole,
		"ShowForm":     ctx.QueryParam("add") == "1" || editing != nil,
		"Editing":      editing,
		"Error":        ctx.QueryParam("error"),
		"Success":      ctx.QueryParam("success"),
	})
}

func (c *UserController) Create(ctx echo.Context) error {
	if !authz.CanManageUsers(utils.SessionRole(ctx)) {
		return utils.RedirectWithError(ctx, "/admin/users", apperrors.ErrForbidden)
	}

	var form dto.CreateUserDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/admin/users", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/admin/users", err)
	}

	token := utils.SessionToken(ctx)
	if err := c.api.CreateUser(ctx.Request().Context(), token, form); err != nil {
		return c.fail(ctx, token, err)
	}
	return utils.RedirectWithSuccess(ctx, "/admin/users", "User added")
}

func (c *UserController) Update(ctx echo.Context) error {
	if !authz.CanManageUsers(utils.SessionRole(ctx)) {
		return utils.RedirectWithError(ctx, "/admin/users", apperrors.ErrForbidden)
	}

	var form dto.UpdateUserDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/admin/users", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/admin/users", err)
	}

	token := utils.SessionToken(ctx)
	reqCtx := ctx.Request().Context()

	// A role change through the edit form passes the same guard as the
	// table's role select.
	if form.Role != "" {
		users, err := c.api.ListUsers(reqCtx, token)
		if err != nil {
			return c.fail(ctx, token, err)
		}
		if err := c.views.GuardRoleChange(users, ctx.Param("id"), form.Role); err != nil {
			return utils.RedirectWithError(ctx, "/admin/users", err)
		}
	}

	if err := c.api.UpdateUser(reqCtx, token, ctx.Param("id"), form); err != nil {
		return c.fail(ctx, token, err)
	}
	return utils.RedirectWithSuccess(ctx, "/admin/users", "User updated")
}

func (c *UserController) UpdateRole(ctx echo.Context) error {
	if !authz.CanManageUsers(utils.SessionRole(ctx)) {
		return utils.RedirectWithError(ctx, "/admin/users", apperrors.ErrForbidden)
	}

	var form dto.UpdateRoleDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/admin/users", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/admin/users", err)
	}

	token := utils.SessionToken(ctx)
	reqCtx := ctx.Request().Context()

	users, err := c.api.ListUsers(reqCtx, token)
	if err != nil {
		return c.fail(ctx, token, err)
	}
	if err := c.views.GuardRoleChange(users, ctx.Param("id"), form.Role); err != nil {
		return utils.RedirectWithError(ctx, "/admin/users", err)
	}

	if err := c.api.UpdateUserRole(reqCtx, token, ctx.Param("id"), form); err != nil {
		return c.fail(ctx, token, err)
	}
	return utils.RedirectWithSuccess(ctx, "/admin/users", "Role updated")
}

func (c *UserController) Delete(ctx echo.Context) error {
	if !authz.CanManageUsers(utils.SessionRole(ctx)) {
		return utils.RedirectWithError(ctx, "/admin/users", apperrors.ErrForbidden)
	}

	token := utils.SessionToken(ctx)
	if err := c.api.DeleteUser(ctx.Request().Context(), token, ctx.Param("id")); err != nil {
		return c.fail(ctx, token, err)
	}
	return utils.RedirectWithSuccess(ctx, "/admin/users", "User deleted")
}

func (c *UserController) fail(ctx echo.Context, token string, err error) error {
	if errors.Is(err, apperrors.ErrSessionExpired) {
		c.sessions.ClearCookie(ctx)
		return utils.RedirectWithError(ctx, "/login", err)
	}
	c.logger.Warn("user management call failed", zap.Error(err))
	return utils.RedirectWithError(ctx, "/admin/users", err)
}
