package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"issues-dashboard/internal/apiclient"
	"issues-dashboard/internal/dto"
	"issues-dashboard/internal/services"
	"issues-dashboard/pkg/middleware"
	"issues-dashboard/pkg/utils"
)

type AuthController struct {
	api       *apiclient.Client
	sessions  *middleware.SessionMiddleware
	refresh   services.RefreshServiceInterface
	cookieTTL int
	logger    *zap.Logger
}

func NewAuthController(
	api *apiclient.Client,
	sessions *middleware.SessionMiddleware,
	refresh services.RefreshServiceInterface,
	cookieTTLSeconds int,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		api:       api,
		sessions:  sessions,
		refresh:   refresh,
		cookieTTL: cookieTTLSeconds,
		logger:    logger,
	}
}

// LoginPage renders the three-view auth screen (login, register, forgot
// password); the active view and any inline messages travel in the query.
func (c *AuthController) LoginPage(ctx echo.Context) error {
	view := ctx.QueryParam("view")
	if view != "register" && view != "forgot" {
		view = "login"
	}
	return ctx.Render(http.StatusOK, "login.html", map[string]interface{}{
		"View":    view,
		"Error":   ctx.QueryParam("error"),
		"Success": ctx.QueryParam("success"),
	})
}

func (c *AuthController) Login(ctx echo.Context) error {
	var creds dto.LoginDTO
	if err := ctx.Bind(&creds); err != nil {
		return utils.RedirectWithError(ctx, "/login", err)
	}
	if err := ctx.Validate(&creds); err != nil {
		return utils.RedirectWithError(ctx, "/login", err)
	}

	resp, err := c.api.Login(ctx.Request().Context(), creds)
	if err != nil {
		c.logger.Warn("login rejected", zap.String("username", creds.Username), zap.Error(err))
		return utils.RedirectWithError(ctx, "/login", err)
	}

	c.sessions.SetCookie(ctx, resp.Token, c.cookieTTL)
	return ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func (c *AuthController) Register(ctx echo.Context) error {
	var form dto.RegisterDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/login?view=register", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/login?view=register", err)
	}

	message, err := c.api.Register(ctx.Request().Context(), dto.LoginDTO{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		return utils.RedirectWithError(ctx, "/login?view=register", err)
	}
	if message == "" {
		message = "Registration successful! Please log in."
	}
	return utils.RedirectWithSuccess(ctx, "/login", message)
}

func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	var form dto.ForgotPasswordDTO
	if err := ctx.Bind(&form); err != nil {
		return utils.RedirectWithError(ctx, "/login?view=forgot", err)
	}
	if err := ctx.Validate(&form); err != nil {
		return utils.RedirectWithError(ctx, "/login?view=forgot", err)
	}

	message, err := c.api.ForgotPassword(ctx.Request().Context(), form.Email)
	if err != nil {
		return utils.RedirectWithError(ctx, "/login?view=forgot", err)
	}
	if message == "" {
		message = "Password reset instructions sent to your email."
	}
	return utils.RedirectWithSuccess(ctx, "/login", message)
}

// Logout drops the session cookie and cancels the session's polling loop.
func (c *AuthController) Logout(ctx echo.Context) error {
	if token := utils.SessionToken(ctx); token != "" {
		c.refresh.Stop(token)
	}
	c.sessions.ClearCookie(ctx)
	return ctx.Redirect(http.StatusSeeOther, "/login")
}
