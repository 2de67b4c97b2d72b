package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"issues-dashboard/internal/authz"
	"issues-dashboard/pkg/contextkeys"
)

// SessionMiddleware reads the session cookie, decodes the role claim and
// puts both on the request context. It never talks to the upstream API:
// the decoded claim only drives what the dashboard shows, and the API
// re-authorizes every proxied call with the same bearer token.
type SessionMiddleware struct {
	cookieName string
	logger     *zap.Logger
}

func NewSessionMiddleware(cookieName string, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{cookieName: cookieName, logger: logger}
}

// RequireSession redirects unauthenticated requests to the login page
// before any gated view is evaluated.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		role := authz.DecodeRole(cookie.Value)
		if !role.Known() {
			// An undecodable credential is the same as no session.
			m.logger.Warn("session cookie did not decode to a known role")
			m.ClearCookie(c)
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.TokenKey, cookie.Value)
		ctx = context.WithValue(ctx, contextkeys.RoleKey, role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireCapability bounces requests whose role lacks the capability back
// to the dashboard, mirroring the admin-route redirect of the UI.
func (m *SessionMiddleware) RequireCapability(capability string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Request().Context().Value(contextkeys.RoleKey).(authz.Role)
			if !authz.Can(role, capability) {
				m.logger.Warn("capability denied",
					zap.String("capability", capability),
					zap.String("role", role.String()),
				)
				return c.Redirect(http.StatusSeeOther, "/dashboard")
			}
			return next(c)
		}
	}
}

// SetCookie persists the credential under the single well-known cookie;
// it is the only state that survives a reload.
func (m *SessionMiddleware) SetCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *SessionMiddleware) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
