package utils

import (
	"github.com/labstack/echo/v4"

	"issues-dashboard/internal/authz"
	"issues-dashboard/pkg/contextkeys"
)

// SessionToken returns the bearer credential the session middleware stored
// on the request, or "" when unauthenticated.
func SessionToken(ctx echo.Context) string {
	token, _ := ctx.Request().Context().Value(contextkeys.TokenKey).(string)
	return token
}

// SessionRole returns the decoded role claim, RoleUnknown when absent.
func SessionRole(ctx echo.Context) authz.Role {
	role, ok := ctx.Request().Context().Value(contextkeys.RoleKey).(authz.Role)
	if !ok {
		return authz.RoleUnknown
	}
	return role
}
