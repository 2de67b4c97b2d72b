package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "issues-dashboard/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

// ErrorMessage maps an error to the HTTP status and the inline message the
// user sees. Upstream messages pass through; everything unexpected falls
// back to a generic string.
func ErrorMessage(err error) (int, string) {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed the '%s' check", e.Field(), e.Tag()))
		}
		return http.StatusBadRequest, "Validation failed: " + strings.Join(msgs, "; ")
	}

	switch {
	case errors.Is(err, apperrors.ErrSessionExpired):
		return http.StatusUnauthorized, apperrors.ErrSessionExpired.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, apperrors.ErrForbidden.Error()
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		return http.StatusBadGateway, apperrors.ErrUpstreamUnavailable.Error()
	}

	return http.StatusInternalServerError, "Something went wrong. Please try again."
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code, message := ErrorMessage(err)

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) && httpErr.Err != nil {
		logger.Error("HTTP Error",
			zap.Int("code", httpErr.Code),
			zap.String("message", httpErr.Message),
			zap.Error(httpErr.Err),
			zap.Any("context", httpErr.Context),
		)
	} else if code >= http.StatusInternalServerError {
		logger.Error("Unexpected Error", zap.Error(err))
	}

	if wantsHTML(ctx) {
		return ctx.Render(code, "error.html", map[string]interface{}{
			"Code":    code,
			"Message": message,
		})
	}
	return ctx.JSON(code, &HTTPResponse{Status: false, Message: message})
}

// RedirectWithError sends the browser back to a page with the inline error
// message carried in the query string.
func RedirectWithError(ctx echo.Context, path string, err error) error {
	_, message := ErrorMessage(err)
	return ctx.Redirect(http.StatusSeeOther, withParam(path, "error", message))
}

func RedirectWithSuccess(ctx echo.Context, path, message string) error {
	return ctx.Redirect(http.StatusSeeOther, withParam(path, "success", message))
}

func withParam(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

func wantsHTML(ctx echo.Context) bool {
	return strings.Contains(ctx.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML) ||
		ctx.Request().Header.Get(echo.HeaderAccept) == ""
}
