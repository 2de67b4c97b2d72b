package errors

import "fmt"

var (
	// Tokens and session state
	ErrInvalidToken   = fmt.Errorf("invalid session token")
	ErrTokenExpired   = fmt.Errorf("session token has expired")
	ErrSessionExpired = fmt.Errorf("session is no longer valid, please log in again")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("authorization header has an invalid format")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("access denied")

	// Upstream API
	ErrUpstreamUnavailable = fmt.Errorf("the issues API is unreachable")
	ErrNotFound            = fmt.Errorf("record not found")
	ErrBadRequest          = fmt.Errorf("invalid request")
)

// HttpError carries the status code and user-facing message alongside the
// wrapped internal error and any logging context.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}
