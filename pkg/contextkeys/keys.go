package contextkeys

type contextKey string

const (
	TokenKey     contextKey = "SessionToken"
	RoleKey      contextKey = "SessionRole"
	RequestIDKey contextKey = "RequestID"
)
