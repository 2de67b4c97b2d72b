package entities

import "github.com/aarondl/null/v8"

// User is a dashboard account as served by the upstream users endpoint.
type User struct {
	ID           string      `json:"_id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	Role         string      `json:"role"`
	Access       string      `json:"access"`
	LastActivity null.String `json:"lastActivity"`
}

// RoleSummary maps role name to the number of accounts holding it.
type RoleSummary map[string]int
