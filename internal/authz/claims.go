package authz

import (
	jwt "github.com/golang-jwt/jwt/v5"
)

// DecodeRole extracts the role claim from the session credential. The
// signature is not verified: the dashboard reads the claim for UI gating
// only, and the upstream API independently authorizes every call.
//
// Any failure (empty credential, malformed token, missing claim) yields
// RoleUnknown; callers treat that as unauthenticated and redirect.
func DecodeRole(credential string) Role {
	if credential == "" {
		return RoleUnknown
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return RoleUnknown
	}

	name, _ := claims["role"].(string)
	return ParseRole(name)
}
