package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/linkudp/linkudp-cli/core/user"
)

// peekRole extracts the role claim of an access token without verifying the
// signature. The client holds no key material; the claim is used for
// diagnostics only, never for authorization.
func peekRole(token string) (user.Role, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	return user.Role(role), nil
}
