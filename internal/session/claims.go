package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether the persisted token is a JWT that has
// already expired. The claims are not verified here; the backend is the
// authority and will still reject a forged token. This only saves a
// profile request that is guaranteed to fail.
func tokenExpired(tok string) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		// Not a JWT we can read. Let the profile call decide.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
