package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields of the session token the CLI displays.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry lies before now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// ParseClaims decodes the token payload without verifying the signature. The
// signing key is the backend's; the result is for display only and never used
// to make an authorization decision.
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, err
	}
	var c Claims
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
