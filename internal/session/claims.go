package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the display-only fields decoded from the stored bearer token.
// The token is parsed without signature verification: the backend is the
// authority, this is only for showing who is logged in and until when.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Claims decodes the current token. A missing or malformed token yields
// zero claims; this never fails.
func (s *Store) Claims() Claims {
	tok := s.Token()
	if tok == "" {
		return Claims{}
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return Claims{}
	}

	var c Claims
	if sub, err := parsed.Claims.GetSubject(); err == nil {
		c.Subject = sub
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c
}
