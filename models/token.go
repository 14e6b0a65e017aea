package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims is the claim set carried by access tokens issued by the
// auth server. Only the fields the client relies on are declared; the
// standard claims (sub, exp, iat, aud, iss) come from [jwt.RegisteredClaims].
type AccessTokenClaims struct {
	jwt.RegisteredClaims

	// Email of the authenticated account.
	Email string `json:"email,omitempty"`

	// Phone of the authenticated account.
	Phone string `json:"phone,omitempty"`

	// Role is the database role granted by the token.
	Role string `json:"role,omitempty"`

	// SessionID identifies the server-side session the token belongs to.
	SessionID string `json:"session_id,omitempty"`
}

// ExpiresAtUnix returns the "exp" claim as unix seconds, or 0 when the claim
// is absent.
func (c AccessTokenClaims) ExpiresAtUnix() int64 {
	if c.ExpiresAt == nil {
		return 0
	}

	return c.ExpiresAt.Unix()
}

// ExpiresAtTime returns the "exp" claim as time.Time, or the zero time when the
// claim is absent.
func (c AccessTokenClaims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}

	return c.ExpiresAt.Time
}
