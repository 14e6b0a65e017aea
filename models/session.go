package models

import "time"

// Session is an authenticated session issued by the auth server.
type Session struct {
	// AccessToken is the JWT sent as bearer token on user requests.
	AccessToken string `json:"access_token"`

	// TokenType is the token scheme, always "bearer".
	TokenType string `json:"token_type"`

	// ExpiresIn is the access token lifetime in seconds, as returned by the
	// server at issue time.
	ExpiresIn int64 `json:"expires_in"`

	// ExpiresAt is the absolute expiry time in unix seconds.
	ExpiresAt int64 `json:"expires_at,omitempty"`

	// RefreshToken is exchanged for a new session when the access token
	// expires.
	RefreshToken string `json:"refresh_token"`

	// User is the account the session belongs to.
	User User `json:"user"`
}

// ExpiresWithin reports whether the session expires within margin of now.
// A session without a known expiry never expires.
func (s *Session) ExpiresWithin(now time.Time, margin time.Duration) bool {
	if s == nil || s.ExpiresAt == 0 {
		return false
	}

	return !now.Add(margin).Before(time.Unix(s.ExpiresAt, 0))
}

// CanRefresh reports whether the session carries a refresh token.
func (s *Session) CanRefresh() bool {
	return s != nil && s.RefreshToken != ""
}

// AuthResponse is the result of a sign-up or sign-in call. Session is nil when
// the server created the account but still requires confirmation.
type AuthResponse struct {
	User    *User
	Session *Session
}

// AuthChangeEvent names a transition of the client's auth state.
type AuthChangeEvent string

const (
	// AuthEventInitialSession is delivered once to every new subscriber.
	AuthEventInitialSession AuthChangeEvent = "INITIAL_SESSION"
	// AuthEventSignedIn follows a successful sign-in or auto-confirmed sign-up.
	AuthEventSignedIn AuthChangeEvent = "SIGNED_IN"
	// AuthEventSignedOut follows a sign-out or an unrecoverable refresh failure.
	AuthEventSignedOut AuthChangeEvent = "SIGNED_OUT"
	// AuthEventTokenRefreshed follows a successful refresh grant.
	AuthEventTokenRefreshed AuthChangeEvent = "TOKEN_REFRESHED"
	// AuthEventUserUpdated follows a change of the user record.
	AuthEventUserUpdated AuthChangeEvent = "USER_UPDATED"
)
