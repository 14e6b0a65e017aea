package models

import "time"

// User is the account record returned by the auth server. Its shape mirrors
// the GoTrue user object so it can be decoded straight from responses and
// persisted next to the session.
type User struct {
	// ID is the server-assigned account identifier (UUID string).
	ID string `json:"id"`

	// Aud is the audience the account belongs to, normally "authenticated".
	Aud string `json:"aud,omitempty"`

	// Role is the database role the access token grants.
	Role string `json:"role,omitempty"`

	// Email is the primary e-mail address, empty for phone-only accounts.
	Email string `json:"email,omitempty"`

	// Phone is the primary phone number, empty for e-mail accounts.
	Phone string `json:"phone,omitempty"`

	// EmailConfirmedAt is set once the e-mail address has been verified.
	EmailConfirmedAt *time.Time `json:"email_confirmed_at,omitempty"`

	// PhoneConfirmedAt is set once the phone number has been verified.
	PhoneConfirmedAt *time.Time `json:"phone_confirmed_at,omitempty"`

	// LastSignInAt is the time of the most recent successful sign-in.
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`

	// AppMetadata holds provider information managed by the server.
	AppMetadata map[string]any `json:"app_metadata,omitempty"`

	// UserMetadata holds the data supplied at sign-up.
	UserMetadata map[string]any `json:"user_metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsConfirmed reports whether the account has at least one verified contact.
func (u User) IsConfirmed() bool {
	return u.EmailConfirmedAt != nil || u.PhoneConfirmedAt != nil
}
