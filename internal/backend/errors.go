package backend

import "errors"

var (
	// ErrSetupIncomplete is returned by every mutating call of the mock
	// client.
	ErrSetupIncomplete = errors.New("please complete Supabase setup")

	// ErrInvalidCredentials is returned before any request is made when the
	// credentials lack an e-mail/phone or a password.
	ErrInvalidCredentials = errors.New("email or phone and password are required")

	// ErrNoSession is returned by calls that need a signed-in user.
	ErrNoSession = errors.New("no active session")
)
