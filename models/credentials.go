package models

// Credentials identify an account by e-mail or phone plus password.
type Credentials struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`

	// Data is stored as user metadata on sign-up and ignored on sign-in.
	Data map[string]any `json:"data,omitempty"`

	// RedirectTo is the URL the confirmation e-mail links back to.
	RedirectTo string `json:"-"`
}

// HasIdentifier reports whether an e-mail or a phone number is set.
func (c Credentials) HasIdentifier() bool {
	return c.Email != "" || c.Phone != ""
}
