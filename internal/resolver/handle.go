package resolver

import "github.com/MKhiriev/go-supa-client/internal/backend"

// Mode tells which variant of the auth client a [Handle] carries.
type Mode int

const (
	// ModeMock means the backend is not configured.
	ModeMock Mode = iota
	// ModeLive means requests go to the auth server.
	ModeLive
)

func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeMock:
		return "mock"
	default:
		return "unknown"
	}
}

// Backend is the resolved connection configuration. Sources name the
// variables the values came from.
type Backend struct {
	URL       string
	Key       string
	URLSource string
	KeySource string
}

// Complete reports whether both the URL and the key were found.
func (b Backend) Complete() bool {
	return b.URL != "" && b.Key != ""
}

// Handle is the single access point to the backend. It is read-only after
// [ClientResolver.Resolve] returns.
type Handle struct {
	Auth    backend.AuthClient
	Backend Backend
	Mode    Mode
}

// Live reports whether the handle talks to the auth server.
func (h *Handle) Live() bool {
	return h != nil && h.Mode == ModeLive
}
