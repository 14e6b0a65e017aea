package store

import (
	"errors"

	"github.com/MKhiriev/go-supa-client/internal/config"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSessionNotFound is returned by Load when nothing is stored under the
	// requested key.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrUnsupportedDSN is returned when the DSN names a scheme that no
	// bundled driver understands.
	ErrUnsupportedDSN = config.ErrUnsupportedDSN
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a session row fails.
	ErrScanningRow = errors.New("failed to scan session row")

	// ErrEncodingUser is returned when the user record of a session cannot be
	// converted to or from its stored JSON form.
	ErrEncodingUser = errors.New("failed to encode session user")
)
