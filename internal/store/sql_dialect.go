package store

import (
	"github.com/MKhiriev/go-supa-client/internal/config"

	sq "github.com/Masterminds/squirrel"
)

// Dialect describes the differences between the supported SQL engines.
type Dialect struct {
	// Name is a short label used in logs.
	Name string
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the dialect name passed to goose.
	Goose string
	// Placeholder is the bind variable format used by squirrel.
	Placeholder sq.PlaceholderFormat
}

var (
	// DialectSQLite is used for file-backed local stores.
	DialectSQLite = Dialect{Name: "sqlite", Driver: "sqlite3", Goose: "sqlite3", Placeholder: sq.Question}

	// DialectPostgres is used for shared stores reachable over the network.
	DialectPostgres = Dialect{Name: "postgres", Driver: "pgx", Goose: "pgx", Placeholder: sq.Dollar}
)

// DialectForDSN picks the dialect for a database-backed dsn following
// [config.ClassifyDSN].
func DialectForDSN(dsn string) (Dialect, error) {
	kind, err := config.ClassifyDSN(dsn)
	if err != nil {
		return Dialect{}, err
	}
	if kind == config.DSNPostgres {
		return DialectPostgres, nil
	}
	return DialectSQLite, nil
}
