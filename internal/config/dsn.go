package config

import (
	"fmt"
	"strings"
)

// DSNKind is the kind of session store a DSN selects.
type DSNKind int

const (
	// DSNMemory keeps sessions in process memory.
	DSNMemory DSNKind = iota
	// DSNSQLite opens a local SQLite file.
	DSNSQLite
	// DSNPostgres connects to PostgreSQL.
	DSNPostgres
)

// ClassifyDSN tells which session store dsn selects. Schemes match without
// regard to case: postgres:// and postgresql:// select PostgreSQL, a file:
// URI or a plain path selects SQLite and an empty dsn keeps sessions in
// memory. Any other URL scheme fails with [ErrUnsupportedDSN].
func ClassifyDSN(dsn string) (DSNKind, error) {
	dsn = strings.TrimSpace(dsn)
	lower := strings.ToLower(dsn)

	switch {
	case dsn == "":
		return DSNMemory, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DSNPostgres, nil
	case strings.HasPrefix(lower, "file:"):
		return DSNSQLite, nil
	case strings.Contains(lower, "://"):
		return 0, fmt.Errorf("%w: scheme %q", ErrUnsupportedDSN, dsn[:strings.Index(lower, "://")])
	default:
		return DSNSQLite, nil
	}
}
