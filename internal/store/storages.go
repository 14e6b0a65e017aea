package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-supa-client/internal/config"
	"github.com/MKhiriev/go-supa-client/internal/logger"
)

// SessionStore groups the session repository with the database it runs on,
// so the owner can close the connection on shutdown.
type SessionStore struct {
	// Sessions persists auth sessions between runs.
	Sessions SessionRepository

	db *DB
}

// NewSessionStore initialises session persistence for cfg.DSN:
//  1. An empty DSN keeps sessions in memory.
//  2. A postgres:// or postgresql:// URL connects to PostgreSQL.
//  3. A file: URI or a plain path is opened as a SQLite file, created if
//     missing.
//  4. Other URL schemes fail with [ErrUnsupportedDSN].
//
// Database-backed stores run pending migrations before they are returned.
func NewSessionStore(ctx context.Context, cfg config.DB, log *logger.Logger) (*SessionStore, error) {
	kind, err := config.ClassifyDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if kind == config.DSNMemory {
		log.Debug().Str("func", "NewSessionStore").Msg("no dsn configured, keeping sessions in memory")
		return &SessionStore{Sessions: NewMemorySessionRepository()}, nil
	}

	dialect, err := DialectForDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	var db *DB
	switch dialect {
	case DialectPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	default:
		db, err = NewConnectSQLite(ctx, cfg, log)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", dialect.Name, err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Info().Str("func", "NewSessionStore").Str("dialect", dialect.Name).Msg("session store ready")

	return &SessionStore{
		Sessions: NewSessionRepository(db, log),
		db:       db,
	}, nil
}

// Close releases the database connection, if any.
func (s *SessionStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
