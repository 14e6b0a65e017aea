package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-supa-client/internal/logger"
	"github.com/MKhiriev/go-supa-client/models"
)

type sessionRepository struct {
	db      *DB
	queries sessionQueries
	now     func() time.Time
	logger  *logger.Logger
}

// NewSessionRepository returns a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		db:      db,
		queries: newSessionQueries(db.dialect),
		now:     time.Now,
		logger:  logger,
	}
}

func (r *sessionRepository) Load(ctx context.Context, key string) (models.Session, error) {
	query, args, err := r.queries.load(key)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row sessionRow
	err = r.db.withRetry(ctx, "load session", func() error {
		rows, queryErr := r.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer rows.Close()

		if !rows.Next() {
			if rowsErr := rows.Err(); rowsErr != nil {
				return fmt.Errorf("%w: %w", ErrExecutingQuery, rowsErr)
			}
			return sql.ErrNoRows
		}

		if scanErr := rows.Scan(
			&row.accessToken,
			&row.refreshToken,
			&row.tokenType,
			&row.expiresAt,
			&row.userData,
		); scanErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		return nil
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.Load").
			Str("storage_key", key).
			Str("pg_code", postgresError(err)).
			Msg("failed to load session")
		return models.Session{}, err
	}

	session := models.Session{
		AccessToken:  row.accessToken,
		RefreshToken: row.refreshToken,
		TokenType:    row.tokenType,
		ExpiresAt:    row.expiresAt,
	}
	if row.userData != "" {
		if err = json.Unmarshal([]byte(row.userData), &session.User); err != nil {
			return models.Session{}, fmt.Errorf("%w: %w", ErrEncodingUser, err)
		}
	}

	return session, nil
}

func (r *sessionRepository) Save(ctx context.Context, key string, session models.Session) error {
	userData, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingUser, err)
	}

	query, args, err := r.queries.upsert(sessionRow{
		key:          key,
		accessToken:  session.AccessToken,
		refreshToken: session.RefreshToken,
		tokenType:    session.TokenType,
		expiresAt:    session.ExpiresAt,
		userData:     string(userData),
		updatedAt:    r.now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, "save session", func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.Save").
			Str("storage_key", key).
			Str("pg_code", postgresError(err)).
			Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, key string) error {
	query, args, err := r.queries.delete(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, "delete session", func() error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.Delete").
			Str("storage_key", key).
			Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
