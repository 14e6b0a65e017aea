// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const sessionsTable = "auth_sessions"

// sessionColumns are selected by Load, in scan order.
var sessionColumns = []string{
	"access_token",
	"refresh_token",
	"token_type",
	"expires_at",
	"user_data",
}

// sessionRow is the stored form of a session.
type sessionRow struct {
	key          string
	accessToken  string
	refreshToken string
	tokenType    string
	expiresAt    int64
	userData     string
	updatedAt    int64
}

// sessionQueries builds the session statements for one dialect.
type sessionQueries struct {
	builder sq.StatementBuilderType
}

func newSessionQueries(dialect Dialect) sessionQueries {
	return sessionQueries{builder: sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder)}
}

func (q sessionQueries) load(key string) (string, []any, error) {
	return q.builder.
		Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"storage_key": key}).
		ToSql()
}

// upsert relies on ON CONFLICT, supported by PostgreSQL and SQLite >= 3.24.
func (q sessionQueries) upsert(row sessionRow) (string, []any, error) {
	return q.builder.
		Insert(sessionsTable).
		Columns("storage_key", "access_token", "refresh_token", "token_type", "expires_at", "user_data", "updated_at").
		Values(row.key, row.accessToken, row.refreshToken, row.tokenType, row.expiresAt, row.userData, row.updatedAt).
		Suffix(`ON CONFLICT (storage_key) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expires_at = excluded.expires_at,
			user_data = excluded.user_data,
			updated_at = excluded.updated_at`).
		ToSql()
}

func (q sessionQueries) delete(key string) (string, []any, error) {
	return q.builder.
		Delete(sessionsTable).
		Where(sq.Eq{"storage_key": key}).
		ToSql()
}
