package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification tells [DB.withRetry] whether a failed statement may
// succeed on another attempt.
type ErrorClassification int

const (
	// NonRetryable is the default for every error not listed below.
	NonRetryable ErrorClassification = iota
	// Retryable marks transient failures.
	Retryable
)

// retryablePgCodes are the transient conditions a session select, upsert or
// delete can run into on PostgreSQL.
var retryablePgCodes = map[string]bool{
	pgerrcode.ConnectionException:                     true, // 08000
	pgerrcode.SQLClientUnableToEstablishSQLConnection: true, // 08001
	pgerrcode.ConnectionDoesNotExist:                  true, // 08003
	pgerrcode.ConnectionFailure:                       true, // 08006
	pgerrcode.SerializationFailure:                    true, // 40001, concurrent upserts
	pgerrcode.DeadlockDetected:                        true, // 40P01
	pgerrcode.TooManyConnections:                      true, // 53300
	pgerrcode.CannotConnectNow:                        true, // 57P03, server starting up
}

// retryableSQLiteCodes cover another process holding the database file.
var retryableSQLiteCodes = map[sqlite3.ErrNo]bool{
	sqlite3.ErrBusy:   true,
	sqlite3.ErrLocked: true,
}

// classifierFunc adapts a plain function to [ErrorClassificator].
type classifierFunc func(error) ErrorClassification

func (f classifierFunc) Classify(err error) ErrorClassification { return f(err) }

func classifyPostgres(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && retryablePgCodes[pgErr.Code] {
		return Retryable
	}
	return NonRetryable
}

func classifySQLite(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && retryableSQLiteCodes[sqliteErr.Code] {
		return Retryable
	}
	return NonRetryable
}
