package errors

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres SQLSTATEs with a class of their own
const (
	pgUniqueViolation   = "23505"
	pgReadOnlyTx        = "25006"
	pgCannotConnectNow  = "57P03"
	pgTooManyClients    = "53300"
	pgAdminShutdown     = "57P01"
	pgConnectionFailure = "08006"
)

// sqlite primary result codes, extended codes keep them in the low byte
const (
	sqliteBusy   = 5
	sqliteLocked = 6
	sqliteFull   = 13
)

// sqliteCoder is implemented by modernc.org/sqlite errors
type sqliteCoder interface{ Code() int }

// DBCode classifies an error from either relational backend
// errors that are not database errors at all are ErrorCodeDB too
func DBCode(err error) ErrorCode {
	if stderrs.Is(err, context.DeadlineExceeded) {
		return ErrorCodeUnavailable
	}

	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrorCodeDuplicateKey
		case pgReadOnlyTx, pgCannotConnectNow, pgTooManyClients, pgAdminShutdown, pgConnectionFailure:
			return ErrorCodeUnavailable
		}
		return ErrorCodeDB
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return ErrorCodeUnavailable
	}

	var lite sqliteCoder
	if stderrs.As(err, &lite) {
		switch lite.Code() & 0xff {
		case sqliteBusy, sqliteLocked:
			return ErrorCodeUnavailable
		case sqliteFull:
			return ErrorCodeDB
		}
	}
	return ErrorCodeDB
}

// FromDB wraps a relational error under msg with its DBCode, nil stays nil
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	return Wrap(err, DBCode(err), msg)
}
