// Package pgerr classifies Postgres errors for the repositories and the unit
// of work.
package pgerr

import (
	"errors"

	"ordering/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// transientCodes are the SQLSTATEs after which retrying the whole
// transaction may succeed.
var transientCodes = map[string]struct{}{
	pgerrcode.SerializationFailure: {},
	pgerrcode.DeadlockDetected:     {},
	pgerrcode.LockNotAvailable:     {},
	pgerrcode.QueryCanceled:        {},
}

// Classify wraps lock timeouts, deadlocks and serialization failures in an
// errs.TransientError and numeric overflow in an errs.ValueIsInvalidError.
// Other errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := transientCodes[pgErr.Code]; ok {
			return errs.NewTransientError(err)
		}
		if pgErr.Code == pgerrcode.NumericValueOutOfRange {
			name := pgErr.ColumnName
			if name == "" {
				name = "amount"
			}
			return errs.NewValueIsInvalidErrorWithCause(name, err)
		}
	}
	return err
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
