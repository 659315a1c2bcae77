package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint. Uniqueness is enforced by the database, not by
// application-level existence checks, so concurrent writers always
// surface as this error rather than racing past a lookup.
var ErrDuplicate = errors.New("duplicate record")

const uniqueViolationCode = "23505"

func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}
