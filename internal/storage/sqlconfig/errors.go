package sqlconfig

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup or an owner-scoped mutation matches no row.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned when an insert violates a unique constraint.
var ErrAlreadyExists = errors.New("record already exists")

const uniqueViolation pq.ErrorCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
