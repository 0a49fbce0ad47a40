package finance

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidTarget = errors.New("invalid target")
	ErrStoreFailure  = errors.New("store failure")
)

// storeError keeps the underlying cause while matching ErrStoreFailure.
type storeError struct {
	op  string
	err error
}

func (e *storeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreFailure, e.op, e.err)
}

func (e *storeError) Unwrap() []error {
	return []error{ErrStoreFailure, e.err}
}

// StoreFailure wraps err as a store failure for op. Errors that already carry a
// taxonomy value are returned unchanged.
func StoreFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreFailure) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &storeError{op: op, err: err}
}

func invalidPeriod(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidPeriod, fmt.Sprintf(format, args...))
}
