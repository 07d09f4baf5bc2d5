// ABOUTME: Common storage errors
// ABOUTME: Enables consistent error handling across storage implementations

package storage

import (
	"errors"
	"fmt"

	"github.com/harper/shoplist/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrStorage matches every failure of the underlying store via errors.Is.
var ErrStorage = errors.New("storage failure")

// Error records the store operation that failed and its cause.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrStorage as a match so callers need not know the concrete type.
func (e *Error) Is(target error) bool {
	return target == ErrStorage
}

// wrapErr tags err with the failed operation. Validation and not-found
// errors pass through untouched.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStorage) {
		return err
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return &Error{Op: op, Err: err}
}
