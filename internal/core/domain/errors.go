package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFieldLocked      = errors.New("field is locked, contact an admin to request changes")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidValue     = errors.New("invalid field value")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnauthenticated  = errors.New("missing authentication")
	ErrRoleNotFound     = errors.New("role not found")
)

// StoreError reports a failed call to the key/value store. Callers may
// retry the whole operation; nothing was partially applied.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is makes every StoreError match ErrStoreUnavailable.
func (e *StoreError) Is(target error) bool { return target == ErrStoreUnavailable }

// NewStoreError wraps err, leaving nil and existing StoreErrors untouched.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
