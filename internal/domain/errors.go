package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotOwner means the record exists but belongs to another user.
	ErrNotOwner = errors.New("record is owned by another user")

	// ErrStaleTotal means a running-total read went stale before the
	// insert landed. Callers repeat the read-compute-write sequence.
	ErrStaleTotal = errors.New("running total read is stale")
)

// ValidationError reports a single rejected input field. It is never
// retried; the caller must correct the request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
