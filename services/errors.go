// Package services holds the business rules behind the HTTP handlers.
// Every service wraps a *gorm.DB so tests can run against an in-memory
// database. Failures are reported with the sentinel errors below plus
// ValidationError for caller-correctable input; controllers translate
// them to HTTP status codes.
package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested record does not exist (or is
// not visible to the caller). Handlers translate it into a 404.
var ErrNotFound = errors.New("record not found")

// ErrForbidden is returned when the caller lacks rights over the target
// record, e.g. a student touching another student's booking. Handlers
// translate it into a 403.
var ErrForbidden = errors.New("forbidden")

// ValidationError carries a user-facing message for input the caller must
// correct. Handlers translate it into a 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
