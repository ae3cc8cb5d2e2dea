package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrAlreadyPaid    = errors.New("registration already paid")
)

// ValidationKind identifies why a proposed write was rejected.
type ValidationKind string

const (
	KindInvalidInterval       ValidationKind = "invalid_interval"
	KindOverlap               ValidationKind = "overlap"
	KindSessionFull           ValidationKind = "session_full"
	KindAttendeeOverlap       ValidationKind = "attendee_overlap"
	KindDuplicateRegistration ValidationKind = "duplicate_registration"
)

// ValidationError is a structured rejection of a proposed write. The store is
// never touched when one is returned.
// swagger:model ValidationError
type ValidationError struct {
	Kind   ValidationKind `json:"kind"`
	Detail string         `json:"detail"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// NewValidationError builds a ValidationError with a formatted detail message.
func NewValidationError(kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
