package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrConfirmationRequired is returned when a destructive operation is
	// attempted without the explicit confirmation step.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError carries the full field error mapping from a failed
// validation pass. Error() reports the first violation in field order so
// callers surfacing a single message stay deterministic.
type ValidationError struct {
	Fields FormErrors
	order  []string
}

func (e *ValidationError) Error() string {
	for _, field := range e.order {
		if msg, ok := e.Fields[field]; ok {
			return msg
		}
	}
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
