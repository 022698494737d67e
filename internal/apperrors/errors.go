package apperrors

import "errors"

// Sentinel errors shared across services. Services wrap these with context
// via fmt.Errorf("...: %w", ...); handlers map them to HTTP statuses.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)
