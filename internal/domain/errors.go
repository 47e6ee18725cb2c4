package domain

import "errors"

// Sentinel errors shared by repositories and services. Handlers map them to
// HTTP statuses in one place; everything else wraps them with fmt.Errorf("%w").
var (
	ErrInvalid      = errors.New("invalid request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
