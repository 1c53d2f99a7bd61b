package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the remote rejects a write as conflicting
	ErrConflict = errors.New("conflict: entity was modified elsewhere")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable is returned when the remote API cannot be reached or is not configured
	ErrUnavailable = errors.New("remote unavailable")

	// ErrTimeout is returned when a remote call exceeds its deadline
	ErrTimeout = errors.New("remote call timed out")

	// ErrUnauthorized is returned when the remote rejects the credentials
	ErrUnauthorized = errors.New("unauthorized")
)
