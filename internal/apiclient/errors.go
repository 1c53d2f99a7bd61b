package apiclient

import (
	"fmt"
	"net/http"

	"github.com/rpggio/pmdash/internal/repository"
)

// StatusError is a non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// ServerMessage returns the message field of the response body.
func (e *StatusError) ServerMessage() string { return e.Message }

// Is maps statuses onto the shared sentinels.
func (e *StatusError) Is(target error) bool {
	switch e.Status {
	case http.StatusNotFound:
		return target == repository.ErrNotFound
	case http.StatusUnauthorized:
		return target == repository.ErrUnauthorized
	case http.StatusConflict:
		return target == repository.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return target == repository.ErrInvalidInput
	}
	return false
}
