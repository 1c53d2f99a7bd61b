package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

var (
	// ErrLoginRequired is returned by tools whose screen needs a session.
	ErrLoginRequired = fmt.Errorf("login required: %w", repository.ErrUnauthorized)
	// ErrForbidden is returned when the session's role may not use a tool.
	ErrForbidden = errors.New("forbidden")
	// ErrUnknownTool is returned for names outside the catalog.
	ErrUnknownTool = errors.New("unknown tool")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps handler errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrLoginRequired):
		return &APIError{Code: "LOGIN_REQUIRED", Message: err.Error(), RecoveryHint: "Call login first"}
	case errors.Is(err, ErrForbidden):
		return &APIError{Code: "FORBIDDEN", Message: err.Error(), RecoveryHint: "Log in with a role that may use this tool"}
	case errors.Is(err, ErrUnknownTool):
		return &APIError{Code: "UNKNOWN_TOOL", Message: err.Error()}
	case errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check the tool's input schema"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check ID spelling"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
