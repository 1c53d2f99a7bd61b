package auth

import (
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

const invalidCredentials = "invalid email or password"

var (
	// ErrInvalidCredentials indicates no account matched.
	ErrInvalidCredentials = fmt.Errorf("%s: %w", invalidCredentials, repository.ErrUnauthorized)
	// ErrIncompleteSession rejects a response without a token or user id.
	ErrIncompleteSession = fmt.Errorf("auth response missing token or user: %w", repository.ErrInvalidInput)
)
