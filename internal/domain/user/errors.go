package user

import (
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = fmt.Errorf("user %w", repository.ErrNotFound)
	// ErrPasswordRequired rejects a create without a password.
	ErrPasswordRequired = fmt.Errorf("password is required: %w", repository.ErrInvalidInput)
)
