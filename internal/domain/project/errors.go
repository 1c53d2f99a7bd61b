package project

import (
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project %w", repository.ErrNotFound)
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = fmt.Errorf("project: %w", repository.ErrInvalidInput)
)
