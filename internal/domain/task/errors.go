package task

import (
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = fmt.Errorf("task %w", repository.ErrNotFound)
)
