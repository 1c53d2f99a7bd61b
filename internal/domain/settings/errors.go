package settings

import (
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

// ErrInvalidTheme rejects a theme outside light, dark and system.
var ErrInvalidTheme = fmt.Errorf("invalid theme: %w", repository.ErrInvalidInput)
