package activity

import (
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

var ErrInvalidInput = fmt.Errorf("activity: %w", repository.ErrInvalidInput)
