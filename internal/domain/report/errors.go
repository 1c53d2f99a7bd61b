package report

import (
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

var (
	// ErrInvalidType rejects an unknown report type.
	ErrInvalidType = fmt.Errorf("invalid report type: %w", repository.ErrInvalidInput)
	// ErrInvalidDateRange rejects an unknown date range.
	ErrInvalidDateRange = fmt.Errorf("invalid date range: %w", repository.ErrInvalidInput)
)
