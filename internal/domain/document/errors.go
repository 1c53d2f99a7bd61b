package document

import (
	"fmt"

	"github.com/rpggio/pmdash/internal/repository"
)

var (
	// ErrDocumentNotFound indicates the document doesn't exist.
	ErrDocumentNotFound = fmt.Errorf("document %w", repository.ErrNotFound)
	// ErrNameRequired rejects an upload without a file name.
	ErrNameRequired = fmt.Errorf("document name is required: %w", repository.ErrInvalidInput)
)
