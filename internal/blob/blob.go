// Package blob stores document contents behind a minimal S3-like interface.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rpggio/pmdash/internal/repository"
)

// Driver identifies a blob backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverS3     Driver = "s3"
)

// Scheme prefixes the location of a stored blob, as in blob://documents/1/a.pdf.
const Scheme = "blob://"

var (
	// ErrUnsupported is returned when a driver lacks an optional capability.
	ErrUnsupported = errors.New("blob: unsupported operation")
	// ErrExists is returned by Put when the key is taken.
	ErrExists = fmt.Errorf("blob already exists: %w", repository.ErrConflict)
	// ErrNotFound is returned for a missing key.
	ErrNotFound = fmt.Errorf("blob not found: %w", repository.ErrNotFound)
)

// PutOptions are optional parameters for Put.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored blob.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"sizeBytes"`
	ContentType  string            `json:"contentType,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"lastModified"`
}

// Store is the file-storage collaborator of the documents store.
type Store interface {
	// Put stores a new blob and fails with ErrExists if key is taken.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	// Delete reports whether the blob existed.
	Delete(ctx context.Context, key string) (bool, error)
	// PresignURL returns a time-limited GET URL, or ErrUnsupported.
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Driver() Driver
}

// Location returns the url recorded for a blob stored under key.
func Location(key string) string { return Scheme + key }
