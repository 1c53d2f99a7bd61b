// Package store holds the machinery shared by every dashboard store: the
// uniform action result, the busy flag, the remote-with-fallback strategy and
// action observation.
package store

import (
	"errors"

	"github.com/rpggio/pmdash/internal/repository"
)

// Source tells which data path produced a result.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
	SourceLocal    Source = "local"
)

// Result is the value every store action returns. Failures never cross a
// store boundary as errors or panics.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Source  Source `json:"source,omitempty"`

	// Err keeps the underlying cause for errors.Is checks.
	Err error `json:"-"`
}

// OK builds a successful result.
func OK[T any](data T, src Source) Result[T] {
	return Result[T]{Success: true, Data: data, Source: src}
}

// Succeeded reports r.Success. It lets callers inspect results of any T.
func (r Result[T]) Succeeded() bool { return r.Success }

// Fail builds a failed result. The message is the server's message when the
// cause carries one, the cause's own text for not-found and validation
// failures, and fallback otherwise.
func Fail[T any](err error, fallback string) Result[T] {
	return Result[T]{Success: false, Error: Message(err, fallback), Err: err}
}

// ServerMessager is implemented by errors that carry a remote message.
type ServerMessager interface {
	ServerMessage() string
}

// Message resolves the human-readable text for err.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var sm ServerMessager
	if errors.As(err, &sm) {
		// A remote error's own text is transport detail.
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
		return fallback
	}
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
		return err.Error()
	}
	return fallback
}

// FailWith builds a failed result with an exact message.
func FailWith[T any](err error, message string) Result[T] {
	return Result[T]{Success: false, Error: message, Err: err}
}

// ServerMessage returns the remote's message carried by err, or "".
func ServerMessage(err error) string {
	var sm ServerMessager
	if errors.As(err, &sm) {
		return sm.ServerMessage()
	}
	return ""
}
