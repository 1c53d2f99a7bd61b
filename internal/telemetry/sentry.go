package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/rpggio/pmdash/internal/config"
	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/store"
)

// flushTimeout bounds the final flush on shutdown.
const flushTimeout = 2 * time.Second

// Sentry reports failed store actions as exceptions. Not-found, validation
// failures and caller cancellation are expected outcomes and are skipped.
type Sentry struct {
	hub *sentry.Hub
}

// NewSentry reports through hub.
func NewSentry(hub *sentry.Hub) *Sentry { return &Sentry{hub: hub} }

// OpenSentry builds a hub from configuration. It returns nil when no DSN is
// configured; the returned func flushes pending events.
func OpenSentry(cfg config.SentryConfig, release string) (*Sentry, func(), error) {
	if cfg.DSN == "" {
		return nil, func() {}, nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     release,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("sentry init: %w", err)
	}
	hub := sentry.NewHub(client, sentry.NewScope())
	return NewSentry(hub), func() { hub.Flush(flushTimeout) }, nil
}

// Reportable reports whether a failed action is worth an exception.
func Reportable(ev store.Event) bool {
	if ev.Success || ev.Err == nil {
		return false
	}
	switch {
	case errors.Is(ev.Err, repository.ErrNotFound),
		errors.Is(ev.Err, repository.ErrInvalidInput),
		errors.Is(ev.Err, repository.ErrUnauthorized),
		errors.Is(ev.Err, context.Canceled):
		return false
	}
	return true
}

// Observe implements store.Observer.
func (s *Sentry) Observe(_ context.Context, ev store.Event) {
	if !Reportable(ev) {
		return
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("store", ev.Store)
		scope.SetTag("action", ev.Action)
		if ev.Source != "" {
			scope.SetTag("source", string(ev.Source))
		}
		scope.SetContext("action", sentry.Context{
			"entity_id":   ev.EntityID,
			"duration_ms": ev.Duration.Milliseconds(),
		})
		s.hub.CaptureException(ev.Err)
	})
}
