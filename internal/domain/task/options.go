package task

import (
	"time"

	"github.com/rpggio/pmdash/internal/store"
)

// DefaultFallbackDelay is the artificial latency of the built-in dataset.
const DefaultFallbackDelay = 500 * time.Millisecond

// Option configures a Store.
type Option func(*Store)

// WithObserver reports every action to obs.
func WithObserver(obs store.Observer) Option {
	return func(s *Store) { s.observer = obs }
}

// WithClock replaces time.Now for timestamps and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithFallbackDelay sets the latency of local-mode actions.
func WithFallbackDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}
