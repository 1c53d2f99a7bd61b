package auth

import (
	"time"

	"github.com/rpggio/pmdash/internal/store"
)

// Option configures a Store.
type Option func(*Store)

// WithObserver reports every action to obs.
func WithObserver(obs store.Observer) Option {
	return func(s *Store) { s.observer = obs }
}

// WithoutDemoAccounts disables the offline fallback for login and register.
func WithoutDemoAccounts() Option {
	return func(s *Store) { s.demo = nil }
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}
