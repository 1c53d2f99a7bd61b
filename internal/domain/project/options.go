package project

import "github.com/rpggio/pmdash/internal/store"

// Option configures a Store.
type Option func(*Store)

// WithObserver reports every action to obs.
func WithObserver(obs store.Observer) Option {
	return func(s *Store) { s.observer = obs }
}
