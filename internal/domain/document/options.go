package document

import (
	"time"

	"github.com/rpggio/pmdash/internal/store"
)

// DefaultDelay is the artificial latency of catalog actions. Uploads take
// twice as long.
const DefaultDelay = 500 * time.Millisecond

// DefaultLinkExpiry bounds presigned download links.
const DefaultLinkExpiry = 15 * time.Minute

// Option configures a Store.
type Option func(*Store)

// WithObserver reports every action to obs.
func WithObserver(obs store.Observer) Option {
	return func(s *Store) { s.observer = obs }
}

// WithClock replaces time.Now for upload timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDelay sets the artificial latency.
func WithDelay(d time.Duration) Option {
	return func(s *Store) { s.delay = d }
}

// WithLinkExpiry sets the lifetime of presigned download links.
func WithLinkExpiry(d time.Duration) Option {
	return func(s *Store) { s.linkExpiry = d }
}
