package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rpggio/pmdash/internal/kvcache"
	"github.com/rpggio/pmdash/internal/store"
)

const storeName = "settings"

// Store holds the session's display and notification settings. It never
// talks to the network; the cache is its only persistence.
type Store struct {
	cache     kvcache.Cache
	scheme    ColorScheme
	presenter Presenter
	logger    *slog.Logger
	observer  store.Observer

	mu            sync.RWMutex
	theme         Theme
	notifications NotificationSettings
	preferences   Preferences
	dark          bool
}

// Option configures a Store.
type Option func(*Store)

// WithObserver reports every action to obs.
func WithObserver(obs store.Observer) Option {
	return func(s *Store) { s.observer = obs }
}

// NewStore creates a settings store holding defaults. Any collaborator may
// be nil.
func NewStore(cache kvcache.Cache, scheme ColorScheme, presenter Presenter, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		cache:         cache,
		scheme:        scheme,
		presenter:     presenter,
		logger:        store.Logger(logger),
		theme:         ThemeSystem,
		notifications: DefaultNotificationSettings(),
		preferences:   DefaultPreferences(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current settings.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{Theme: s.theme, Notifications: s.notifications, Preferences: s.preferences, DarkMode: s.dark}
}

// Theme returns the selected theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// DarkMode returns the last applied dark-mode flag.
func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// UpdateTheme selects t, mirrors it into the preferences, persists both and
// applies the resolved mode.
func (s *Store) UpdateTheme(ctx context.Context, t Theme) store.Result[Snapshot] {
	op := store.Start(storeName, "update_theme", string(t))
	if !t.Valid() {
		return store.Finish(ctx, s.logger, s.observer, op,
			store.Fail[Snapshot](fmt.Errorf("%q: %w", t, ErrInvalidTheme), "failed to update theme"))
	}

	s.mu.Lock()
	dark := s.setTheme(t)
	prefs := s.preferences
	snap := s.snapshot()
	s.mu.Unlock()

	s.write(ctx, kvcache.KeyTheme, string(t))
	s.persist(ctx, kvcache.KeyUserPreferences, prefs)
	s.present(dark)
	return store.Finish(ctx, s.logger, s.observer, op, store.OK(snap, store.SourceLocal))
}

// setTheme must be called with mu held. It returns the resolved mode, which
// the caller presents after releasing mu.
func (s *Store) setTheme(t Theme) bool {
	s.theme = t
	s.preferences.Theme = t
	return s.resolve()
}

// resolve must be called with mu held.
func (s *Store) resolve() bool {
	s.dark = Resolve(s.theme, s.scheme)
	return s.dark
}

// present hands the mode to the presenter. mu must not be held: presenters
// may read the store back.
func (s *Store) present(dark bool) {
	if s.presenter != nil {
		s.presenter.SetDarkMode(dark)
	}
}

// UpdateNotificationSettings merges u and persists the result.
func (s *Store) UpdateNotificationSettings(ctx context.Context, u NotificationUpdate) store.Result[Snapshot] {
	op := store.Start(storeName, "update_notifications", "")

	s.mu.Lock()
	s.notifications = u.Apply(s.notifications)
	n := s.notifications
	snap := s.snapshot()
	s.mu.Unlock()

	s.persist(ctx, kvcache.KeyNotificationSettings, n)
	return store.Finish(ctx, s.logger, s.observer, op, store.OK(snap, store.SourceLocal))
}

// UpdateUserPreferences merges u and persists the result. A theme in u is
// applied as by UpdateTheme.
func (s *Store) UpdateUserPreferences(ctx context.Context, u PreferencesUpdate) store.Result[Snapshot] {
	op := store.Start(storeName, "update_preferences", "")
	if u.Theme != nil && !u.Theme.Valid() {
		return store.Finish(ctx, s.logger, s.observer, op,
			store.Fail[Snapshot](fmt.Errorf("%q: %w", *u.Theme, ErrInvalidTheme), "failed to update preferences"))
	}

	s.mu.Lock()
	if u.Language != nil {
		s.preferences.Language = *u.Language
	}
	if u.Timezone != nil {
		s.preferences.Timezone = *u.Timezone
	}
	if u.DateFormat != nil {
		s.preferences.DateFormat = *u.DateFormat
	}
	var dark bool
	if u.Theme != nil {
		dark = s.setTheme(*u.Theme)
	}
	prefs := s.preferences
	snap := s.snapshot()
	s.mu.Unlock()

	if u.Theme != nil {
		s.write(ctx, kvcache.KeyTheme, string(*u.Theme))
	}
	s.persist(ctx, kvcache.KeyUserPreferences, prefs)
	if u.Theme != nil {
		s.present(dark)
	}
	return store.Finish(ctx, s.logger, s.observer, op, store.OK(snap, store.SourceLocal))
}

// LoadSettings restores notification settings and preferences from the
// cache, discarding corrupted entries, then runs InitTheme.
func (s *Store) LoadSettings(ctx context.Context) Snapshot {
	op := store.Start(storeName, "load", "")

	n := DefaultNotificationSettings()
	if s.restore(ctx, kvcache.KeyNotificationSettings, &n, nil) {
		s.mu.Lock()
		s.notifications = n
		s.mu.Unlock()
	}

	p := DefaultPreferences()
	validPrefs := func() bool { return p.Theme.Valid() }
	if s.restore(ctx, kvcache.KeyUserPreferences, &p, validPrefs) {
		s.mu.Lock()
		s.preferences = p
		s.theme = p.Theme
		s.mu.Unlock()
	}

	snap := s.InitTheme(ctx)
	store.Finish(ctx, s.logger, s.observer, op, store.OK(snap, store.SourceLocal))
	return snap
}

// InitTheme adopts a saved theme key when present and valid, then resolves
// and applies the theme.
func (s *Store) InitTheme(ctx context.Context) Snapshot {
	saved, ok := s.read(ctx, kvcache.KeyTheme)
	t := Theme(saved)
	if ok && !t.Valid() {
		s.logger.Warn("discarding invalid cached theme", "theme", saved)
		s.remove(ctx, kvcache.KeyTheme)
		ok = false
	}

	s.mu.Lock()
	if ok {
		s.theme = t
		s.preferences.Theme = t
	}
	dark := s.resolve()
	snap := s.snapshot()
	s.mu.Unlock()

	s.present(dark)
	return snap
}

// restore decodes the JSON entry at key over dst. Undecodable entries, and
// entries valid rejects, are removed. It reports whether dst was filled.
func (s *Store) restore(ctx context.Context, key string, dst any, valid func() bool) bool {
	raw, ok := s.read(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("discarding corrupted cached setting", "key", key, "error", err)
		s.remove(ctx, key)
		return false
	}
	if valid != nil && !valid() {
		s.logger.Warn("discarding invalid cached setting", "key", key)
		s.remove(ctx, key)
		return false
	}
	return true
}

func (s *Store) persist(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("encoding setting", "key", key, "error", err)
		return
	}
	s.write(ctx, key, string(raw))
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	v, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("reading cached setting", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (s *Store) write(ctx context.Context, key, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("caching setting", "key", key, "error", err)
	}
}

func (s *Store) remove(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Remove(ctx, key); err != nil {
		s.logger.Warn("removing cached setting", "key", key, "error", err)
	}
}
