package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rpggio/pmdash/internal/domain/access"
	"github.com/rpggio/pmdash/internal/kvcache"
	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/store"
)

const storeName = "auth"

// Store is the single source of authentication truth for a session. The
// cached token and user mirror memory on a best-effort basis.
type Store struct {
	remote   Remote
	cache    kvcache.Cache
	logger   *slog.Logger
	observer store.Observer
	busy     store.Busy
	demo     []demoAccount
	now      func() time.Time

	mu    sync.RWMutex
	user  *User
	token string
}

// NewStore creates an anonymous auth store. A nil remote means offline.
func NewStore(remote Remote, cache kvcache.Cache, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		cache:  cache,
		logger: store.Logger(logger),
		demo:   demoAccounts(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates remotely and falls back to the demo accounts on any
// remote failure.
func (s *Store) Login(ctx context.Context, email, password string) store.Result[User] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "login", email)
	return store.Finish(ctx, s.logger, s.observer, op, s.login(ctx, email, password))
}

func (s *Store) login(ctx context.Context, email, password string) store.Result[User] {
	var remoteErr error = repository.ErrUnavailable
	if s.remote != nil {
		sess, err := s.remote.Login(ctx, email, password)
		if err == nil {
			u, token, err := sessionUser(sess)
			if err == nil {
				s.save(ctx, u, token)
				return store.OK(u, store.SourceRemote)
			}
			remoteErr = err
		} else {
			remoteErr = err
		}
	}

	if u, ok := matchDemo(s.demo, email, password); ok {
		s.save(ctx, u, DemoTokenPrefix+u.ID)
		return store.OK(u, store.SourceFallback)
	}

	msg := store.ServerMessage(remoteErr)
	if msg == "" {
		msg = invalidCredentials
	}
	return store.FailWith[User](fmt.Errorf("%w: %w", ErrInvalidCredentials, remoteErr), msg)
}

// Register creates an account remotely. On any remote failure a local staff
// account is manufactured unless demo accounts are disabled.
func (s *Store) Register(ctx context.Context, username, email, password string) store.Result[User] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "register", email)
	return store.Finish(ctx, s.logger, s.observer, op, s.register(ctx, username, email, password))
}

func (s *Store) register(ctx context.Context, username, email, password string) store.Result[User] {
	var remoteErr error = repository.ErrUnavailable
	if s.remote != nil {
		sess, err := s.remote.Register(ctx, RegistrationPayload(username, email, password))
		if err == nil {
			u, token, err := sessionUser(sess)
			if err == nil {
				s.save(ctx, u, token)
				return store.OK(u, store.SourceRemote)
			}
			remoteErr = err
		} else {
			remoteErr = err
		}
	}

	if s.demo == nil {
		return store.Fail[User](fmt.Errorf("registering: %w", remoteErr), "registration failed")
	}

	u := User{
		ID:         uuid.NewString(),
		Email:      email,
		Username:   username,
		Role:       access.RoleStaff,
		Department: DefaultDepartment,
	}
	s.save(ctx, u, DemoTokenPrefix+u.ID)
	return store.OK(u, store.SourceFallback)
}

func sessionUser(sess Session) (User, string, error) {
	u := sess.User.User()
	if sess.Token == "" || u.ID == "" {
		return User{}, "", ErrIncompleteSession
	}
	return u, sess.Token, nil
}

// Logout clears memory and cache unconditionally. It is idempotent.
func (s *Store) Logout(ctx context.Context) {
	op := store.Start(storeName, "logout", "")

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	s.clearCache(ctx)

	store.Finish(ctx, s.logger, s.observer, op, store.OK(struct{}{}, store.SourceLocal))
}

// InitAuth restores a session from the cache. It restores only a complete,
// parseable, unexpired pair and otherwise removes whatever was cached. It
// reports whether the store is authenticated afterwards.
func (s *Store) InitAuth(ctx context.Context) bool {
	op := store.Start(storeName, "restore", "")
	u, token, err := s.restore(ctx)
	if err != nil {
		s.clearCache(ctx)
		store.Finish(ctx, s.logger, s.observer, op, store.Fail[User](err, "session not restored"))
		return false
	}
	if u == nil {
		return false
	}

	s.mu.Lock()
	s.user = u
	s.token = token
	s.mu.Unlock()
	store.Finish(ctx, s.logger, s.observer, op, store.OK(*u, store.SourceLocal))
	return true
}

// restore returns a nil user and nil error when nothing was cached.
func (s *Store) restore(ctx context.Context) (*User, string, error) {
	if s.cache == nil {
		return nil, "", nil
	}
	token, hasToken, err := s.cache.Get(ctx, kvcache.KeyAuthToken)
	if err != nil {
		return nil, "", fmt.Errorf("reading cached token: %w", err)
	}
	raw, hasUser, err := s.cache.Get(ctx, kvcache.KeyAuthUser)
	if err != nil {
		return nil, "", fmt.Errorf("reading cached user: %w", err)
	}
	if !hasToken && !hasUser {
		return nil, "", nil
	}
	if token == "" || raw == "" {
		return nil, "", fmt.Errorf("partial cached session: %w", repository.ErrInvalidInput)
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, "", fmt.Errorf("corrupted cached user: %w", err)
	}
	if u.ID == "" {
		return nil, "", fmt.Errorf("cached user has no id: %w", repository.ErrInvalidInput)
	}
	if exp, ok := tokenExpiry(token); ok && exp.Before(s.now()) {
		return nil, "", fmt.Errorf("cached token expired at %s: %w", exp.Format(time.RFC3339), repository.ErrUnauthorized)
	}
	return &u, token, nil
}

// tokenExpiry reads the exp claim of a JWT without verifying it. Opaque
// tokens have no expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) save(ctx context.Context, u User, token string) {
	s.mu.Lock()
	s.user = &u
	s.token = token
	s.mu.Unlock()

	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(u)
	if err != nil {
		s.logger.Warn("encoding auth user", "error", err)
		return
	}
	if err := s.cache.Set(ctx, kvcache.KeyAuthToken, token); err != nil {
		s.logger.Warn("caching auth token", "error", err)
	}
	if err := s.cache.Set(ctx, kvcache.KeyAuthUser, string(raw)); err != nil {
		s.logger.Warn("caching auth user", "error", err)
	}
}

func (s *Store) clearCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, key := range []string{kvcache.KeyAuthToken, kvcache.KeyAuthUser} {
		if err := s.cache.Remove(ctx, key); err != nil {
			s.logger.Warn("clearing cached session", "key", key, "error", err)
		}
	}
}

// IsAuthenticated reports whether both a token and a user are held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// TokenExpiry returns the current token's exp claim when it is a JWT.
func (s *Store) TokenExpiry() (time.Time, bool) {
	return tokenExpiry(s.Token())
}

// Role returns the current user's role, or "" when anonymous.
func (s *Store) Role() access.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// IsAdmin reports whether the current user is an admin.
func (s *Store) IsAdmin() bool { return s.Role().IsAdmin() }

// IsProjectManager reports whether the current user may manage projects.
func (s *Store) IsProjectManager() bool { return s.Role().CanManageProjects() }

// Loading reports whether a login or register is in flight.
func (s *Store) Loading() bool { return s.busy.Active() }
