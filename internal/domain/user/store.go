package user

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/pmdash/internal/domain/access"
	"github.com/rpggio/pmdash/internal/store"
	"github.com/rpggio/pmdash/internal/wire"
)

const storeName = "users"

// Store owns the session's user directory. It shares the task store's
// fallback policy: an unreachable remote switches it to the built-in
// directory and local mode.
type Store struct {
	remote   Remote
	logger   *slog.Logger
	observer store.Observer
	busy     store.Busy
	now      func() time.Time
	delay    time.Duration

	users *store.Collection[Profile]
	local atomic.Bool
}

// NewStore creates a user store. A nil remote means offline.
func NewStore(remote Remote, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		logger: store.Logger(logger),
		now:    time.Now,
		delay:  DefaultFallbackDelay,
		users:  store.NewCollection(func(p Profile) string { return p.ID }, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) localMode() bool {
	return s.remote == nil || s.local.Load()
}

// LocalMode reports whether mutations currently apply to memory only.
func (s *Store) LocalMode() bool { return s.localMode() }

func (s *Store) seed(ctx context.Context) ([]Profile, error) {
	if err := store.Pause(ctx, s.delay); err != nil {
		return nil, err
	}
	return Seed(), nil
}

// FetchUsers replaces the directory.
func (s *Store) FetchUsers(ctx context.Context) store.Result[[]Profile] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "fetch", "")
	return store.Finish(ctx, s.logger, s.observer, op, s.fetchUsers(ctx))
}

func (s *Store) fetchUsers(ctx context.Context) store.Result[[]Profile] {
	const msg = "failed to fetch users"

	var primary store.Loader[[]Profile]
	if s.remote != nil {
		primary = func(ctx context.Context) ([]Profile, error) {
			records, err := s.remote.List(ctx, url.Values{})
			if err != nil {
				return nil, err
			}
			out := make([]Profile, len(records))
			for i, r := range records {
				out[i] = FromRecord(r)
			}
			return out, nil
		}
	}

	users, src, err := store.WithFallback(ctx, primary, s.seed, store.Unreachable)
	if err != nil {
		return store.Fail[[]Profile](fmt.Errorf("fetching users: %w", err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[[]Profile](err, msg)
	}
	s.users.Replace(users)
	s.local.Store(src == store.SourceFallback)
	return store.OK(s.users.All(), src)
}

// FetchUserByID resolves one user, remotely when possible and from the
// directory otherwise.
func (s *Store) FetchUserByID(ctx context.Context, id string) store.Result[Profile] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "fetch_one", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.fetchUserByID(ctx, id))
}

func (s *Store) fetchUserByID(ctx context.Context, id string) store.Result[Profile] {
	const msg = "failed to fetch user"

	lookup := func(ctx context.Context) (Profile, error) {
		if err := store.Pause(ctx, s.delay); err != nil {
			return Profile{}, err
		}
		p, ok := s.users.Find(id)
		if !ok {
			return Profile{}, ErrUserNotFound
		}
		return p, nil
	}

	var primary store.Loader[Profile]
	if !s.localMode() {
		primary = func(ctx context.Context) (Profile, error) {
			rec, err := s.remote.Get(ctx, id)
			if err != nil {
				return Profile{}, err
			}
			return FromRecord(rec), nil
		}
	}

	p, src, err := store.WithFallback(ctx, primary, lookup, store.Unreachable)
	if err != nil {
		return store.Fail[Profile](fmt.Errorf("fetching user %s: %w", id, err), msg)
	}
	if src == store.SourceFallback && s.localMode() {
		src = store.SourceLocal
	}
	if src == store.SourceRemote {
		if err := store.Relevant(ctx); err != nil {
			return store.Fail[Profile](err, msg)
		}
		s.users.Set(id, p)
	}
	return store.OK(p, src)
}

// CreateUser adds a user. A password is required.
func (s *Store) CreateUser(ctx context.Context, n NewUser) store.Result[Profile] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "create", "")
	return store.Finish(ctx, s.logger, s.observer, op, s.createUser(ctx, n))
}

func (s *Store) createUser(ctx context.Context, n NewUser) store.Result[Profile] {
	const msg = "failed to create user"
	if strings.TrimSpace(n.Password) == "" {
		return store.Fail[Profile](ErrPasswordRequired, msg)
	}

	if s.localMode() {
		if err := store.Pause(ctx, s.delay); err != nil {
			return store.Fail[Profile](err, msg)
		}
		stamp := wire.Timestamp(s.now())
		p := n.Profile()
		p.ID = uuid.NewString()
		p.JoinedAt, p.LastActive = stamp, stamp
		s.users.Append(p)
		return store.OK(p, store.SourceLocal)
	}

	rec, err := s.remote.Create(ctx, n.Payload())
	if err != nil {
		return store.Fail[Profile](fmt.Errorf("creating user: %w", err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[Profile](err, msg)
	}
	created := FromRecord(rec)
	s.users.Append(created)
	return store.OK(created, store.SourceRemote)
}

// UpdateUser changes the fields u sets on a user known to the directory.
func (s *Store) UpdateUser(ctx context.Context, id string, u Update) store.Result[Profile] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "update", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.updateUser(ctx, id, u))
}

func (s *Store) updateUser(ctx context.Context, id string, u Update) store.Result[Profile] {
	const msg = "failed to update user"
	if !s.users.Has(id) {
		return store.Fail[Profile](ErrUserNotFound, msg)
	}

	if s.localMode() {
		if err := store.Pause(ctx, s.delay); err != nil {
			return store.Fail[Profile](err, msg)
		}
		updated, ok := s.users.Modify(id, func(p Profile) Profile {
			p = u.Apply(p)
			p.LastActive = wire.Timestamp(s.now())
			return p
		})
		if !ok {
			return store.Fail[Profile](ErrUserNotFound, msg)
		}
		return store.OK(updated, store.SourceLocal)
	}

	rec, err := s.remote.Update(ctx, id, u.Payload())
	if err != nil {
		return store.Fail[Profile](fmt.Errorf("updating user %s: %w", id, err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[Profile](err, msg)
	}
	updated := FromRecord(rec)
	s.users.Set(id, updated)
	return store.OK(updated, store.SourceRemote)
}

// DeleteUser removes a user known to the directory.
func (s *Store) DeleteUser(ctx context.Context, id string) store.Result[struct{}] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "delete", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.deleteUser(ctx, id))
}

func (s *Store) deleteUser(ctx context.Context, id string) store.Result[struct{}] {
	const msg = "failed to delete user"
	if !s.users.Has(id) {
		return store.Fail[struct{}](ErrUserNotFound, msg)
	}

	if s.localMode() {
		if err := store.Pause(ctx, s.delay); err != nil {
			return store.Fail[struct{}](err, msg)
		}
		if !s.users.Remove(id) {
			return store.Fail[struct{}](ErrUserNotFound, msg)
		}
		return store.OK(struct{}{}, store.SourceLocal)
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		return store.Fail[struct{}](fmt.Errorf("deleting user %s: %w", id, err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[struct{}](err, msg)
	}
	s.users.Remove(id)
	return store.OK(struct{}{}, store.SourceRemote)
}

// Users returns the directory in insertion order.
func (s *Store) Users() []Profile { return s.users.All() }

// Loading reports whether an action is in flight.
func (s *Store) Loading() bool { return s.busy.Active() }

// ByStatus buckets every user under its status. Every status has a bucket.
func (s *Store) ByStatus() map[Status][]Profile {
	return store.GroupBy(s.users.All(), Statuses, func(p Profile) Status { return p.Status })
}

// WithRole returns the users holding role.
func (s *Store) WithRole(role access.Role) []Profile {
	return s.users.Filter(func(p Profile) bool { return p.Role == role })
}

// InDepartment returns the users of one department.
func (s *Store) InDepartment(department string) []Profile {
	return s.users.Filter(func(p Profile) bool { return p.Department == department })
}

// Active returns users whose status is active.
func (s *Store) Active() []Profile {
	return s.users.Filter(func(p Profile) bool { return p.Status == StatusActive })
}
