package task

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/pmdash/internal/store"
	"github.com/rpggio/pmdash/internal/wire"
)

const storeName = "tasks"

// Store owns the session's task collection. When the remote is missing or
// unreachable it serves the built-in dataset and switches to local mode,
// where mutations apply to memory only.
type Store struct {
	remote   Remote
	logger   *slog.Logger
	observer store.Observer
	busy     store.Busy
	now      func() time.Time
	delay    time.Duration

	tasks *store.Collection[Task]
	local atomic.Bool
}

// NewStore creates a task store. A nil remote means offline.
func NewStore(remote Remote, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		remote: remote,
		logger: store.Logger(logger),
		now:    time.Now,
		delay:  DefaultFallbackDelay,
		tasks:  store.NewCollection(func(t Task) string { return t.ID }, clone),
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

// FetchTasks replaces the collection, optionally limited to one project.
func (s *Store) FetchTasks(ctx context.Context, projectID string) store.Result[[]Task] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "fetch", projectID)
	return store.Finish(ctx, s.logger, s.observer, op, s.fetchTasks(ctx, projectID))
}

func (s *Store) fetchTasks(ctx context.Context, projectID string) store.Result[[]Task] {
	const msg = "failed to fetch tasks"

	var primary store.Loader[[]Task]
	if s.remote != nil {
		primary = func(ctx context.Context) ([]Task, error) {
			q := url.Values{}
			if projectID != "" {
				q.Set("project_id", projectID)
			}
			records, err := s.remote.List(ctx, q)
			if err != nil {
				return nil, err
			}
			out := make([]Task, len(records))
			for i, r := range records {
				out[i] = FromRecord(r)
			}
			return out, nil
		}
	}
	fallback := func(ctx context.Context) ([]Task, error) {
		if err := store.Pause(ctx, s.delay); err != nil {
			return nil, err
		}
		return Seed(), nil
	}

	tasks, src, err := store.WithFallback(ctx, primary, fallback, store.Unreachable)
	if err != nil {
		return store.Fail[[]Task](fmt.Errorf("fetching tasks: %w", err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[[]Task](err, msg)
	}
	if projectID != "" {
		tasks = slices.DeleteFunc(tasks, func(t Task) bool { return t.ProjectID != projectID })
	}
	s.tasks.Replace(tasks)
	s.local.Store(src == store.SourceFallback)
	return store.OK(s.tasks.All(), src)
}

// CreateTask adds a task at the tail of the collection.
func (s *Store) CreateTask(ctx context.Context, t Task) store.Result[Task] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "create", "")
	return store.Finish(ctx, s.logger, s.observer, op, s.createTask(ctx, t))
}

func (s *Store) createTask(ctx context.Context, t Task) store.Result[Task] {
	const msg = "failed to create task"
	if s.localMode() {
		if err := store.Pause(ctx, s.delay); err != nil {
			return store.Fail[Task](err, msg)
		}
		stamp := wire.Timestamp(s.now())
		t = clone(t)
		t.ID = uuid.NewString()
		t.Status = normalizeStatus(t.Status)
		t.Priority = normalizePriority(t.Priority)
		t.CreatedAt, t.UpdatedAt = stamp, stamp
		s.tasks.Append(t)
		return store.OK(clone(t), store.SourceLocal)
	}

	rec, err := s.remote.Create(ctx, t.Payload())
	if err != nil {
		return store.Fail[Task](fmt.Errorf("creating task: %w", err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[Task](err, msg)
	}
	created := FromRecord(rec)
	s.tasks.Append(created)
	return store.OK(clone(created), store.SourceRemote)
}

// UpdateTask changes the fields u sets on a task known to the collection.
func (s *Store) UpdateTask(ctx context.Context, id string, u Update) store.Result[Task] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "update", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.updateTask(ctx, id, u, func(ctx context.Context) (Record, error) {
		return s.remote.Update(ctx, id, u.Payload())
	}))
}

// UpdateTaskStatus moves a task to status.
func (s *Store) UpdateTaskStatus(ctx context.Context, id string, status Status) store.Result[Task] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "update_status", id)
	u := Update{Status: &status}
	return store.Finish(ctx, s.logger, s.observer, op, s.updateTask(ctx, id, u, func(ctx context.Context) (Record, error) {
		return s.remote.UpdateStatus(ctx, id, string(status))
	}))
}

func (s *Store) updateTask(ctx context.Context, id string, u Update, send func(context.Context) (Record, error)) store.Result[Task] {
	const msg = "failed to update task"
	if !s.tasks.Has(id) {
		return store.Fail[Task](ErrTaskNotFound, msg)
	}

	if s.localMode() {
		if err := store.Pause(ctx, s.delay); err != nil {
			return store.Fail[Task](err, msg)
		}
		updated, ok := s.tasks.Modify(id, func(t Task) Task {
			t = u.Apply(t)
			t.UpdatedAt = wire.Timestamp(s.now())
			return t
		})
		if !ok {
			return store.Fail[Task](ErrTaskNotFound, msg)
		}
		return store.OK(updated, store.SourceLocal)
	}

	rec, err := send(ctx)
	if err != nil {
		return store.Fail[Task](fmt.Errorf("updating task %s: %w", id, err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[Task](err, msg)
	}
	updated := FromRecord(rec)
	s.tasks.Set(id, updated)
	return store.OK(clone(updated), store.SourceRemote)
}

// DeleteTask deletes a task known to the collection.
func (s *Store) DeleteTask(ctx context.Context, id string) store.Result[struct{}] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "delete", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.deleteTask(ctx, id))
}

func (s *Store) deleteTask(ctx context.Context, id string) store.Result[struct{}] {
	const msg = "failed to delete task"
	if !s.tasks.Has(id) {
		return store.Fail[struct{}](ErrTaskNotFound, msg)
	}

	if s.localMode() {
		if err := store.Pause(ctx, s.delay); err != nil {
			return store.Fail[struct{}](err, msg)
		}
		if !s.tasks.Remove(id) {
			return store.Fail[struct{}](ErrTaskNotFound, msg)
		}
		return store.OK(struct{}{}, store.SourceLocal)
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		return store.Fail[struct{}](fmt.Errorf("deleting task %s: %w", id, err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[struct{}](err, msg)
	}
	s.tasks.Remove(id)
	return store.OK(struct{}{}, store.SourceRemote)
}

// Tasks returns the collection in insertion order.
func (s *Store) Tasks() []Task { return s.tasks.All() }

// Loading reports whether an action is in flight.
func (s *Store) Loading() bool { return s.busy.Active() }

// ByStatus buckets every task under its status. Every status has a bucket.
func (s *Store) ByStatus() map[Status][]Task {
	return store.GroupBy(s.tasks.All(), Statuses, func(t Task) Status { return t.Status })
}

// ForProject returns the tasks of one project.
func (s *Store) ForProject(projectID string) []Task {
	return s.tasks.Filter(func(t Task) bool { return t.ProjectID == projectID })
}

// AssignedTo returns the tasks assigned to user.
func (s *Store) AssignedTo(user string) []Task {
	return s.tasks.Filter(func(t Task) bool { return slices.Contains(t.AssignedTo, user) })
}

// Overdue returns unfinished tasks whose due date is strictly in the past.
// Tasks with an unparseable due date are never overdue.
func (s *Store) Overdue() []Task {
	now := s.now()
	return s.tasks.Filter(func(t Task) bool {
		if t.Status == StatusDone {
			return false
		}
		due, ok := wire.ParseTime(t.DueDate)
		return ok && due.Before(now)
	})
}
