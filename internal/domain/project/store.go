package project

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/store"
)

const storeName = "projects"

// Store owns the session's project collection. Projects have no fallback
// source: without a reachable remote every action fails.
type Store struct {
	remote   Remote
	logger   *slog.Logger
	observer store.Observer
	busy     store.Busy

	projects *store.Collection[Project]

	mu      sync.RWMutex
	current *Project
}

// NewStore creates a project store. A nil remote means offline.
func NewStore(remote Remote, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		remote:   remote,
		logger:   store.Logger(logger),
		projects: store.NewCollection(func(p Project) string { return p.ID }, clone),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchProjects replaces the collection with the remote list.
func (s *Store) FetchProjects(ctx context.Context) store.Result[[]Project] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "fetch", "")
	return store.Finish(ctx, s.logger, s.observer, op, s.fetchProjects(ctx))
}

func (s *Store) fetchProjects(ctx context.Context) store.Result[[]Project] {
	const msg = "failed to fetch projects"
	if s.remote == nil {
		return store.Fail[[]Project](repository.ErrUnavailable, msg)
	}
	records, err := s.remote.List(ctx, url.Values{})
	if err != nil {
		return store.Fail[[]Project](fmt.Errorf("fetching projects: %w", err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[[]Project](err, msg)
	}
	projects := make([]Project, len(records))
	for i, r := range records {
		projects[i] = FromRecord(r)
	}
	s.projects.Replace(projects)
	return store.OK(s.projects.All(), store.SourceRemote)
}

// FetchProjectByID loads one project into Current. Current is cleared first
// and stays nil when the fetch fails.
func (s *Store) FetchProjectByID(ctx context.Context, id string) store.Result[Project] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "fetch_one", id)

	s.setCurrent(nil)
	return store.Finish(ctx, s.logger, s.observer, op, s.fetchProjectByID(ctx, id))
}

func (s *Store) fetchProjectByID(ctx context.Context, id string) store.Result[Project] {
	const msg = "failed to fetch project"
	if s.remote == nil {
		return store.Fail[Project](repository.ErrUnavailable, msg)
	}
	rec, err := s.remote.Get(ctx, id)
	if err != nil {
		return store.Fail[Project](fmt.Errorf("fetching project %s: %w", id, err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[Project](err, msg)
	}
	p := FromRecord(rec)
	s.setCurrent(&p)
	return store.OK(clone(p), store.SourceRemote)
}

// CreateProject sends p and appends the server's copy to the collection.
func (s *Store) CreateProject(ctx context.Context, p Project) store.Result[Project] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "create", "")
	return store.Finish(ctx, s.logger, s.observer, op, s.createProject(ctx, p))
}

func (s *Store) createProject(ctx context.Context, p Project) store.Result[Project] {
	const msg = "failed to create project"
	if s.remote == nil {
		return store.Fail[Project](repository.ErrUnavailable, msg)
	}
	rec, err := s.remote.Create(ctx, p.Payload())
	if err != nil {
		return store.Fail[Project](fmt.Errorf("creating project: %w", err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[Project](err, msg)
	}
	created := FromRecord(rec)
	s.projects.Append(created)
	return store.OK(clone(created), store.SourceRemote)
}

// UpdateProject sends only the fields u sets and replaces the local entry in
// place with the server's copy.
func (s *Store) UpdateProject(ctx context.Context, id string, u Update) store.Result[Project] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "update", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.updateProject(ctx, id, u))
}

func (s *Store) updateProject(ctx context.Context, id string, u Update) store.Result[Project] {
	const msg = "failed to update project"
	if !s.projects.Has(id) {
		return store.Fail[Project](ErrProjectNotFound, msg)
	}
	if s.remote == nil {
		return store.Fail[Project](repository.ErrUnavailable, msg)
	}
	rec, err := s.remote.Update(ctx, id, u.Payload())
	if err != nil {
		return store.Fail[Project](fmt.Errorf("updating project %s: %w", id, err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[Project](err, msg)
	}
	updated := FromRecord(rec)
	s.projects.Set(id, updated)
	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		c := clone(updated)
		s.current = &c
	}
	s.mu.Unlock()
	return store.OK(clone(updated), store.SourceRemote)
}

// UpdateProjectStatus changes only the status.
func (s *Store) UpdateProjectStatus(ctx context.Context, id string, status Status) store.Result[Project] {
	return s.UpdateProject(ctx, id, Update{Status: &status})
}

// DeleteProject deletes a project known to the collection.
func (s *Store) DeleteProject(ctx context.Context, id string) store.Result[struct{}] {
	defer s.busy.Begin()()
	op := store.Start(storeName, "delete", id)
	return store.Finish(ctx, s.logger, s.observer, op, s.deleteProject(ctx, id))
}

func (s *Store) deleteProject(ctx context.Context, id string) store.Result[struct{}] {
	const msg = "failed to delete project"
	if !s.projects.Has(id) {
		return store.Fail[struct{}](ErrProjectNotFound, msg)
	}
	if s.remote == nil {
		return store.Fail[struct{}](repository.ErrUnavailable, msg)
	}
	if err := s.remote.Delete(ctx, id); err != nil {
		return store.Fail[struct{}](fmt.Errorf("deleting project %s: %w", id, err), msg)
	}
	if err := store.Relevant(ctx); err != nil {
		return store.Fail[struct{}](err, msg)
	}
	// The entry may already be gone after a concurrent delete.
	s.projects.Remove(id)
	s.mu.Lock()
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.mu.Unlock()
	return store.OK(struct{}{}, store.SourceRemote)
}

func (s *Store) setCurrent(p *Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
}

// Projects returns the collection in insertion order.
func (s *Store) Projects() []Project { return s.projects.All() }

// Current returns the project loaded by FetchProjectByID, or nil.
func (s *Store) Current() *Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	c := clone(*s.current)
	return &c
}

// Loading reports whether an action is in flight.
func (s *Store) Loading() bool { return s.busy.Active() }

// Active returns projects with status active.
func (s *Store) Active() []Project {
	return s.projects.Filter(func(p Project) bool { return p.Status == StatusActive })
}

// Completed returns projects with status completed.
func (s *Store) Completed() []Project {
	return s.projects.Filter(func(p Project) bool { return p.Status == StatusCompleted })
}

// ByStatus buckets every project under its status. Every status has a bucket.
func (s *Store) ByStatus() map[Status][]Project {
	return store.GroupBy(s.projects.All(), Statuses, func(p Project) Status { return p.Status })
}

// ManagedBy returns the projects whose manager is manager.
func (s *Store) ManagedBy(manager string) []Project {
	return s.projects.Filter(func(p Project) bool { return p.ProjectManager == manager })
}

// TotalBudget sums every project's budget.
func (s *Store) TotalBudget() float64 {
	var sum float64
	for _, p := range s.projects.All() {
		sum += p.Budget
	}
	return sum
}

// TotalSpent sums every project's spending.
func (s *Store) TotalSpent() float64 {
	var sum float64
	for _, p := range s.projects.All() {
		sum += p.Spent
	}
	return sum
}
