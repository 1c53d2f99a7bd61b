// Package report derives dashboard reports from the projects, tasks and
// users stores. Nothing is cached; every call reads the stores afresh.
package report

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rpggio/pmdash/internal/domain/project"
	"github.com/rpggio/pmdash/internal/domain/task"
	"github.com/rpggio/pmdash/internal/domain/user"
	"github.com/rpggio/pmdash/internal/store"
	"github.com/rpggio/pmdash/internal/wire"
)

const storeName = "reports"

// TopPerformerLimit caps the performer ranking.
const TopPerformerLimit = 3

// DefaultDelay is the artificial latency of GenerateReport.
const DefaultDelay = time.Second

// Projects is the read side of the projects store.
type Projects interface {
	Projects() []project.Project
	ByStatus() map[project.Status][]project.Project
	TotalBudget() float64
	TotalSpent() float64
}

// Tasks is the read side of the tasks store.
type Tasks interface {
	Tasks() []task.Task
	ByStatus() map[task.Status][]task.Task
}

// Users is the read side of the user-profile store.
type Users interface {
	Users() []user.Profile
}

// Aggregator computes reports. Its only state is the selected date range.
type Aggregator struct {
	projects Projects
	tasks    Tasks
	users    Users
	logger   *slog.Logger
	observer store.Observer
	busy     store.Busy
	now      func() time.Time
	delay    time.Duration

	mu        sync.RWMutex
	dateRange DateRange
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithObserver reports GenerateReport to obs.
func WithObserver(obs store.Observer) Option {
	return func(a *Aggregator) { a.observer = obs }
}

// WithClock replaces time.Now for days-remaining and timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithDelay sets the latency of GenerateReport.
func WithDelay(d time.Duration) Option {
	return func(a *Aggregator) { a.delay = d }
}

// NewAggregator creates an aggregator over the three stores.
func NewAggregator(projects Projects, tasks Tasks, users Users, logger *slog.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		projects:  projects,
		tasks:     tasks,
		users:     users,
		logger:    store.Logger(logger),
		now:       time.Now,
		delay:     DefaultDelay,
		dateRange: Range30Days,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DateRange returns the selected range.
func (a *Aggregator) DateRange() DateRange {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dateRange
}

// SetDateRange selects r.
func (a *Aggregator) SetDateRange(r DateRange) error {
	if !r.Valid() {
		return fmt.Errorf("%q: %w", r, ErrInvalidDateRange)
	}
	a.mu.Lock()
	a.dateRange = r
	a.mu.Unlock()
	return nil
}

// Loading reports whether a report is being generated.
func (a *Aggregator) Loading() bool { return a.busy.Active() }

// ProjectReports summarizes every project.
func (a *Aggregator) ProjectReports() []ProjectReport {
	tasks := a.tasks.Tasks()
	now := a.now()
	projects := a.projects.Projects()

	out := make([]ProjectReport, 0, len(projects))
	for _, p := range projects {
		var total, done int
		for _, t := range tasks {
			if t.ProjectID != p.ID {
				continue
			}
			total++
			if t.Status == task.StatusDone {
				done++
			}
		}
		days, known := daysUntil(p.EndDate, now)
		onTrack := p.Status == project.StatusCompleted ||
			(known && float64(p.Progress) >= float64(100-days))
		out = append(out, ProjectReport{
			ProjectID:      p.ID,
			ProjectName:    p.Title,
			Status:         p.Status,
			Progress:       p.Progress,
			Budget:         p.Budget,
			Spent:          p.Spent,
			TasksTotal:     total,
			TasksCompleted: done,
			TeamSize:       len(p.TeamMembers),
			DaysRemaining:  max(0, days),
			IsOnTrack:      onTrack,
		})
	}
	return out
}

// daysUntil is the whole days, rounded up, from now to the end date. An
// unparseable date reports false.
func daysUntil(endDate string, now time.Time) (int, bool) {
	end, ok := wire.ParseTime(endDate)
	if !ok {
		return 0, false
	}
	// Unix seconds, since time.Duration saturates past ~292 years.
	secs := float64(end.Unix()-now.Unix()) + float64(end.Nanosecond()-now.Nanosecond())/1e9
	return int(math.Ceil(secs / 86400)), true
}

// BudgetSummary aggregates budget and spend across projects. Per-project
// shares are ordered by amount spent, largest first.
func (a *Aggregator) BudgetSummary() BudgetSummary {
	totalBudget := a.projects.TotalBudget()
	totalSpent := a.projects.TotalSpent()

	projects := a.projects.Projects()
	shares := make([]ProjectBudget, 0, len(projects))
	for _, p := range projects {
		shares = append(shares, ProjectBudget{
			ProjectName: p.Title,
			Budget:      p.Budget,
			Spent:       p.Spent,
			Percentage:  percent(p.Spent, p.Budget),
		})
	}
	slices.SortStableFunc(shares, func(x, y ProjectBudget) int { return cmp.Compare(y.Spent, x.Spent) })

	return BudgetSummary{
		TotalBudget:     totalBudget,
		TotalSpent:      totalSpent,
		TotalRemaining:  totalBudget - totalSpent,
		UtilizationRate: percent(totalSpent, totalBudget),
		ProjectsBudgets: shares,
	}
}

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// TeamPerformance aggregates the directory against the task board.
func (a *Aggregator) TeamPerformance() TeamPerformance {
	users := a.users.Users()
	tasks := a.tasks.Tasks()

	active := 0
	for _, u := range users {
		if u.Status == user.StatusActive {
			active++
		}
	}
	done := countDone(tasks)

	perMember := 0.0
	if len(users) > 0 {
		perMember = math.Round(float64(len(tasks))/float64(len(users))*10) / 10
	}
	return TeamPerformance{
		TotalMembers:   len(users),
		ActiveMembers:  active,
		TasksPerMember: perMember,
		CompletionRate: completionRate(done, len(tasks)),
		TopPerformers:  topPerformers(users, tasks, TopPerformerLimit),
	}
}

func countDone(tasks []task.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == task.StatusDone {
			n++
		}
	}
	return n
}

func completionRate(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// topPerformers ranks assignees by completed tasks, then by distinct
// projects, then by name. Assignees are matched to a profile by id,
// username, full name or an unambiguous first name so a person is counted
// once.
func topPerformers(users []user.Profile, tasks []task.Task, limit int) []Performer {
	names := make(map[string]string, len(users)*4)
	firsts := map[string][]string{}
	for _, u := range users {
		display := cmp.Or(u.FullName, u.Username, u.ID)
		for _, k := range []string{u.ID, u.Username, u.FullName} {
			if k != "" {
				names[k] = display
			}
		}
		if first, _, _ := strings.Cut(u.FullName, " "); first != "" {
			firsts[first] = append(firsts[first], display)
		}
	}
	for first, displays := range firsts {
		if _, taken := names[first]; !taken && len(displays) == 1 {
			names[first] = displays[0]
		}
	}

	type tally struct {
		done     int
		projects map[string]struct{}
	}
	byName := map[string]*tally{}
	for _, t := range tasks {
		for _, who := range t.AssignedTo {
			name := cmp.Or(names[who], who)
			if name == "" {
				continue
			}
			tl, ok := byName[name]
			if !ok {
				tl = &tally{projects: map[string]struct{}{}}
				byName[name] = tl
			}
			if t.Status == task.StatusDone {
				tl.done++
			}
			if t.ProjectID != "" {
				tl.projects[t.ProjectID] = struct{}{}
			}
		}
	}

	out := make([]Performer, 0, len(byName))
	for name, tl := range byName {
		out = append(out, Performer{Name: name, TasksCompleted: tl.done, Projects: len(tl.projects)})
	}
	slices.SortFunc(out, func(x, y Performer) int {
		return cmp.Or(
			cmp.Compare(y.TasksCompleted, x.TasksCompleted),
			cmp.Compare(y.Projects, x.Projects),
			cmp.Compare(x.Name, y.Name),
		)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TaskStatistics counts the task board per status.
func (a *Aggregator) TaskStatistics() TaskStatistics {
	groups := a.tasks.ByStatus()
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	done := len(groups[task.StatusDone])
	return TaskStatistics{
		Total:          total,
		Todo:           len(groups[task.StatusTodo]),
		InProgress:     len(groups[task.StatusInProgress]),
		Review:         len(groups[task.StatusReview]),
		Done:           done,
		CompletionRate: completionRate(done, total),
	}
}

// ProjectStatusCounts counts projects per status.
func (a *Aggregator) ProjectStatusCounts() ProjectStatusCounts {
	groups := a.projects.ByStatus()
	return ProjectStatusCounts{
		Draft:     len(groups[project.StatusDraft]),
		Active:    len(groups[project.StatusActive]),
		OnHold:    len(groups[project.StatusOnHold]),
		Completed: len(groups[project.StatusCompleted]),
		Archived:  len(groups[project.StatusArchived]),
	}
}

// GenerateReport snapshots the payload for t. It has no side effect on the
// source stores.
func (a *Aggregator) GenerateReport(ctx context.Context, t Type) store.Result[Report] {
	defer a.busy.Begin()()
	op := store.Start(storeName, "generate", string(t))
	return store.Finish(ctx, a.logger, a.observer, op, a.generate(ctx, t))
}

func (a *Aggregator) generate(ctx context.Context, t Type) store.Result[Report] {
	const msg = "failed to generate report"
	if !t.Valid() {
		return store.Fail[Report](fmt.Errorf("%q: %w", t, ErrInvalidType), msg)
	}
	if err := store.Pause(ctx, a.delay); err != nil {
		return store.Fail[Report](err, msg)
	}

	var data any
	switch t {
	case TypeProjectSummary:
		data = a.ProjectReports()
	case TypeBudgetAnalysis:
		data = a.BudgetSummary()
	case TypeTeamPerformance:
		data = a.TeamPerformance()
	case TypeTaskCompletion:
		data = a.TaskStatistics()
	}
	return store.OK(Report{
		Type:        t,
		DateRange:   a.DateRange(),
		GeneratedAt: wire.Timestamp(a.now()),
		Data:        data,
	}, store.SourceLocal)
}
