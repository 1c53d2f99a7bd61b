package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/pmdash/internal/domain/project"
	"github.com/rpggio/pmdash/internal/domain/report"
	"github.com/rpggio/pmdash/internal/domain/task"
	"github.com/rpggio/pmdash/internal/domain/user"
	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/store"
)

var fixedNow = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

type projects []project.Project

func (p projects) Projects() []project.Project { return p }
func (p projects) ByStatus() map[project.Status][]project.Project {
	return store.GroupBy([]project.Project(p), project.Statuses, func(x project.Project) project.Status { return x.Status })
}
func (p projects) TotalBudget() float64 {
	var t float64
	for _, x := range p {
		t += x.Budget
	}
	return t
}
func (p projects) TotalSpent() float64 {
	var t float64
	for _, x := range p {
		t += x.Spent
	}
	return t
}

type tasks []task.Task

func (t tasks) Tasks() []task.Task { return t }
func (t tasks) ByStatus() map[task.Status][]task.Task {
	return store.GroupBy([]task.Task(t), task.Statuses, func(x task.Task) task.Status { return x.Status })
}

type users []user.Profile

func (u users) Users() []user.Profile { return u }

func newAggregator(p projects, t tasks, u users) *report.Aggregator {
	return report.NewAggregator(p, t, u, nil,
		report.WithClock(func() time.Time { return fixedNow }),
		report.WithDelay(0))
}

func TestProjectReports(t *testing.T) {
	p := projects{
		{ID: "1", Title: "Late", Status: project.StatusActive, Progress: 50, EndDate: "2024-01-15", TeamMembers: []string{"a", "b"}},
		{ID: "2", Title: "Ahead", Status: project.StatusActive, Progress: 95, EndDate: "2024-02-10"},
		{ID: "3", Title: "Behind", Status: project.StatusActive, Progress: 80, EndDate: "2024-02-10"},
		{ID: "4", Title: "Done", Status: project.StatusCompleted, Progress: 10, EndDate: "garbage"},
		{ID: "5", Title: "Unknown", Status: project.StatusDraft, Progress: 100, EndDate: ""},
	}
	tk := tasks{
		{ID: "a", ProjectID: "1", Status: task.StatusDone},
		{ID: "b", ProjectID: "1", Status: task.StatusTodo},
		{ID: "c", ProjectID: "2", Status: task.StatusDone},
	}
	reports := newAggregator(p, tk, nil).ProjectReports()
	require.Len(t, reports, 5)

	require.Equal(t, 2, reports[0].TasksTotal)
	require.Equal(t, 1, reports[0].TasksCompleted)
	require.Equal(t, 2, reports[0].TeamSize)
	require.Equal(t, 0, reports[0].DaysRemaining)
	require.False(t, reports[0].IsOnTrack)

	require.Equal(t, 9, reports[1].DaysRemaining)
	require.True(t, reports[1].IsOnTrack)
	require.False(t, reports[2].IsOnTrack)

	require.True(t, reports[3].IsOnTrack)
	require.Equal(t, 0, reports[3].DaysRemaining)
	require.False(t, reports[4].IsOnTrack)
}

func TestDaysRemaining_RoundsUp(t *testing.T) {
	p := projects{{ID: "1", EndDate: "2024-02-02T01:00:00"}}
	require.Equal(t, 2, newAggregator(p, nil, nil).ProjectReports()[0].DaysRemaining)
}

func TestDaysRemaining_DistantDeadline(t *testing.T) {
	p := projects{
		{ID: "1", EndDate: "2500-01-01"},
		{ID: "2", EndDate: "1500-01-01"},
	}
	reports := newAggregator(p, nil, nil).ProjectReports()
	require.Equal(t, 173825, reports[0].DaysRemaining)
	require.True(t, reports[0].IsOnTrack)
	require.Equal(t, 0, reports[1].DaysRemaining)
	require.False(t, reports[1].IsOnTrack)
}

func TestBudgetSummary(t *testing.T) {
	p := projects{
		{Title: "A", Budget: 100, Spent: 20},
		{Title: "B", Budget: 0, Spent: 50},
		{Title: "C", Budget: 400, Spent: 130},
	}
	sum := newAggregator(p, nil, nil).BudgetSummary()
	require.Equal(t, 500.0, sum.TotalBudget)
	require.Equal(t, 200.0, sum.TotalSpent)
	require.Equal(t, 300.0, sum.TotalRemaining)
	require.InDelta(t, 40.0, sum.UtilizationRate, 1e-9)

	require.Equal(t, []string{"C", "B", "A"}, []string{
		sum.ProjectsBudgets[0].ProjectName, sum.ProjectsBudgets[1].ProjectName, sum.ProjectsBudgets[2].ProjectName,
	})
	require.Equal(t, 0.0, sum.ProjectsBudgets[1].Percentage)
	require.InDelta(t, 32.5, sum.ProjectsBudgets[0].Percentage, 1e-9)
}

func TestBudgetSummary_ZeroBudget(t *testing.T) {
	sum := newAggregator(projects{}, nil, nil).BudgetSummary()
	require.Equal(t, 0.0, sum.UtilizationRate)
	require.Empty(t, sum.ProjectsBudgets)
}

func TestTeamPerformance(t *testing.T) {
	u := users(user.Seed())
	tk := tasks(task.Seed())
	perf := newAggregator(nil, tk, u).TeamPerformance()

	require.Equal(t, 8, perf.TotalMembers)
	require.Equal(t, 7, perf.ActiveMembers)
	require.Equal(t, 0.5, perf.TasksPerMember)
	require.Equal(t, 25, perf.CompletionRate)

	require.Equal(t, []report.Performer{
		{Name: "Charlie Wong", TasksCompleted: 1, Projects: 1},
		{Name: "Alice Tan", TasksCompleted: 0, Projects: 1},
		{Name: "Bob Lee", TasksCompleted: 0, Projects: 1},
	}, perf.TopPerformers)
}

func TestTeamPerformance_Empty(t *testing.T) {
	perf := newAggregator(nil, tasks{}, users{}).TeamPerformance()
	require.Equal(t, 0.0, perf.TasksPerMember)
	require.Equal(t, 0, perf.CompletionRate)
	require.Empty(t, perf.TopPerformers)
}

func TestTeamPerformance_RoundsTasksPerMember(t *testing.T) {
	u := users{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	tk := tasks{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	require.Equal(t, 1.3, newAggregator(nil, tk, u).TeamPerformance().TasksPerMember)
}

func TestTopPerformers_AmbiguousFirstNameStaysRaw(t *testing.T) {
	u := users{{ID: "1", FullName: "Ana Cruz"}, {ID: "2", FullName: "Ana Lim"}}
	tk := tasks{{ID: "a", Status: task.StatusDone, AssignedTo: []string{"Ana", "2"}}}
	perf := newAggregator(nil, tk, u).TeamPerformance()
	require.Equal(t, []report.Performer{
		{Name: "Ana", TasksCompleted: 1},
		{Name: "Ana Lim", TasksCompleted: 1},
	}, perf.TopPerformers)
}

func TestTaskStatistics(t *testing.T) {
	stats := newAggregator(nil, tasks(task.Seed()), nil).TaskStatistics()
	require.Equal(t, report.TaskStatistics{Total: 4, Todo: 1, InProgress: 1, Review: 1, Done: 1, CompletionRate: 25}, stats)
}

func TestProjectStatusCounts(t *testing.T) {
	p := projects{{Status: project.StatusActive}, {Status: project.StatusActive}, {Status: project.StatusOnHold}, {Status: project.StatusArchived}}
	require.Equal(t, report.ProjectStatusCounts{Active: 2, OnHold: 1, Archived: 1}, newAggregator(p, nil, nil).ProjectStatusCounts())
}

func TestSetDateRange(t *testing.T) {
	a := newAggregator(nil, nil, nil)
	require.Equal(t, report.Range30Days, a.DateRange())
	require.NoError(t, a.SetDateRange(report.Range90Days))
	require.Equal(t, report.Range90Days, a.DateRange())

	err := a.SetDateRange("1year")
	require.ErrorIs(t, err, repository.ErrInvalidInput)
	require.Equal(t, report.Range90Days, a.DateRange())
}

func TestGenerateReport(t *testing.T) {
	p := projects{{ID: "1", Title: "A", Budget: 10, Spent: 5}}
	a := newAggregator(p, tasks{}, users{})
	require.NoError(t, a.SetDateRange(report.Range7Days))

	res := a.GenerateReport(context.Background(), report.TypeBudgetAnalysis)
	require.True(t, res.Success)
	require.Equal(t, report.TypeBudgetAnalysis, res.Data.Type)
	require.Equal(t, report.Range7Days, res.Data.DateRange)
	require.Equal(t, "2024-02-01T00:00:00.000Z", res.Data.GeneratedAt)
	sum, ok := res.Data.Data.(report.BudgetSummary)
	require.True(t, ok)
	require.Equal(t, 50.0, sum.UtilizationRate)
	require.Equal(t, projects{{ID: "1", Title: "A", Budget: 10, Spent: 5}}, p)
	require.False(t, a.Loading())

	res = a.GenerateReport(context.Background(), "pie_chart")
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, report.ErrInvalidType)
}

func TestGenerateReport_Canceled(t *testing.T) {
	a := report.NewAggregator(projects{}, tasks{}, users{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := a.GenerateReport(ctx, report.TypeTaskCompletion)
	require.False(t, res.Success)
	require.Equal(t, "failed to generate report", res.Error)
}
