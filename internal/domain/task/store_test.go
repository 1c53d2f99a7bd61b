package task_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pmdash/internal/domain/task"
	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/repository/mocks"
	"github.com/rpggio/pmdash/internal/store"
)

var fixedNow = time.Date(2024, 2, 12, 8, 0, 0, 0, time.UTC)

func offlineStore(t *testing.T) *task.Store {
	t.Helper()
	s := task.NewStore(nil, nil, task.WithFallbackDelay(0), task.WithClock(func() time.Time { return fixedNow }))
	res := s.FetchTasks(context.Background(), "")
	require.True(t, res.Success, res.Error)
	require.Equal(t, store.SourceFallback, res.Source)
	return s
}

func TestFetchTasks_OfflineServesSeed(t *testing.T) {
	s := offlineStore(t)
	require.Len(t, s.Tasks(), 4)
	require.True(t, s.LocalMode())
	require.False(t, s.Loading())
}

func TestFetchTasks_UnreachableFallsBack(t *testing.T) {
	remote := &mocks.TaskRemote{}
	remote.On("List", mock.Anything, mock.Anything).Return(nil, repository.ErrUnavailable)

	s := task.NewStore(remote, nil, task.WithFallbackDelay(0))
	res := s.FetchTasks(context.Background(), "")
	require.True(t, res.Success)
	require.Equal(t, store.SourceFallback, res.Source)
	require.Len(t, s.Tasks(), 4)
	require.True(t, s.LocalMode())
}

func TestFetchTasks_TimeoutDoesNotFallBack(t *testing.T) {
	remote := &mocks.TaskRemote{}
	remote.On("List", mock.Anything, mock.Anything).Return(nil, repository.ErrTimeout)

	s := task.NewStore(remote, nil, task.WithFallbackDelay(0))
	res := s.FetchTasks(context.Background(), "")
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, repository.ErrTimeout)
	require.Equal(t, "failed to fetch tasks", res.Error)
	require.Empty(t, s.Tasks())
	require.False(t, s.LocalMode())
}

func TestFetchTasks_RemoteWithProjectFilter(t *testing.T) {
	remote := &mocks.TaskRemote{}
	remote.On("List", mock.Anything, mock.MatchedBy(func(q url.Values) bool {
		return q.Get("project_id") == "2"
	})).Return([]task.Record{
		{ID: "10", ProjectID: "2", Title: "a", Status: "review"},
		{ID: "11", ProjectID: "3", Title: "stray"},
	}, nil)

	s := task.NewStore(remote, nil)
	res := s.FetchTasks(context.Background(), "2")
	require.True(t, res.Success)
	require.Equal(t, store.SourceRemote, res.Source)
	require.Len(t, s.Tasks(), 1)
	require.Equal(t, "10", s.Tasks()[0].ID)
	require.False(t, s.LocalMode())
}

func TestUpdateTask_StatusMovesBucket(t *testing.T) {
	s := offlineStore(t)
	done := task.StatusDone

	before := s.Tasks()[0]
	require.Equal(t, task.StatusInProgress, before.Status)

	res := s.UpdateTask(context.Background(), "1", task.Update{Status: &done})
	require.True(t, res.Success)
	require.Equal(t, store.SourceLocal, res.Source)

	after := s.Tasks()[0]
	require.Equal(t, task.StatusDone, after.Status)
	require.Equal(t, before.Title, after.Title)
	require.Equal(t, before.AssignedTo, after.AssignedTo)
	require.Equal(t, before.CreatedAt, after.CreatedAt)
	require.Equal(t, "2024-02-12T08:00:00.000Z", after.UpdatedAt)

	groups := s.ByStatus()
	require.Empty(t, groups[task.StatusInProgress])
	require.Len(t, groups[task.StatusDone], 2)
}

func TestUpdateTaskStatus_Remote(t *testing.T) {
	remote := &mocks.TaskRemote{}
	remote.On("List", mock.Anything, mock.Anything).Return([]task.Record{{ID: "1", Title: "x", Status: "todo"}}, nil)
	remote.On("UpdateStatus", mock.Anything, "1", "review").Return(task.Record{ID: "1", Title: "x", Status: "review"}, nil)

	s := task.NewStore(remote, nil)
	require.True(t, s.FetchTasks(context.Background(), "").Success)

	res := s.UpdateTaskStatus(context.Background(), "1", task.StatusReview)
	require.True(t, res.Success)
	require.Equal(t, task.StatusReview, s.Tasks()[0].Status)
	remote.AssertExpectations(t)
}

func TestCreateTask_Local(t *testing.T) {
	s := offlineStore(t)
	res := s.CreateTask(context.Background(), task.Task{Title: "Write docs", ProjectID: "1"})
	require.True(t, res.Success)
	require.NotEmpty(t, res.Data.ID)
	require.Equal(t, task.StatusTodo, res.Data.Status)
	require.Equal(t, res.Data.CreatedAt, res.Data.UpdatedAt)

	all := s.Tasks()
	require.Len(t, all, 5)
	require.Equal(t, res.Data.ID, all[4].ID)
}

func TestDeleteTask(t *testing.T) {
	s := offlineStore(t)
	before := s.Tasks()

	res := s.DeleteTask(context.Background(), "404")
	require.False(t, res.Success)
	require.ErrorIs(t, res.Err, repository.ErrNotFound)
	require.Equal(t, "task not found", res.Error)
	require.Equal(t, before, s.Tasks())

	require.True(t, s.DeleteTask(context.Background(), "2").Success)
	require.Len(t, s.Tasks(), 3)
}

func TestDerivedViews(t *testing.T) {
	s := offlineStore(t)

	require.Len(t, s.ForProject("1"), 4)
	require.Empty(t, s.ForProject("2"))
	require.Len(t, s.AssignedTo("Alice"), 2)

	// Due 2024-02-10 (review) is past; 2024-01-20 is done; the others are later.
	overdue := s.Overdue()
	require.Len(t, overdue, 1)
	require.Equal(t, "3", overdue[0].ID)

	groups := s.ByStatus()
	total := 0
	for _, st := range task.Statuses {
		total += len(groups[st])
	}
	require.Equal(t, len(s.Tasks()), total)
}

func TestMapping_RoundTrip(t *testing.T) {
	orig := task.Task{
		ID: "9", Title: "t", Description: "d", Status: task.StatusReview, Priority: task.PriorityUrgent,
		ProjectID: "3", AssignedTo: []string{"a"}, DueDate: "2024-03-01", CreatedBy: "admin",
		CreatedAt: "2024-01-01", UpdatedAt: "2024-01-02", Tags: []string{"x", "y"},
	}
	payload := orig.Payload()
	payload["id"] = 9
	payload["created_at"] = orig.CreatedAt
	payload["updated_at"] = orig.UpdatedAt

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	var rec task.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	require.Equal(t, orig, task.FromRecord(rec))
}

func TestUpdatePayload_OnlyPresentFields(t *testing.T) {
	empty := ""
	u := task.Update{Description: &empty, Tags: []string{}}
	require.Equal(t, map[string]any{"description": "", "tags": []string{}}, u.Payload())
}
