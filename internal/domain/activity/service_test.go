package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pmdash/internal/domain/activity"
	"github.com/rpggio/pmdash/internal/repository/mocks"
	"github.com/rpggio/pmdash/internal/store"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		Store:  "projects",
		Action: "create",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{Store: "projects", Limit: activity.DefaultLimit}).
		Return([]activity.ActivityEntry{{ID: 1, Store: "projects", Action: "create"}}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.False(t, entry.CreatedAt.IsZero())
	require.Equal(t, activity.OutcomeSuccess, entry.Outcome)

	list, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{Store: "projects"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_LogRejectsIncompleteEntry(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.ActivityEntry{Store: "tasks"}), activity.ErrInvalidInput)
}

func TestActivityService_ObserveRecordsFailure(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	repo.On("Log", mock.Anything, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.Store == "tasks" &&
			e.Action == "delete" &&
			e.EntityID == "t9" &&
			e.Outcome == activity.OutcomeFailure &&
			e.Error == "gone" &&
			e.DurationMS == 12
	})).Return(nil)

	svc := activity.NewService(repo, nil)
	svc.Observe(context.Background(), store.Event{
		Store:    "tasks",
		Action:   "delete",
		EntityID: "t9",
		Success:  false,
		Err:      errors.New("gone"),
		Duration: 12 * time.Millisecond,
	})
	repo.AssertExpectations(t)
}

func TestActivityService_ObserveSwallowsRepoError(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	repo.On("Log", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := activity.NewService(repo, nil)
	require.NotPanics(t, func() {
		svc.Observe(context.Background(), store.Event{Store: "auth", Action: "login", Success: true, Source: store.SourceFallback})
	})
	repo.AssertExpectations(t)
}
