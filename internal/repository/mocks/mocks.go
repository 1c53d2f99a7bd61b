package mocks

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/rpggio/pmdash/internal/domain/activity"
	"github.com/rpggio/pmdash/internal/domain/auth"
	"github.com/rpggio/pmdash/internal/domain/project"
	"github.com/rpggio/pmdash/internal/domain/task"
	"github.com/rpggio/pmdash/internal/domain/user"
)

// AuthRemote is a mock for auth.Remote.
type AuthRemote struct {
	mock.Mock
}

func (m *AuthRemote) Login(ctx context.Context, email, password string) (auth.Session, error) {
	args := m.Called(ctx, email, password)
	sess, _ := args.Get(0).(auth.Session)
	return sess, args.Error(1)
}

func (m *AuthRemote) Register(ctx context.Context, payload map[string]any) (auth.Session, error) {
	args := m.Called(ctx, payload)
	sess, _ := args.Get(0).(auth.Session)
	return sess, args.Error(1)
}

// ProjectRemote is a mock for project.Remote.
type ProjectRemote struct {
	mock.Mock
}

func (m *ProjectRemote) List(ctx context.Context, query url.Values) ([]project.Record, error) {
	args := m.Called(ctx, query)
	if list, ok := args.Get(0).([]project.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRemote) Get(ctx context.Context, id string) (project.Record, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(project.Record)
	return rec, args.Error(1)
}

func (m *ProjectRemote) Create(ctx context.Context, payload map[string]any) (project.Record, error) {
	args := m.Called(ctx, payload)
	rec, _ := args.Get(0).(project.Record)
	return rec, args.Error(1)
}

func (m *ProjectRemote) Update(ctx context.Context, id string, payload map[string]any) (project.Record, error) {
	args := m.Called(ctx, id, payload)
	rec, _ := args.Get(0).(project.Record)
	return rec, args.Error(1)
}

func (m *ProjectRemote) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TaskRemote is a mock for task.Remote.
type TaskRemote struct {
	mock.Mock
}

func (m *TaskRemote) List(ctx context.Context, query url.Values) ([]task.Record, error) {
	args := m.Called(ctx, query)
	if list, ok := args.Get(0).([]task.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRemote) Create(ctx context.Context, payload map[string]any) (task.Record, error) {
	args := m.Called(ctx, payload)
	rec, _ := args.Get(0).(task.Record)
	return rec, args.Error(1)
}

func (m *TaskRemote) Update(ctx context.Context, id string, payload map[string]any) (task.Record, error) {
	args := m.Called(ctx, id, payload)
	rec, _ := args.Get(0).(task.Record)
	return rec, args.Error(1)
}

func (m *TaskRemote) UpdateStatus(ctx context.Context, id, status string) (task.Record, error) {
	args := m.Called(ctx, id, status)
	rec, _ := args.Get(0).(task.Record)
	return rec, args.Error(1)
}

func (m *TaskRemote) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// UserRemote is a mock for user.Remote.
type UserRemote struct {
	mock.Mock
}

func (m *UserRemote) List(ctx context.Context, query url.Values) ([]user.Record, error) {
	args := m.Called(ctx, query)
	if list, ok := args.Get(0).([]user.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRemote) Get(ctx context.Context, id string) (user.Record, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(user.Record)
	return rec, args.Error(1)
}

func (m *UserRemote) Create(ctx context.Context, payload map[string]any) (user.Record, error) {
	args := m.Called(ctx, payload)
	rec, _ := args.Get(0).(user.Record)
	return rec, args.Error(1)
}

func (m *UserRemote) Update(ctx context.Context, id string, payload map[string]any) (user.Record, error) {
	args := m.Called(ctx, id, payload)
	rec, _ := args.Get(0).(user.Record)
	return rec, args.Error(1)
}

func (m *UserRemote) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	_ auth.Remote         = (*AuthRemote)(nil)
	_ project.Remote      = (*ProjectRemote)(nil)
	_ task.Remote         = (*TaskRemote)(nil)
	_ user.Remote         = (*UserRemote)(nil)
	_ activity.Repository = (*ActivityRepository)(nil)
)
