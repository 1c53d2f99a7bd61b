package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pmdash/internal/repository"
)

type remoteErr struct{ msg string }

func (e remoteErr) Error() string         { return "remote: " + e.msg }
func (e remoteErr) ServerMessage() string { return e.msg }

// statusErr is a remote rejection without a body, matching ErrNotFound.
type statusErr struct{}

func (statusErr) Error() string         { return "GET /projects/9: 404 Not Found" }
func (statusErr) ServerMessage() string { return "" }
func (statusErr) Is(target error) bool  { return target == repository.ErrNotFound }

func TestFail_MessageSelection(t *testing.T) {
	r := Fail[int](fmt.Errorf("wrapped: %w", remoteErr{msg: "Email taken"}), "Registration failed")
	assert.False(t, r.Success)
	assert.Equal(t, "Email taken", r.Error)

	r = Fail[int](fmt.Errorf("task 9: %w", repository.ErrNotFound), "Failed")
	assert.Equal(t, "task 9: not found", r.Error)
	assert.ErrorIs(t, r.Err, repository.ErrNotFound)

	r = Fail[int](errors.New("boom"), "Failed to fetch projects")
	assert.Equal(t, "Failed to fetch projects", r.Error)
}

func TestFail_RemoteNotFoundWithoutMessage(t *testing.T) {
	r := Fail[int](fmt.Errorf("fetching project 9: %w", statusErr{}), "Failed to fetch project")
	assert.Equal(t, "Failed to fetch project", r.Error)
	assert.ErrorIs(t, r.Err, repository.ErrNotFound)
}

func TestWithFallback(t *testing.T) {
	ctx := context.Background()
	seed := func(context.Context) (string, error) { return "seed", nil }

	v, src, err := WithFallback(ctx, func(context.Context) (string, error) { return "remote", nil }, seed, AnyFailure)
	require.NoError(t, err)
	assert.Equal(t, "remote", v)
	assert.Equal(t, SourceRemote, src)

	v, src, err = WithFallback[string](ctx, nil, seed, Unreachable)
	require.NoError(t, err)
	assert.Equal(t, "seed", v)
	assert.Equal(t, SourceFallback, src)

	down := func(context.Context) (string, error) { return "", repository.ErrUnavailable }
	v, src, err = WithFallback(ctx, down, seed, Unreachable)
	require.NoError(t, err)
	assert.Equal(t, "seed", v)
	assert.Equal(t, SourceFallback, src)

	slow := func(context.Context) (string, error) { return "", repository.ErrTimeout }
	_, src, err = WithFallback(ctx, slow, seed, Unreachable)
	assert.ErrorIs(t, err, repository.ErrTimeout)
	assert.Equal(t, SourceRemote, src)

	broken := func(context.Context) (string, error) { return "", errors.New("seed broken") }
	_, _, err = WithFallback(ctx, down, broken, Unreachable)
	assert.ErrorIs(t, err, repository.ErrUnavailable)
	assert.ErrorContains(t, err, "seed broken")
}

func TestBusy(t *testing.T) {
	var b Busy
	assert.False(t, b.Active())
	done1 := b.Begin()
	done2 := b.Begin()
	assert.True(t, b.Active())
	done1()
	assert.True(t, b.Active())
	done2()
	assert.False(t, b.Active())
}

func TestFinish_NotifiesObservers(t *testing.T) {
	var got []Event
	obs := Observers(nil, ObserverFunc(func(_ context.Context, ev Event) { got = append(got, ev) }))

	op := Start("tasks", "delete", "t1")
	res := Finish(context.Background(), nil, obs, op, Fail[struct{}](repository.ErrNotFound, "x"))
	assert.False(t, res.Success)

	require.Len(t, got, 1)
	assert.Equal(t, "tasks", got[0].Store)
	assert.Equal(t, "delete", got[0].Action)
	assert.Equal(t, "t1", got[0].EntityID)
	assert.False(t, got[0].Success)
	assert.ErrorIs(t, got[0].Err, repository.ErrNotFound)
}

func TestRelevant(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, Relevant(ctx))
	cancel()
	assert.ErrorIs(t, Relevant(ctx), context.Canceled)
}
