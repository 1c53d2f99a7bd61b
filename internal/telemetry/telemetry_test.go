package telemetry_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pmdash/internal/config"
	"github.com/rpggio/pmdash/internal/domain/auth"
	"github.com/rpggio/pmdash/internal/domain/project"
	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/store"
	"github.com/rpggio/pmdash/internal/telemetry"
)

func TestMetrics_Observe(t *testing.T) {
	m := telemetry.NewMetrics()
	ctx := context.Background()

	m.Observe(ctx, store.Event{Store: "tasks", Action: "fetch", Success: true, Source: store.SourceFallback, Duration: time.Millisecond})
	m.Observe(ctx, store.Event{Store: "tasks", Action: "fetch", Success: true, Source: store.SourceFallback})
	m.Observe(ctx, store.Event{Store: "tasks", Action: "delete", Success: false, Err: repository.ErrNotFound})

	expected := `
# HELP pmdash_store_actions_total Store actions by outcome and data source.
# TYPE pmdash_store_actions_total counter
pmdash_store_actions_total{action="delete",outcome="failure",source="",store="tasks"} 1
pmdash_store_actions_total{action="fetch",outcome="success",source="fallback",store="tasks"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "pmdash_store_actions_total"))
	n, err := testutil.GatherAndCount(m.Registry(), "pmdash_store_action_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestMetrics_Handler(t *testing.T) {
	m := telemetry.NewMetrics()
	m.Observe(context.Background(), store.Event{Store: "auth", Action: "login", Success: true, Source: store.SourceRemote})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `pmdash_store_actions_total{action="login",outcome="success",source="remote",store="auth"} 1`)
}

func TestReportable(t *testing.T) {
	require.False(t, telemetry.Reportable(store.Event{Success: true}))
	require.False(t, telemetry.Reportable(store.Event{Err: project.ErrProjectNotFound}))
	require.False(t, telemetry.Reportable(store.Event{Err: repository.ErrInvalidInput}))
	require.False(t, telemetry.Reportable(store.Event{Err: context.Canceled}))
	require.False(t, telemetry.Reportable(store.Event{Err: repository.ErrUnauthorized}))
	require.True(t, telemetry.Reportable(store.Event{Err: repository.ErrTimeout}))
}

func TestSentry_CapturesReportableFailures(t *testing.T) {
	var mu sync.Mutex
	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		SampleRate: 1.0,
		BeforeSend: func(e *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
			return nil
		},
	})
	require.NoError(t, err)
	obs := telemetry.NewSentry(sentry.NewHub(client, sentry.NewScope()))

	ctx := context.Background()
	obs.Observe(ctx, store.Event{Store: "projects", Action: "fetch", Err: errors.New("boom"), Source: store.SourceRemote})
	obs.Observe(ctx, store.Event{Store: "projects", Action: "delete", Err: project.ErrProjectNotFound})
	obs.Observe(ctx, store.Event{Store: "projects", Action: "fetch", Success: true})
	obs.Observe(ctx, store.Event{Store: "auth", Action: "login", Err: fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, repository.ErrUnavailable)})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	require.Equal(t, "projects", events[0].Tags["store"])
	require.Equal(t, "fetch", events[0].Tags["action"])
	require.Equal(t, "remote", events[0].Tags["source"])
}

func TestReportable_RejectedLogin(t *testing.T) {
	for _, remoteErr := range []error{repository.ErrUnavailable, repository.ErrTimeout, errors.New("boom")} {
		ev := store.Event{Store: "auth", Action: "login", Err: fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, remoteErr)}
		require.False(t, telemetry.Reportable(ev), remoteErr)
	}
}

func TestOpenSentry_Disabled(t *testing.T) {
	obs, flush, err := telemetry.OpenSentry(config.SentryConfig{}, "dev")
	require.NoError(t, err)
	require.Nil(t, obs)
	flush()
}
