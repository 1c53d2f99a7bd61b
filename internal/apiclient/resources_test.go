package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/pmdash/internal/apiclient"
)

type captured struct {
	method, path, query string
	body                map[string]any
}

func recordingClient(t *testing.T, reply string, got *captured) *apiclient.Client {
	t.Helper()
	return newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got.method, got.path, got.query = r.Method, r.URL.Path, r.URL.RawQuery
		raw, _ := io.ReadAll(r.Body)
		got.body = nil
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &got.body))
		}
		if reply == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(reply))
	}, nil)
}

func TestProjectsAPI(t *testing.T) {
	var got captured
	api := apiclient.NewProjectsAPI(recordingClient(t, `[{"id": 1, "title": "A", "budget": "1500.50"}]`, &got))

	list, err := api.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "1", string(list[0].ID))
	require.Equal(t, 1500.5, float64(list[0].Budget))
	require.Equal(t, "GET /api/projects", got.method+" "+got.path)
}

func TestProjectsAPI_GetUpdateDelete(t *testing.T) {
	var got captured
	api := apiclient.NewProjectsAPI(recordingClient(t, `{"data": {"id": "5", "status": "active"}}`, &got))

	rec, err := api.Get(context.Background(), "5")
	require.NoError(t, err)
	require.Equal(t, "active", rec.Status)
	require.Equal(t, "/api/projects/5", got.path)

	_, err = api.Update(context.Background(), "5", map[string]any{"progress": 0})
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, got.method)
	require.Equal(t, map[string]any{"progress": float64(0)}, got.body)

	require.NoError(t, api.Delete(context.Background(), "5"))
	require.Equal(t, http.MethodDelete, got.method)
}

func TestTasksAPI(t *testing.T) {
	var got captured
	api := apiclient.NewTasksAPI(recordingClient(t, `{"id": 3, "status": "done", "assigned_to": ["Alice"]}`, &got))

	rec, err := api.UpdateStatus(context.Background(), "3", "done")
	require.NoError(t, err)
	require.Equal(t, "done", rec.Status)
	require.Equal(t, "PATCH /api/tasks/3/status", got.method+" "+got.path)
	require.Equal(t, map[string]any{"status": "done"}, got.body)

	_, err = api.List(context.Background(), url.Values{"project_id": {"1"}})
	require.Error(t, err, "object reply does not decode as a list")
	require.Equal(t, "project_id=1", got.query)
}

func TestUsersAPI_Create(t *testing.T) {
	var got captured
	api := apiclient.NewUsersAPI(recordingClient(t, `{"id": 12, "full_name": "Xavier"}`, &got))

	rec, err := api.Create(context.Background(), map[string]any{"full_name": "Xavier", "password": "pw"})
	require.NoError(t, err)
	require.Equal(t, "Xavier", rec.FullName)
	require.Equal(t, "POST /api/users", got.method+" "+got.path)
	require.Equal(t, "pw", got.body["password"])
}

func TestAuthAPI(t *testing.T) {
	var got captured
	api := apiclient.NewAuthAPI(recordingClient(t, `{"token": "jwt", "user": {"id": 42, "email": "a@b.c", "role": "staff"}}`, &got))

	sess, err := api.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, "jwt", sess.Token)
	require.Equal(t, "42", string(sess.User.ID))
	require.Equal(t, "POST /api/login", got.method+" "+got.path)
	require.Equal(t, map[string]any{"email": "a@b.c", "password": "pw"}, got.body)

	_, err = api.Register(context.Background(), map[string]any{"email": "a@b.c"})
	require.NoError(t, err)
	require.Equal(t, "/api/register", got.path)
}
