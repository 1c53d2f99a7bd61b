package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rpggio/pmdash/internal/domain/auth"
	"github.com/rpggio/pmdash/internal/domain/project"
	"github.com/rpggio/pmdash/internal/domain/task"
	"github.com/rpggio/pmdash/internal/domain/user"
)

// Resource is a REST collection at path whose items decode as T.
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource binds a collection path.
func NewResource[T any](c *Client, path string) Resource[T] {
	return Resource[T]{c: c, path: path}
}

func (r Resource[T]) item(id string) string { return r.path + "/" + url.PathEscape(id) }

func (r Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var out []T
	if err := r.c.Do(ctx, http.MethodGet, r.path, query, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	err := r.c.Do(ctx, http.MethodGet, r.item(id), nil, nil, &out)
	return out, err
}

func (r Resource[T]) Create(ctx context.Context, payload map[string]any) (T, error) {
	var out T
	err := r.c.Do(ctx, http.MethodPost, r.path, nil, payload, &out)
	return out, err
}

func (r Resource[T]) Update(ctx context.Context, id string, payload map[string]any) (T, error) {
	var out T
	err := r.c.Do(ctx, http.MethodPut, r.item(id), nil, payload, &out)
	return out, err
}

func (r Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

// ProjectsAPI is the /projects resource.
type ProjectsAPI = Resource[project.Record]

// UsersAPI is the /users resource.
type UsersAPI = Resource[user.Record]

// NewProjectsAPI binds /projects.
func NewProjectsAPI(c *Client) ProjectsAPI { return NewResource[project.Record](c, "/projects") }

// NewUsersAPI binds /users.
func NewUsersAPI(c *Client) UsersAPI { return NewResource[user.Record](c, "/users") }

// TasksAPI is the /tasks resource plus its status patch.
type TasksAPI struct {
	Resource[task.Record]
}

// NewTasksAPI binds /tasks.
func NewTasksAPI(c *Client) TasksAPI {
	return TasksAPI{Resource: NewResource[task.Record](c, "/tasks")}
}

// UpdateStatus patches /tasks/:id/status.
func (t TasksAPI) UpdateStatus(ctx context.Context, id, status string) (task.Record, error) {
	var out task.Record
	err := t.c.Do(ctx, http.MethodPatch, t.item(id)+"/status", nil, map[string]any{"status": status}, &out)
	return out, err
}

// AuthAPI is the login and register endpoints.
type AuthAPI struct {
	c *Client
}

// NewAuthAPI binds /login and /register.
func NewAuthAPI(c *Client) AuthAPI { return AuthAPI{c: c} }

func (a AuthAPI) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var out auth.Session
	err := a.c.Do(ctx, http.MethodPost, "/login", nil, map[string]any{"email": email, "password": password}, &out)
	return out, err
}

func (a AuthAPI) Register(ctx context.Context, payload map[string]any) (auth.Session, error) {
	var out auth.Session
	err := a.c.Do(ctx, http.MethodPost, "/register", nil, payload, &out)
	return out, err
}

var (
	_ auth.Remote    = AuthAPI{}
	_ project.Remote = ProjectsAPI{}
	_ task.Remote    = TasksAPI{}
	_ user.Remote    = UsersAPI{}
)
