package mcp

import (
	"time"

	"github.com/rpggio/pmdash/internal/domain/auth"
	"github.com/rpggio/pmdash/internal/domain/project"
	"github.com/rpggio/pmdash/internal/domain/task"
)

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type IDParams struct {
	ID string `json:"id"`
}

type ProjectFilterParams struct {
	ProjectID string `json:"project_id,omitempty"`
}

type CreateProjectParams struct {
	Project project.Project `json:"project"`
}

type UpdateProjectParams struct {
	ID      string         `json:"id"`
	Changes project.Update `json:"changes"`
}

type CreateTaskParams struct {
	Task task.Task `json:"task"`
}

type UpdateTaskStatusParams struct {
	ID     string      `json:"id"`
	Status task.Status `json:"status"`
}

type SetThemeParams struct {
	Theme string `json:"theme"`
}

type GetReportParams struct {
	Type      string `json:"type"`
	DateRange string `json:"date_range,omitempty"`
}

type GetRecentActivityParams struct {
	Store  string `json:"store,omitempty"`
	Action string `json:"action,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type NavigateParams struct {
	Path string `json:"path"`
}

// WhoAmIResponse describes the session's identity.
type WhoAmIResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user,omitempty"`
	TokenExpiry   *time.Time `json:"token_expiry,omitempty"`
	Location      string     `json:"location"`
}

// LogoutResponse is returned by logout.
type LogoutResponse struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}
