package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/pmdash/internal/domain/access"
	"github.com/rpggio/pmdash/internal/domain/activity"
	"github.com/rpggio/pmdash/internal/domain/auth"
	"github.com/rpggio/pmdash/internal/domain/document"
	"github.com/rpggio/pmdash/internal/domain/project"
	"github.com/rpggio/pmdash/internal/domain/report"
	"github.com/rpggio/pmdash/internal/domain/settings"
	"github.com/rpggio/pmdash/internal/domain/task"
	"github.com/rpggio/pmdash/internal/domain/user"
	"github.com/rpggio/pmdash/internal/navigation"
	"github.com/rpggio/pmdash/internal/repository"
	"github.com/rpggio/pmdash/internal/store"
)

// AuthService defines auth operations needed by MCP.
type AuthService interface {
	Login(ctx context.Context, email, password string) store.Result[auth.User]
	Register(ctx context.Context, username, email, password string) store.Result[auth.User]
	Logout(ctx context.Context)
	User() *auth.User
	IsAuthenticated() bool
	Role() access.Role
	TokenExpiry() (time.Time, bool)
}

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	FetchProjects(ctx context.Context) store.Result[[]project.Project]
	FetchProjectByID(ctx context.Context, id string) store.Result[project.Project]
	CreateProject(ctx context.Context, p project.Project) store.Result[project.Project]
	UpdateProject(ctx context.Context, id string, u project.Update) store.Result[project.Project]
	DeleteProject(ctx context.Context, id string) store.Result[struct{}]
}

// TaskService defines task operations needed by MCP.
type TaskService interface {
	FetchTasks(ctx context.Context, projectID string) store.Result[[]task.Task]
	CreateTask(ctx context.Context, t task.Task) store.Result[task.Task]
	UpdateTaskStatus(ctx context.Context, id string, status task.Status) store.Result[task.Task]
	DeleteTask(ctx context.Context, id string) store.Result[struct{}]
}

// UserService defines user-profile operations needed by MCP.
type UserService interface {
	FetchUsers(ctx context.Context) store.Result[[]user.Profile]
}

// DocumentService defines document operations needed by MCP.
type DocumentService interface {
	FetchDocuments(ctx context.Context, projectID string) store.Result[[]document.Document]
	DownloadDocument(ctx context.Context, id string) store.Result[document.Link]
}

// SettingsService defines settings operations needed by MCP.
type SettingsService interface {
	Snapshot() settings.Snapshot
	UpdateTheme(ctx context.Context, t settings.Theme) store.Result[settings.Snapshot]
}

// ReportService defines report operations needed by MCP.
type ReportService interface {
	SetDateRange(r report.DateRange) error
	GenerateReport(ctx context.Context, t report.Type) store.Result[report.Report]
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Navigator tracks the session's location.
type Navigator interface {
	Current() navigation.Location
	Navigate(target string) (navigation.Location, error)
}

// Gate decides whether the session may enter a route.
type Gate interface {
	Check(r navigation.Route, fullPath string) navigation.Decision
}

// Services contains everything one dashboard session exposes over MCP.
type Services struct {
	Auth      AuthService
	Projects  ProjectService
	Tasks     TaskService
	Users     UserService
	Documents DocumentService
	Settings  SettingsService
	Reports   ReportService
	Activity  ActivityService
	Router    Navigator
	Gate      Gate
}

// toolRoutes names the screen each gated tool stands in for. Tools absent
// from the map are open to anonymous sessions.
var toolRoutes = map[string]string{
	"list_projects":       navigation.RouteProjects,
	"get_project":         navigation.RouteProjectDetails,
	"create_project":      navigation.RouteProjectCreate,
	"update_project":      navigation.RouteProjectEdit,
	"delete_project":      navigation.RouteProjectEdit,
	"list_tasks":          navigation.RouteTasks,
	"create_task":         navigation.RouteTasks,
	"update_task_status":  navigation.RouteTasks,
	"delete_task":         navigation.RouteTasks,
	"list_users":          navigation.RouteUsers,
	"list_documents":      navigation.RouteDocuments,
	"download_document":   navigation.RouteDocuments,
	"get_report":          navigation.RouteReports,
	"get_recent_activity": navigation.RouteDashboard,
}

// Handler dispatches MCP tool calls to the session's stores.
type Handler struct {
	svc Services
}

// NewHandler creates a new MCP handler.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// Handle runs one tool. Store actions come back as their store.Result, so a
// failed action is a value, not an error; errors are reserved for bad input
// and gated tools.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	if err := h.authorize(method); err != nil {
		return nil, err
	}

	switch method {
	case "login":
		var req LoginParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		res := h.svc.Auth.Login(ctx, req.Email, req.Password)
		if res.Success {
			h.enterAfterLogin()
		}
		return res, nil
	case "register":
		var req RegisterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		res := h.svc.Auth.Register(ctx, req.Username, req.Email, req.Password)
		if res.Success {
			h.enterAfterLogin()
		}
		return res, nil
	case "logout":
		h.svc.Auth.Logout(ctx)
		loc := h.navigate("/auth/login")
		return store.OK(LogoutResponse{Status: "logged_out", Location: loc}, store.SourceLocal), nil
	case "whoami":
		resp := WhoAmIResponse{
			Authenticated: h.svc.Auth.IsAuthenticated(),
			User:          h.svc.Auth.User(),
		}
		if exp, ok := h.svc.Auth.TokenExpiry(); ok {
			resp.TokenExpiry = &exp
		}
		if h.svc.Router != nil {
			resp.Location = h.svc.Router.Current().FullPath
		}
		return resp, nil
	case "list_projects":
		return h.svc.Projects.FetchProjects(ctx), nil
	case "get_project":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := requireID(req.ID); err != nil {
			return nil, err
		}
		return h.svc.Projects.FetchProjectByID(ctx, req.ID), nil
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.CreateProject(ctx, req.Project), nil
	case "update_project":
		var req UpdateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := requireID(req.ID); err != nil {
			return nil, err
		}
		return h.svc.Projects.UpdateProject(ctx, req.ID, req.Changes), nil
	case "delete_project":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := requireID(req.ID); err != nil {
			return nil, err
		}
		return h.svc.Projects.DeleteProject(ctx, req.ID), nil
	case "list_tasks":
		var req ProjectFilterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Tasks.FetchTasks(ctx, req.ProjectID), nil
	case "create_task":
		var req CreateTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Tasks.CreateTask(ctx, req.Task), nil
	case "update_task_status":
		var req UpdateTaskStatusParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := requireID(req.ID); err != nil {
			return nil, err
		}
		if !req.Status.Valid() {
			return nil, fmt.Errorf("status %q: %w", req.Status, repository.ErrInvalidInput)
		}
		return h.svc.Tasks.UpdateTaskStatus(ctx, req.ID, req.Status), nil
	case "delete_task":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := requireID(req.ID); err != nil {
			return nil, err
		}
		return h.svc.Tasks.DeleteTask(ctx, req.ID), nil
	case "list_users":
		return h.svc.Users.FetchUsers(ctx), nil
	case "list_documents":
		var req ProjectFilterParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Documents.FetchDocuments(ctx, req.ProjectID), nil
	case "download_document":
		var req IDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := requireID(req.ID); err != nil {
			return nil, err
		}
		return h.svc.Documents.DownloadDocument(ctx, req.ID), nil
	case "get_settings":
		return h.svc.Settings.Snapshot(), nil
	case "set_theme":
		var req SetThemeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Settings.UpdateTheme(ctx, settings.Theme(req.Theme)), nil
	case "get_report":
		var req GetReportParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.DateRange != "" {
			if err := h.svc.Reports.SetDateRange(report.DateRange(req.DateRange)); err != nil {
				return nil, err
			}
		}
		return h.svc.Reports.GenerateReport(ctx, report.Type(req.Type)), nil
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if h.svc.Activity == nil {
			return store.Fail[[]activity.ActivityEntry](repository.ErrUnavailable, "activity log is disabled"), nil
		}
		entries, err := h.svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{
			Store:  req.Store,
			Action: req.Action,
			Limit:  req.Limit,
		})
		if err != nil {
			return store.Fail[[]activity.ActivityEntry](err, "failed to fetch activity"), nil
		}
		return store.OK(entries, store.SourceLocal), nil
	case "navigate":
		var req NavigateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		loc, err := h.svc.Router.Navigate(req.Path)
		if err != nil {
			return nil, fmt.Errorf("navigating: %w: %w", repository.ErrInvalidInput, err)
		}
		return loc, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, method)
	}
}

// authorize applies the navigation guard of the tool's screen.
func (h *Handler) authorize(method string) error {
	name, ok := toolRoutes[method]
	if !ok || h.svc.Gate == nil {
		return nil
	}
	route, ok := navigation.Lookup(name)
	if !ok {
		return nil
	}
	d := h.svc.Gate.Check(route, route.Path)
	switch {
	case d.Allowed():
		return nil
	case d.Redirect == navigation.RouteLogin:
		return ErrLoginRequired
	default:
		return fmt.Errorf("%w: role %q may not call %s", ErrForbidden, h.svc.Auth.Role(), method)
	}
}

// enterAfterLogin lands on the page a guard redirect preserved, or the
// dashboard.
func (h *Handler) enterAfterLogin() {
	if h.svc.Router == nil {
		return
	}
	target := h.svc.Router.Current().Query.Get("redirect")
	if target == "" {
		target = "/dashboard"
	}
	h.navigate(target)
}

func (h *Handler) navigate(target string) string {
	if h.svc.Router == nil {
		return ""
	}
	loc, err := h.svc.Router.Navigate(target)
	if err != nil {
		return h.svc.Router.Current().FullPath
	}
	return loc.FullPath
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("decoding arguments: %w: %w", repository.ErrInvalidInput, err)
	}
	return nil
}

func requireID(id string) error {
	if id == "" {
		return fmt.Errorf("id is required: %w", repository.ErrInvalidInput)
	}
	return nil
}
