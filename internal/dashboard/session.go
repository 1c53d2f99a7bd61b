// Package dashboard assembles one dashboard session: the API client, every
// store, and the navigation router that the client redirects through.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rpggio/pmdash/internal/apiclient"
	"github.com/rpggio/pmdash/internal/blob"
	"github.com/rpggio/pmdash/internal/config"
	"github.com/rpggio/pmdash/internal/domain/activity"
	"github.com/rpggio/pmdash/internal/domain/auth"
	"github.com/rpggio/pmdash/internal/domain/document"
	"github.com/rpggio/pmdash/internal/domain/project"
	"github.com/rpggio/pmdash/internal/domain/report"
	"github.com/rpggio/pmdash/internal/domain/settings"
	"github.com/rpggio/pmdash/internal/domain/task"
	"github.com/rpggio/pmdash/internal/domain/user"
	"github.com/rpggio/pmdash/internal/kvcache"
	"github.com/rpggio/pmdash/internal/mcp"
	"github.com/rpggio/pmdash/internal/navigation"
	"github.com/rpggio/pmdash/internal/store"
)

// Deps are the collaborators a session is built from.
type Deps struct {
	Config config.Config
	// Cache persists the auth session and settings. Nil means memory only.
	Cache kvcache.Cache
	// Activity records every store action when set.
	Activity *activity.Service
	// Blobs stores uploaded document content when set.
	Blobs blob.Store
	// Observers also receive every store action.
	Observers []store.Observer
	Logger    *slog.Logger

	HTTPClient *http.Client
	Scheme     settings.ColorScheme
	Presenter  settings.Presenter

	// SkipDelays drops the artificial latency of fallback paths.
	SkipDelays bool
}

// Session is one user's dashboard state.
type Session struct {
	Client    *apiclient.Client
	Auth      *auth.Store
	Projects  *project.Store
	Tasks     *task.Store
	Users     *user.Store
	Documents *document.Store
	Settings  *settings.Store
	Reports   *report.Aggregator
	Activity  *activity.Service
	Guard     *navigation.Guard
	Router    *navigation.Router
}

// New wires a session. With API.Offline set no client is built and every
// store runs on its local data path.
func New(d Deps) (*Session, error) {
	logger := store.Logger(d.Logger)
	cache := d.Cache
	if cache == nil {
		cache = kvcache.NewMemory()
	}

	var observers []store.Observer
	if d.Activity != nil {
		observers = append(observers, d.Activity)
	}
	observers = append(observers, d.Observers...)
	obs := store.Observers(observers...)

	var (
		client        *apiclient.Client
		authRemote    auth.Remote
		projectRemote project.Remote
		taskRemote    task.Remote
		userRemote    user.Remote
	)
	if !d.Config.API.Offline {
		opts := []apiclient.Option{apiclient.WithDefaultTimeout(d.Config.API.Timeout)}
		if d.HTTPClient != nil {
			opts = append(opts, apiclient.WithHTTPClient(d.HTTPClient))
		}
		c, err := apiclient.New(d.Config.API.BaseURL, cache, logger, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating api client: %w", err)
		}
		client = c
		authRemote = apiclient.NewAuthAPI(c.WithTimeout(d.Config.API.AuthTimeout))
		projectRemote = apiclient.NewProjectsAPI(c)
		taskRemote = apiclient.NewTasksAPI(c)
		userRemote = apiclient.NewUsersAPI(c)
	}

	authOpts := []auth.Option{auth.WithObserver(obs)}
	if !d.Config.Auth.DemoAccounts {
		authOpts = append(authOpts, auth.WithoutDemoAccounts())
	}
	s := &Session{
		Client:   client,
		Auth:     auth.NewStore(authRemote, cache, logger, authOpts...),
		Projects: project.NewStore(projectRemote, logger, project.WithObserver(obs)),
		Activity: d.Activity,
	}

	taskOpts := []task.Option{task.WithObserver(obs)}
	userOpts := []user.Option{user.WithObserver(obs)}
	docOpts := []document.Option{document.WithObserver(obs)}
	reportOpts := []report.Option{report.WithObserver(obs)}
	if d.SkipDelays {
		taskOpts = append(taskOpts, task.WithFallbackDelay(0))
		userOpts = append(userOpts, user.WithFallbackDelay(0))
		docOpts = append(docOpts, document.WithDelay(0))
		reportOpts = append(reportOpts, report.WithDelay(0))
	}
	s.Tasks = task.NewStore(taskRemote, logger, taskOpts...)
	s.Users = user.NewStore(userRemote, logger, userOpts...)
	s.Documents = document.NewStore(d.Blobs, logger, docOpts...)
	s.Settings = settings.NewStore(cache, d.Scheme, d.Presenter, logger, settings.WithObserver(obs))
	s.Reports = report.NewAggregator(s.Projects, s.Tasks, s.Users, logger, reportOpts...)

	s.Guard = navigation.NewGuard(s.Auth)
	s.Router = navigation.NewRouter(s.Guard, logger)
	if client != nil {
		client.SetNavigator(s.Router)
		client.OnUnauthorized(s.Auth.Logout)
	}
	return s, nil
}

// Start restores persisted settings and any cached login. It reports whether
// the session is authenticated afterwards and, if so, moves to the dashboard.
func (s *Session) Start(ctx context.Context) bool {
	s.Settings.LoadSettings(ctx)
	if !s.Auth.InitAuth(ctx) {
		return false
	}
	if _, err := s.Router.Navigate("/dashboard"); err != nil {
		return false
	}
	return true
}

// Services exposes the session over MCP.
func (s *Session) Services() mcp.Services {
	svc := mcp.Services{
		Auth:      s.Auth,
		Projects:  s.Projects,
		Tasks:     s.Tasks,
		Users:     s.Users,
		Documents: s.Documents,
		Settings:  s.Settings,
		Reports:   s.Reports,
		Router:    s.Router,
		Gate:      s.Guard,
	}
	if s.Activity != nil {
		svc.Activity = s.Activity
	}
	return svc
}
