// Package navigation holds the dashboard's route table and the guard that
// gates it on the auth store's state.
package navigation

import (
	"strings"

	"github.com/rpggio/pmdash/internal/domain/access"
)

// Route names.
const (
	RouteLogin          = "login"
	RouteDashboard      = "dashboard"
	RouteProjects       = "projects"
	RouteProjectCreate  = "projects-create"
	RouteProjectDetails = "project-details"
	RouteProjectEdit    = "project-edit"
	RouteTasks          = "tasks"
	RouteDocuments      = "documents"
	RouteUsers          = "users"
	RouteSettings       = "settings"
	RouteReports        = "reports"
	RouteNotFound       = "not-found"
)

// AuthPrefix is the path prefix of the auth screens.
const AuthPrefix = "/auth"

// Route is one screen of the dashboard.
type Route struct {
	Name          string        `json:"name"`
	Path          string        `json:"path"`
	RequiresAuth  bool          `json:"requiresAuth,omitempty"`
	RequiresGuest bool          `json:"requiresGuest,omitempty"`
	Roles         []access.Role `json:"requiresRole,omitempty"`
}

var managers = []access.Role{access.RoleAdmin, access.RoleProjectManager}

// Routes is the route table in match order. Static segments come before
// parameters that would shadow them.
var Routes = []Route{
	{Name: RouteLogin, Path: "/auth/login", RequiresGuest: true},
	{Name: RouteDashboard, Path: "/dashboard", RequiresAuth: true},
	{Name: RouteProjects, Path: "/projects", RequiresAuth: true},
	{Name: RouteProjectCreate, Path: "/projects/create", RequiresAuth: true, Roles: managers},
	{Name: RouteProjectDetails, Path: "/projects/:id", RequiresAuth: true},
	{Name: RouteProjectEdit, Path: "/projects/:id/edit", RequiresAuth: true, Roles: managers},
	{Name: RouteTasks, Path: "/tasks", RequiresAuth: true},
	{Name: RouteDocuments, Path: "/documents", RequiresAuth: true},
	{Name: RouteUsers, Path: "/users", RequiresAuth: true, Roles: []access.Role{access.RoleAdmin}},
	{Name: RouteSettings, Path: "/settings", RequiresAuth: true},
	{Name: RouteReports, Path: "/reports", RequiresAuth: true},
}

// aliases redirect bare layout paths to their default child.
var aliases = map[string]string{
	"/":     "/dashboard",
	"/auth": "/auth/login",
}

// NotFound is the catch-all route.
var NotFound = Route{Name: RouteNotFound, Path: "/*"}

// Lookup returns the route named name.
func Lookup(name string) (Route, bool) {
	for _, r := range Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// Match resolves path to a route and its parameters. Unknown paths resolve
// to NotFound.
func Match(path string) (Route, map[string]string) {
	path = clean(path)
	if target, ok := aliases[path]; ok {
		path = target
	}
	segs := split(path)
	for _, r := range Routes {
		if params, ok := matchSegments(split(r.Path), segs); ok {
			return r, params
		}
	}
	return NotFound, map[string]string{}
}

// Build fills a route's parameters.
func (r Route) Build(params map[string]string) string {
	segs := split(r.Path)
	for i, s := range segs {
		if name, ok := strings.CutPrefix(s, ":"); ok {
			segs[i] = params[name]
		}
	}
	return "/" + strings.Join(segs, "/")
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if segs[i] == "" {
				return nil, false
			}
			params[name] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func clean(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
