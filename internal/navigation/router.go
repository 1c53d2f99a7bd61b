package navigation

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/rpggio/pmdash/internal/store"
)

// maxRedirects bounds redirect chains.
const maxRedirects = 4

// Location is where the user is.
type Location struct {
	Name     string            `json:"name"`
	Path     string            `json:"path"`
	FullPath string            `json:"fullPath"`
	Params   map[string]string `json:"params,omitempty"`
	Query    url.Values        `json:"query,omitempty"`
}

// Router tracks the current location and applies the guard on every move.
// It is the API client's navigator.
type Router struct {
	guard  *Guard
	logger *slog.Logger

	mu      sync.RWMutex
	current Location
}

// NewRouter creates a router positioned at the login screen.
func NewRouter(guard *Guard, logger *slog.Logger) *Router {
	login, _ := Lookup(RouteLogin)
	return &Router{
		guard:   guard,
		logger:  store.Logger(logger),
		current: Location{Name: login.Name, Path: login.Path, FullPath: login.Path},
	}
}

// Current returns the current location.
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate moves to target, following guard redirects. It returns where the
// user ended up.
func (r *Router) Navigate(target string) (Location, error) {
	u, err := url.Parse(target)
	if err != nil {
		return Location{}, fmt.Errorf("parsing %q: %w", target, err)
	}

	loc := resolve(u.Path, u.Query())
	for range maxRedirects {
		route, _ := Match(loc.Path)
		d := r.guard.Check(route, loc.FullPath)
		if d.Allowed() {
			r.mu.Lock()
			r.current = loc
			r.mu.Unlock()
			return loc, nil
		}
		next, ok := Lookup(d.Redirect)
		if !ok {
			return Location{}, fmt.Errorf("unknown redirect route %q", d.Redirect)
		}
		r.logger.Debug("navigation redirected", "from", loc.FullPath, "to", next.Name)
		loc = resolve(next.Path, d.Query)
	}
	return Location{}, fmt.Errorf("too many redirects navigating to %q", target)
}

func resolve(path string, query url.Values) Location {
	route, params := Match(path)
	p := clean(path)
	if route.Name != RouteNotFound {
		p = route.Build(params)
	}
	full := p
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return Location{Name: route.Name, Path: p, FullPath: full, Params: params, Query: query}
}

// OnAuthScreen reports whether the current location is under /auth.
func (r *Router) OnAuthScreen() bool {
	p := r.Current().Path
	return p == AuthPrefix || strings.HasPrefix(p, AuthPrefix+"/")
}

// RedirectToLogin moves to the login screen.
func (r *Router) RedirectToLogin() {
	if _, err := r.Navigate("/auth/login"); err != nil {
		r.logger.Warn("redirecting to login", "error", err)
	}
}
