package navigation

import (
	"net/url"
	"slices"

	"github.com/rpggio/pmdash/internal/domain/access"
)

// AuthState is what the guard needs from the auth store.
type AuthState interface {
	IsAuthenticated() bool
	Role() access.Role
}

// Decision is the guard's verdict. A zero Redirect means allow.
type Decision struct {
	Redirect string     `json:"redirect,omitempty"`
	Query    url.Values `json:"query,omitempty"`
}

// Allowed reports whether navigation may proceed.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Guard gates routes on authentication and role.
type Guard struct {
	auth AuthState
}

// NewGuard creates a guard over auth.
func NewGuard(auth AuthState) *Guard { return &Guard{auth: auth} }

// Check decides whether r may be entered. fullPath is preserved in the
// login redirect so the user lands where they meant to go.
func (g *Guard) Check(r Route, fullPath string) Decision {
	authed := g.auth != nil && g.auth.IsAuthenticated()
	if r.RequiresAuth && !authed {
		return Decision{Redirect: RouteLogin, Query: url.Values{"redirect": {fullPath}}}
	}
	if r.RequiresGuest && authed {
		return Decision{Redirect: RouteDashboard}
	}
	if len(r.Roles) > 0 {
		var role access.Role
		if g.auth != nil {
			role = g.auth.Role()
		}
		if role == "" || !slices.Contains(r.Roles, role) {
			return Decision{Redirect: RouteDashboard}
		}
	}
	return Decision{}
}
