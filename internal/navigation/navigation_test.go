package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/pmdash/internal/apiclient"
	"github.com/rpggio/pmdash/internal/domain/access"
	"github.com/rpggio/pmdash/internal/navigation"
)

type authState struct {
	authed bool
	role   access.Role
}

func (a *authState) IsAuthenticated() bool { return a.authed }
func (a *authState) Role() access.Role     { return a.role }

var _ apiclient.Navigator = (*navigation.Router)(nil)

func TestMatch(t *testing.T) {
	r, params := navigation.Match("/projects/42/edit")
	require.Equal(t, navigation.RouteProjectEdit, r.Name)
	require.Equal(t, "42", params["id"])

	r, _ = navigation.Match("/projects/create")
	require.Equal(t, navigation.RouteProjectCreate, r.Name)

	r, params = navigation.Match("/projects/create/")
	require.Equal(t, navigation.RouteProjectCreate, r.Name)
	require.Empty(t, params)

	r, _ = navigation.Match("/")
	require.Equal(t, navigation.RouteDashboard, r.Name)

	r, _ = navigation.Match("/auth")
	require.Equal(t, navigation.RouteLogin, r.Name)

	r, _ = navigation.Match("/nowhere/at/all")
	require.Equal(t, navigation.RouteNotFound, r.Name)
}

func TestGuard(t *testing.T) {
	projects, _ := navigation.Lookup(navigation.RouteProjects)
	users, _ := navigation.Lookup(navigation.RouteUsers)
	create, _ := navigation.Lookup(navigation.RouteProjectCreate)
	login, _ := navigation.Lookup(navigation.RouteLogin)

	anon := navigation.NewGuard(&authState{})
	d := anon.Check(projects, "/projects?status=active")
	require.Equal(t, navigation.RouteLogin, d.Redirect)
	require.Equal(t, "/projects?status=active", d.Query.Get("redirect"))
	require.True(t, anon.Check(login, "/auth/login").Allowed())

	staff := navigation.NewGuard(&authState{authed: true, role: access.RoleStaff})
	require.True(t, staff.Check(projects, "/projects").Allowed())
	require.Equal(t, navigation.RouteDashboard, staff.Check(users, "/users").Redirect)
	require.Equal(t, navigation.RouteDashboard, staff.Check(create, "/projects/create").Redirect)
	require.Equal(t, navigation.RouteDashboard, staff.Check(login, "/auth/login").Redirect)

	pm := navigation.NewGuard(&authState{authed: true, role: access.RoleProjectManager})
	require.True(t, pm.Check(create, "/projects/create").Allowed())
	require.False(t, pm.Check(users, "/users").Allowed())

	admin := navigation.NewGuard(&authState{authed: true, role: access.RoleAdmin})
	require.True(t, admin.Check(users, "/users").Allowed())
}

func TestRouter_RedirectPreservesDestination(t *testing.T) {
	state := &authState{}
	r := navigation.NewRouter(navigation.NewGuard(state), nil)
	require.True(t, r.OnAuthScreen())

	loc, err := r.Navigate("/projects/7")
	require.NoError(t, err)
	require.Equal(t, navigation.RouteLogin, loc.Name)
	require.Equal(t, "/projects/7", loc.Query.Get("redirect"))
	require.True(t, r.OnAuthScreen())

	state.authed, state.role = true, access.RoleViewer
	loc, err = r.Navigate(loc.Query.Get("redirect"))
	require.NoError(t, err)
	require.Equal(t, navigation.RouteProjectDetails, loc.Name)
	require.Equal(t, "7", loc.Params["id"])
	require.False(t, r.OnAuthScreen())

	loc, err = r.Navigate("/projects/7/edit")
	require.NoError(t, err)
	require.Equal(t, navigation.RouteDashboard, loc.Name)
	require.Equal(t, loc, r.Current())
}

func TestRouter_RedirectToLogin(t *testing.T) {
	state := &authState{authed: true, role: access.RoleAdmin}
	r := navigation.NewRouter(navigation.NewGuard(state), nil)
	_, err := r.Navigate("/reports")
	require.NoError(t, err)

	state.authed = false
	r.RedirectToLogin()
	require.Equal(t, navigation.RouteLogin, r.Current().Name)
}

func TestRouter_NotFoundIsAllowed(t *testing.T) {
	r := navigation.NewRouter(navigation.NewGuard(&authState{}), nil)
	loc, err := r.Navigate("/missing/page")
	require.NoError(t, err)
	require.Equal(t, navigation.RouteNotFound, loc.Name)
	require.Equal(t, "/missing/page", loc.Path)
}
