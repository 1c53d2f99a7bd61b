// Package access defines the role enumeration shared by authenticated users,
// user profiles and route rules.
package access

// Role is a user's access level.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleStaff          Role = "staff"
	RoleViewer         Role = "viewer"
)

// Roles lists every role in enumeration order.
var Roles = []Role{RoleAdmin, RoleProjectManager, RoleStaff, RoleViewer}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// IsAdmin reports whether r is admin.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// CanManageProjects reports whether r is admin or project manager.
func (r Role) CanManageProjects() bool {
	return r == RoleAdmin || r == RoleProjectManager
}

// In reports whether r is one of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
