package auth

import (
	"github.com/rpggio/pmdash/internal/domain/access"
	"github.com/rpggio/pmdash/internal/wire"
)

// User is the authenticated principal. It is stored in the cache as JSON.
type User struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Username   string      `json:"username"`
	Role       access.Role `json:"role"`
	Department string      `json:"department,omitempty"`
	Avatar     string      `json:"avatar,omitempty"`
}

// UserRecord is the user object of a login or register response.
type UserRecord struct {
	ID         wire.String `json:"id"`
	Email      string      `json:"email"`
	Username   string      `json:"username"`
	Role       string      `json:"role"`
	Department string      `json:"department"`
	Avatar     string      `json:"avatar"`
}

// User maps the record to memory. Unknown roles become viewer.
func (r UserRecord) User() User {
	role := access.Role(r.Role)
	if !role.Valid() {
		role = access.RoleViewer
	}
	return User{
		ID:         string(r.ID),
		Email:      r.Email,
		Username:   r.Username,
		Role:       role,
		Department: r.Department,
		Avatar:     r.Avatar,
	}
}

// Session is a login or register response.
type Session struct {
	Token string     `json:"token"`
	User  UserRecord `json:"user"`
}

// DefaultDepartment is assigned to self-registered accounts.
const DefaultDepartment = "DOST Surigao del Norte"

// RegistrationPayload builds the register request body.
func RegistrationPayload(username, email, password string) map[string]any {
	return map[string]any{
		"email":      email,
		"username":   username,
		"password":   password,
		"full_name":  username,
		"department": DefaultDepartment,
		"position":   "Staff",
	}
}
