package user

import "github.com/rpggio/pmdash/internal/domain/access"

// Status is an account's standing
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Statuses lists every status in enumeration order.
var Statuses = []Status{StatusActive, StatusInactive, StatusPending}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// Profile is a directory entry. It is distinct from the authenticated user.
type Profile struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Username   string      `json:"username"`
	FullName   string      `json:"fullName"`
	Role       access.Role `json:"role"`
	Department string      `json:"department"`
	Position   string      `json:"position"`
	Status     Status      `json:"status"`
	Avatar     string      `json:"avatar,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	JoinedAt   string      `json:"joinedAt"`
	LastActive string      `json:"lastActive"`
}

// NewUser is the input of CreateUser. Password goes to the remote only.
type NewUser struct {
	Email      string      `json:"email"`
	Username   string      `json:"username"`
	FullName   string      `json:"fullName"`
	Role       access.Role `json:"role"`
	Department string      `json:"department"`
	Position   string      `json:"position"`
	Status     Status      `json:"status"`
	Avatar     string      `json:"avatar,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	Password   string      `json:"password"`
}

// Update names the fields to change. Nil fields are left alone.
type Update struct {
	Email      *string      `json:"email,omitempty"`
	Username   *string      `json:"username,omitempty"`
	FullName   *string      `json:"fullName,omitempty"`
	Role       *access.Role `json:"role,omitempty"`
	Department *string      `json:"department,omitempty"`
	Position   *string      `json:"position,omitempty"`
	Status     *Status      `json:"status,omitempty"`
	Avatar     *string      `json:"avatar,omitempty"`
	Phone      *string      `json:"phone,omitempty"`
}
