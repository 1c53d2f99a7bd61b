package user

import (
	"github.com/rpggio/pmdash/internal/domain/access"
	"github.com/rpggio/pmdash/internal/wire"
)

// Record is a user as the remote API sends it.
type Record struct {
	ID         wire.String `json:"id"`
	Email      string      `json:"email"`
	Username   string      `json:"username"`
	FullName   string      `json:"full_name"`
	Role       string      `json:"role"`
	Department string      `json:"department"`
	Position   string      `json:"position"`
	Status     string      `json:"status"`
	Avatar     string      `json:"avatar"`
	Phone      string      `json:"phone"`
	JoinedAt   string      `json:"joined_at"`
	LastActive string      `json:"last_active"`
}

// FromRecord maps a wire record to memory. Unknown roles become viewer and
// unknown statuses become active.
func FromRecord(r Record) Profile {
	return Profile{
		ID:         string(r.ID),
		Email:      r.Email,
		Username:   r.Username,
		FullName:   r.FullName,
		Role:       normalizeRole(access.Role(r.Role)),
		Department: r.Department,
		Position:   r.Position,
		Status:     normalizeStatus(Status(r.Status)),
		Avatar:     r.Avatar,
		Phone:      r.Phone,
		JoinedAt:   r.JoinedAt,
		LastActive: r.LastActive,
	}
}

func normalizeRole(r access.Role) access.Role {
	if r.Valid() {
		return r
	}
	return access.RoleViewer
}

func normalizeStatus(s Status) Status {
	if s.Valid() {
		return s
	}
	return StatusActive
}

// Payload maps p to the wire form, without server-owned fields.
func (p Profile) Payload() map[string]any {
	return map[string]any{
		"email":      p.Email,
		"username":   p.Username,
		"full_name":  p.FullName,
		"role":       string(p.Role),
		"department": p.Department,
		"position":   p.Position,
		"status":     string(p.Status),
		"avatar":     p.Avatar,
		"phone":      p.Phone,
	}
}

// Profile returns the memory form of n without the password.
func (n NewUser) Profile() Profile {
	return Profile{
		Email:      n.Email,
		Username:   n.Username,
		FullName:   n.FullName,
		Role:       normalizeRole(n.Role),
		Department: n.Department,
		Position:   n.Position,
		Status:     normalizeStatus(n.Status),
		Avatar:     n.Avatar,
		Phone:      n.Phone,
	}
}

// Payload maps n to the create payload, password included.
func (n NewUser) Payload() map[string]any {
	out := n.Profile().Payload()
	out["password"] = n.Password
	return out
}

// Payload maps u to a partial payload holding exactly the fields u sets.
func (u Update) Payload() map[string]any {
	out := map[string]any{}
	if u.Email != nil {
		out["email"] = *u.Email
	}
	if u.Username != nil {
		out["username"] = *u.Username
	}
	if u.FullName != nil {
		out["full_name"] = *u.FullName
	}
	if u.Role != nil {
		out["role"] = string(*u.Role)
	}
	if u.Department != nil {
		out["department"] = *u.Department
	}
	if u.Position != nil {
		out["position"] = *u.Position
	}
	if u.Status != nil {
		out["status"] = string(*u.Status)
	}
	if u.Avatar != nil {
		out["avatar"] = *u.Avatar
	}
	if u.Phone != nil {
		out["phone"] = *u.Phone
	}
	return out
}

// Apply returns p with the fields u sets.
func (u Update) Apply(p Profile) Profile {
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Username != nil {
		p.Username = *u.Username
	}
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Role != nil {
		p.Role = normalizeRole(*u.Role)
	}
	if u.Department != nil {
		p.Department = *u.Department
	}
	if u.Position != nil {
		p.Position = *u.Position
	}
	if u.Status != nil {
		p.Status = normalizeStatus(*u.Status)
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	return p
}
