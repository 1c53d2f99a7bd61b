package project

import (
	"slices"

	"github.com/rpggio/pmdash/internal/wire"
)

// Record is a project as the remote API sends it.
type Record struct {
	ID             wire.String  `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Status         string       `json:"status"`
	Priority       string       `json:"priority"`
	StartDate      string       `json:"start_date"`
	EndDate        string       `json:"end_date"`
	Budget         wire.Float   `json:"budget"`
	Spent          wire.Float   `json:"spent"`
	Progress       wire.Int     `json:"progress"`
	ProjectManager string       `json:"project_manager"`
	Department     string       `json:"department"`
	TeamMembers    wire.Strings `json:"team_members"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
}

// FromRecord maps a wire record to memory, substituting defaults for missing
// or unknown values.
func FromRecord(r Record) Project {
	status := Status(r.Status)
	if !status.Valid() {
		status = StatusDraft
	}
	priority := Priority(r.Priority)
	if !priority.Valid() {
		priority = PriorityMedium
	}
	return Project{
		ID:             string(r.ID),
		Title:          r.Title,
		Description:    r.Description,
		Status:         status,
		Priority:       priority,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Budget:         float64(r.Budget),
		Spent:          float64(r.Spent),
		Progress:       int(r.Progress),
		ProjectManager: r.ProjectManager,
		Department:     r.Department,
		TeamMembers:    r.TeamMembers.Slice(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// Payload maps p to the create payload. Server-owned fields are omitted.
func (p Project) Payload() map[string]any {
	members := p.TeamMembers
	if members == nil {
		members = []string{}
	}
	return map[string]any{
		"title":           p.Title,
		"description":     p.Description,
		"status":          string(p.Status),
		"priority":        string(p.Priority),
		"start_date":      p.StartDate,
		"end_date":        p.EndDate,
		"budget":          p.Budget,
		"spent":           p.Spent,
		"progress":        p.Progress,
		"project_manager": p.ProjectManager,
		"department":      p.Department,
		"team_members":    members,
	}
}

// Payload maps u to a partial payload holding exactly the fields u sets.
func (u Update) Payload() map[string]any {
	out := map[string]any{}
	if u.Title != nil {
		out["title"] = *u.Title
	}
	if u.Description != nil {
		out["description"] = *u.Description
	}
	if u.Status != nil {
		out["status"] = string(*u.Status)
	}
	if u.Priority != nil {
		out["priority"] = string(*u.Priority)
	}
	if u.StartDate != nil {
		out["start_date"] = *u.StartDate
	}
	if u.EndDate != nil {
		out["end_date"] = *u.EndDate
	}
	if u.Budget != nil {
		out["budget"] = *u.Budget
	}
	if u.Spent != nil {
		out["spent"] = *u.Spent
	}
	if u.Progress != nil {
		out["progress"] = *u.Progress
	}
	if u.ProjectManager != nil {
		out["project_manager"] = *u.ProjectManager
	}
	if u.Department != nil {
		out["department"] = *u.Department
	}
	if u.TeamMembers != nil {
		out["team_members"] = slices.Clone(u.TeamMembers)
	}
	return out
}

// Empty reports whether u changes nothing.
func (u Update) Empty() bool {
	return len(u.Payload()) == 0
}

func clone(p Project) Project {
	p.TeamMembers = slices.Clone(p.TeamMembers)
	if p.TeamMembers == nil {
		p.TeamMembers = []string{}
	}
	return p
}
