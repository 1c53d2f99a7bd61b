package task

import (
	"slices"

	"github.com/rpggio/pmdash/internal/wire"
)

// Record is a task as the remote API sends it.
type Record struct {
	ID          wire.String  `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	ProjectID   wire.String  `json:"project_id"`
	AssignedTo  wire.Strings `json:"assigned_to"`
	DueDate     string       `json:"due_date"`
	CreatedBy   wire.String  `json:"created_by"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Tags        wire.Strings `json:"tags"`
}

// FromRecord maps a wire record to memory with defaults for missing values.
func FromRecord(r Record) Task {
	return Task{
		ID:          string(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Status:      normalizeStatus(Status(r.Status)),
		Priority:    normalizePriority(Priority(r.Priority)),
		ProjectID:   string(r.ProjectID),
		AssignedTo:  r.AssignedTo.Slice(),
		DueDate:     r.DueDate,
		CreatedBy:   string(r.CreatedBy),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Tags:        r.Tags.Slice(),
	}
}

func normalizeStatus(s Status) Status {
	if s.Valid() {
		return s
	}
	return StatusTodo
}

func normalizePriority(p Priority) Priority {
	if p.Valid() {
		return p
	}
	return PriorityMedium
}

// Payload maps t to the create payload.
func (t Task) Payload() map[string]any {
	return map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"status":      string(t.Status),
		"priority":    string(t.Priority),
		"project_id":  t.ProjectID,
		"assigned_to": nonNil(t.AssignedTo),
		"due_date":    t.DueDate,
		"created_by":  t.CreatedBy,
		"tags":        nonNil(t.Tags),
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
	if u.ProjectID != nil {
		out["project_id"] = *u.ProjectID
	}
	if u.AssignedTo != nil {
		out["assigned_to"] = slices.Clone(u.AssignedTo)
	}
	if u.DueDate != nil {
		out["due_date"] = *u.DueDate
	}
	if u.Tags != nil {
		out["tags"] = slices.Clone(u.Tags)
	}
	return out
}

// Apply returns t with the fields u sets.
func (u Update) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = normalizeStatus(*u.Status)
	}
	if u.Priority != nil {
		t.Priority = normalizePriority(*u.Priority)
	}
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	if u.AssignedTo != nil {
		t.AssignedTo = slices.Clone(u.AssignedTo)
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Tags != nil {
		t.Tags = slices.Clone(u.Tags)
	}
	return t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

func clone(t Task) Task {
	t.AssignedTo = nonNil(t.AssignedTo)
	t.Tags = nonNil(t.Tags)
	return t
}
