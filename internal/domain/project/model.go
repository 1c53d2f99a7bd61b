package project

// Status is a project's lifecycle stage
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on-hold"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Statuses lists every status in enumeration order.
var Statuses = []Status{StatusDraft, StatusActive, StatusOnHold, StatusCompleted, StatusArchived}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority is a project's urgency
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Project is the in-memory project record. Dates keep their wire text.
type Project struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         Status   `json:"status"`
	Priority       Priority `json:"priority"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	Budget         float64  `json:"budget"`
	Spent          float64  `json:"spent"`
	Progress       int      `json:"progress"`
	ProjectManager string   `json:"projectManager"`
	Department     string   `json:"department"`
	TeamMembers    []string `json:"teamMembers"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// Update names the fields to change. Nil fields are left alone; a non-nil
// pointer to a zero value is still sent. A non-nil empty TeamMembers clears
// the list.
type Update struct {
	Title          *string   `json:"title,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Status         *Status   `json:"status,omitempty"`
	Priority       *Priority `json:"priority,omitempty"`
	StartDate      *string   `json:"startDate,omitempty"`
	EndDate        *string   `json:"endDate,omitempty"`
	Budget         *float64  `json:"budget,omitempty"`
	Spent          *float64  `json:"spent,omitempty"`
	Progress       *int      `json:"progress,omitempty"`
	ProjectManager *string   `json:"projectManager,omitempty"`
	Department     *string   `json:"department,omitempty"`
	TeamMembers    []string  `json:"teamMembers,omitempty"`
}
