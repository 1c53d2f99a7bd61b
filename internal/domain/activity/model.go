package activity

import "time"

// Outcome is the result of a recorded store action.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ActivityEntry represents one store action in the activity log
type ActivityEntry struct {
	ID         int64     `json:"id"`
	Store      string    `json:"store"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entity_id,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	Source     string    `json:"source,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
