package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	Store   string
	Action  string
	Outcome *Outcome
	Limit   int
	Offset  int
}
