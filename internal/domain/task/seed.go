package task

// Seed returns the built-in task dataset served when the remote is
// unreachable.
func Seed() []Task {
	return []Task{
		{
			ID: "1", Title: "Design system architecture", Description: "Create technical design documents",
			Status: StatusInProgress, Priority: PriorityHigh, ProjectID: "1", AssignedTo: []string{"Alice", "Bob"},
			DueDate: "2024-02-15", CreatedBy: "Admin", CreatedAt: "2024-01-10", UpdatedAt: "2024-01-18",
			Tags: []string{"architecture", "design"},
		},
		{
			ID: "2", Title: "Implement authentication", Description: "Build login and registration system",
			Status: StatusDone, Priority: PriorityHigh, ProjectID: "1", AssignedTo: []string{"Charlie"},
			DueDate: "2024-01-20", CreatedBy: "Admin", CreatedAt: "2024-01-05", UpdatedAt: "2024-01-17",
			Tags: []string{"auth", "security"},
		},
		{
			ID: "3", Title: "Database schema design", Description: "Design and implement database models",
			Status: StatusReview, Priority: PriorityMedium, ProjectID: "1", AssignedTo: []string{"Alice"},
			DueDate: "2024-02-10", CreatedBy: "Admin", CreatedAt: "2024-01-12", UpdatedAt: "2024-01-18",
			Tags: []string{"database"},
		},
		{
			ID: "4", Title: "Setup testing framework", Description: "Configure unit and integration tests",
			Status: StatusTodo, Priority: PriorityMedium, ProjectID: "1", AssignedTo: []string{"Bob"},
			DueDate: "2024-02-20", CreatedBy: "Admin", CreatedAt: "2024-01-15", UpdatedAt: "2024-01-15",
			Tags: []string{"testing"},
		},
	}
}
