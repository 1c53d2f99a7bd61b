package user

import "github.com/rpggio/pmdash/internal/domain/access"

// Seed returns the built-in directory served when the remote is unreachable.
func Seed() []Profile {
	return []Profile{
		{ID: "1", Email: "admin@dost.gov.ph", Username: "admin", FullName: "Juan Dela Cruz", Role: access.RoleAdmin,
			Department: "Administration", Position: "System Administrator", Status: StatusActive,
			Phone: "+63 912 345 6789", JoinedAt: "2023-01-15", LastActive: "2024-01-18"},
		{ID: "2", Email: "maria.santos@dost.gov.ph", Username: "msantos", FullName: "Maria Santos", Role: access.RoleProjectManager,
			Department: "R&D Department", Position: "Project Manager", Status: StatusActive,
			Phone: "+63 917 234 5678", JoinedAt: "2023-03-20", LastActive: "2024-01-18"},
		{ID: "3", Email: "pedro.garcia@dost.gov.ph", Username: "pgarcia", FullName: "Pedro Garcia", Role: access.RoleProjectManager,
			Department: "Community Relations", Position: "Project Coordinator", Status: StatusActive,
			Phone: "+63 918 345 6789", JoinedAt: "2023-06-10", LastActive: "2024-01-17"},
		{ID: "4", Email: "alice.tan@dost.gov.ph", Username: "atan", FullName: "Alice Tan", Role: access.RoleStaff,
			Department: "IT Department", Position: "Software Developer", Status: StatusActive,
			JoinedAt: "2023-08-01", LastActive: "2024-01-18"},
		{ID: "5", Email: "bob.lee@dost.gov.ph", Username: "blee", FullName: "Bob Lee", Role: access.RoleStaff,
			Department: "IT Department", Position: "Frontend Developer", Status: StatusActive,
			JoinedAt: "2023-09-15", LastActive: "2024-01-16"},
		{ID: "6", Email: "charlie.wong@dost.gov.ph", Username: "cwong", FullName: "Charlie Wong", Role: access.RoleStaff,
			Department: "IT Department", Position: "Backend Developer", Status: StatusActive,
			JoinedAt: "2023-10-01", LastActive: "2024-01-18"},
		{ID: "7", Email: "david.reyes@dost.gov.ph", Username: "dreyes", FullName: "David Reyes", Role: access.RoleViewer,
			Department: "R&D Department", Position: "Research Assistant", Status: StatusActive,
			JoinedAt: "2023-11-20", LastActive: "2024-01-15"},
		{ID: "8", Email: "eve.cruz@dost.gov.ph", Username: "ecruz", FullName: "Eve Cruz", Role: access.RoleViewer,
			Department: "Community Relations", Position: "Community Officer", Status: StatusPending,
			JoinedAt: "2024-01-10", LastActive: "2024-01-12"},
	}
}
