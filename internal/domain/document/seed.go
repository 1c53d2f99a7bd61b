package document

const (
	digitalTransformation = "Digital Transformation Initiative"
	researchProgram       = "Research and Development Program"
)

// Seed returns the built-in document catalog.
func Seed() []Document {
	return []Document{
		{
			ID: "1", Name: "Project Proposal.pdf", Category: CategoryProposal, ProjectID: "1",
			ProjectName: digitalTransformation, Size: 2500000, Type: "application/pdf",
			UploadedBy: "Juan Dela Cruz", UploadedAt: "2024-01-15T10:30:00", URL: PlaceholderURL,
			Description: "Initial project proposal document",
		},
		{
			ID: "2", Name: "Q1 Progress Report.docx", Category: CategoryReport, ProjectID: "1",
			ProjectName: digitalTransformation, Size: 1800000,
			Type:       "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			UploadedBy: "Maria Santos", UploadedAt: "2024-01-18T14:20:00", URL: PlaceholderURL,
			Description: "First quarter progress report",
		},
		{
			ID: "3", Name: "Budget Breakdown.xlsx", Category: CategoryBudget, ProjectID: "1",
			ProjectName: digitalTransformation, Size: 950000,
			Type:       "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			UploadedBy: "Pedro Garcia", UploadedAt: "2024-01-12T09:15:00", URL: PlaceholderURL,
			Description: "Detailed budget allocation",
		},
		{
			ID: "4", Name: "Research Framework.pdf", Category: CategoryProposal, ProjectID: "2",
			ProjectName: researchProgram, Size: 3200000, Type: "application/pdf",
			UploadedBy: "Alice Tan", UploadedAt: "2024-01-20T11:45:00", URL: PlaceholderURL,
		},
		{
			ID: "5", Name: "Contract Agreement.pdf", Category: CategoryContract, ProjectID: "2",
			ProjectName: researchProgram, Size: 1500000, Type: "application/pdf",
			UploadedBy: "Admin", UploadedAt: "2024-01-10T16:30:00", URL: PlaceholderURL,
			Description: "Signed contract with vendors",
		},
	}
}
