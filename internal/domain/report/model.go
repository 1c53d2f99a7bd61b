package report

import (
	"github.com/rpggio/pmdash/internal/domain/project"
)

// Type selects the payload of a generated report
type Type string

const (
	TypeProjectSummary  Type = "project_summary"
	TypeBudgetAnalysis  Type = "budget_analysis"
	TypeTeamPerformance Type = "team_performance"
	TypeTaskCompletion  Type = "task_completion"
)

// Types lists every report type.
var Types = []Type{TypeProjectSummary, TypeBudgetAnalysis, TypeTeamPerformance, TypeTaskCompletion}

// Valid reports whether t is a known report type.
func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

// DateRange is the selected reporting window
type DateRange string

const (
	Range7Days  DateRange = "7days"
	Range30Days DateRange = "30days"
	Range90Days DateRange = "90days"
	RangeAll    DateRange = "all"
)

// Valid reports whether r is a known range.
func (r DateRange) Valid() bool {
	switch r {
	case Range7Days, Range30Days, Range90Days, RangeAll:
		return true
	}
	return false
}

// ProjectReport summarizes one project.
type ProjectReport struct {
	ProjectID      string         `json:"projectId"`
	ProjectName    string         `json:"projectName"`
	Status         project.Status `json:"status"`
	Progress       int            `json:"progress"`
	Budget         float64        `json:"budget"`
	Spent          float64        `json:"spent"`
	TasksTotal     int            `json:"tasksTotal"`
	TasksCompleted int            `json:"tasksCompleted"`
	TeamSize       int            `json:"teamSize"`
	DaysRemaining  int            `json:"daysRemaining"`
	IsOnTrack      bool           `json:"isOnTrack"`
}

// ProjectBudget is one project's share of spending.
type ProjectBudget struct {
	ProjectName string  `json:"projectName"`
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Percentage  float64 `json:"percentage"`
}

// BudgetSummary aggregates budgets across projects.
type BudgetSummary struct {
	TotalBudget     float64         `json:"totalBudget"`
	TotalSpent      float64         `json:"totalSpent"`
	TotalRemaining  float64         `json:"totalRemaining"`
	UtilizationRate float64         `json:"utilizationRate"`
	ProjectsBudgets []ProjectBudget `json:"projectsBudgets"`
}

// Performer is one assignee's tally.
type Performer struct {
	Name           string `json:"name"`
	TasksCompleted int    `json:"tasksCompleted"`
	Projects       int    `json:"projects"`
}

// TeamPerformance aggregates the directory and task board.
type TeamPerformance struct {
	TotalMembers   int         `json:"totalMembers"`
	ActiveMembers  int         `json:"activeMembers"`
	TasksPerMember float64     `json:"tasksPerMember"`
	CompletionRate int         `json:"completionRate"`
	TopPerformers  []Performer `json:"topPerformers"`
}

// TaskStatistics counts tasks per status.
type TaskStatistics struct {
	Total          int `json:"total"`
	Todo           int `json:"todo"`
	InProgress     int `json:"inProgress"`
	Review         int `json:"review"`
	Done           int `json:"done"`
	CompletionRate int `json:"completionRate"`
}

// ProjectStatusCounts counts projects per status.
type ProjectStatusCounts struct {
	Draft     int `json:"draft"`
	Active    int `json:"active"`
	OnHold    int `json:"onHold"`
	Completed int `json:"completed"`
	Archived  int `json:"archived"`
}

// Report is a generated snapshot.
type Report struct {
	Type        Type      `json:"type"`
	DateRange   DateRange `json:"dateRange"`
	GeneratedAt string    `json:"generatedAt"`
	Data        any       `json:"data"`
}
