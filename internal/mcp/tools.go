package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
	ReadOnly    bool
}

func object(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func enum(description string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

func stringList(description string) map[string]any {
	return map[string]any{"type": "array", "description": description, "items": map[string]any{"type": "string"}}
}

var idOnly = object(map[string]any{"id": prop("string", "Entity ID")}, "id")

var projectFields = map[string]any{
	"title":          prop("string", "Project title"),
	"description":    prop("string", "Project description"),
	"status":         enum("Project status", "draft", "active", "on-hold", "completed", "archived"),
	"priority":       enum("Project priority", "low", "medium", "high", "critical"),
	"startDate":      prop("string", "Start date (YYYY-MM-DD)"),
	"endDate":        prop("string", "End date (YYYY-MM-DD)"),
	"budget":         prop("number", "Budget amount"),
	"spent":          prop("number", "Amount spent"),
	"progress":       prop("integer", "Completion percentage 0-100"),
	"projectManager": prop("string", "Project manager name"),
	"department":     prop("string", "Owning department"),
	"teamMembers":    stringList("Team member names"),
}

var taskFields = map[string]any{
	"title":       prop("string", "Task title"),
	"description": prop("string", "Task description"),
	"status":      enum("Task status", "todo", "in-progress", "review", "done"),
	"priority":    enum("Task priority", "low", "medium", "high", "urgent"),
	"projectId":   prop("string", "Owning project ID"),
	"assignedTo":  stringList("Assignee names or IDs"),
	"dueDate":     prop("string", "Due date (YYYY-MM-DD)"),
	"createdBy":   prop("string", "Creator"),
	"tags":        stringList("Free-form tags"),
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// Session
		{
			Name:        "login",
			Description: "Log in with email and password. Falls back to demo accounts when the API is unreachable",
			InputSchema: object(map[string]any{
				"email":    prop("string", "Account email"),
				"password": prop("string", "Account password"),
			}, "email", "password"),
		},
		{
			Name:        "register",
			Description: "Register a new staff account and log in",
			InputSchema: object(map[string]any{
				"username": prop("string", "Display name"),
				"email":    prop("string", "Account email"),
				"password": prop("string", "Account password"),
			}, "username", "email", "password"),
		},
		{
			Name:        "logout",
			Description: "Log out and clear the cached session",
			InputSchema: object(map[string]any{}),
		},
		{
			Name:        "whoami",
			Description: "Show the current user, role, token expiry and location",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},

		// Projects
		{
			Name:        "list_projects",
			Description: "Fetch all projects",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "get_project",
			Description: "Fetch one project and make it the current project",
			InputSchema: idOnly,
			ReadOnly:    true,
		},
		{
			Name:        "create_project",
			Description: "Create a project (admins and project managers)",
			InputSchema: object(map[string]any{
				"project": object(projectFields, "title"),
			}, "project"),
		},
		{
			Name:        "update_project",
			Description: "Change the given fields of a project (admins and project managers)",
			InputSchema: object(map[string]any{
				"id":      prop("string", "Project ID"),
				"changes": object(projectFields),
			}, "id", "changes"),
		},
		{
			Name:        "delete_project",
			Description: "Delete a project (admins and project managers)",
			InputSchema: idOnly,
		},

		// Tasks
		{
			Name:        "list_tasks",
			Description: "Fetch tasks, optionally for one project",
			InputSchema: object(map[string]any{
				"project_id": prop("string", "Project ID to filter by"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "create_task",
			Description: "Create a task",
			InputSchema: object(map[string]any{
				"task": object(taskFields, "title"),
			}, "task"),
		},
		{
			Name:        "update_task_status",
			Description: "Move a task to another board column",
			InputSchema: object(map[string]any{
				"id":     prop("string", "Task ID"),
				"status": enum("New status", "todo", "in-progress", "review", "done"),
			}, "id", "status"),
		},
		{
			Name:        "delete_task",
			Description: "Delete a task",
			InputSchema: idOnly,
		},

		// Users and documents
		{
			Name:        "list_users",
			Description: "Fetch user profiles (admins only)",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "list_documents",
			Description: "Fetch documents, optionally for one project",
			InputSchema: object(map[string]any{
				"project_id": prop("string", "Project ID to filter by"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "download_document",
			Description: "Get a download link for a document",
			InputSchema: idOnly,
			ReadOnly:    true,
		},

		// Settings and reports
		{
			Name:        "get_settings",
			Description: "Show theme, notification settings and user preferences",
			InputSchema: object(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "set_theme",
			Description: "Change the colour theme",
			InputSchema: object(map[string]any{
				"theme": enum("Theme", "light", "dark", "system"),
			}, "theme"),
		},
		{
			Name:        "get_report",
			Description: "Generate a report from the loaded projects, tasks and users",
			InputSchema: object(map[string]any{
				"type":       enum("Report type", "project_summary", "budget_analysis", "team_performance", "task_completion"),
				"date_range": enum("Date range selector", "7days", "30days", "90days", "all"),
			}, "type"),
			ReadOnly: true,
		},
		{
			Name:        "get_recent_activity",
			Description: "List recent store actions, newest first",
			InputSchema: object(map[string]any{
				"store":  prop("string", "Store to filter by (auth, projects, tasks, users, documents, settings, reports)"),
				"action": prop("string", "Action to filter by"),
				"limit":  prop("integer", "Maximum number of entries"),
			}),
			ReadOnly: true,
		},

		// Navigation
		{
			Name:        "navigate",
			Description: "Move to a dashboard path. Guarded paths redirect to login or the dashboard",
			InputSchema: object(map[string]any{
				"path": prop("string", "Target path, e.g. /projects/3/edit"),
			}, "path"),
		},
	}
}

// registerTools adds every catalog tool to server, dispatching to h.
func registerTools(server *sdkmcp.Server, h *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		tool := &sdkmcp.Tool{
			Name:        name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
		if def.ReadOnly {
			tool.Annotations = &sdkmcp.ToolAnnotations{ReadOnlyHint: true}
		}
		server.AddTool(tool, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			return callTool(ctx, h, logger, name, args), nil
		})
	}
}

// outcome is implemented by every store.Result.
type outcome interface {
	Succeeded() bool
}

// callTool runs one tool and renders its value as JSON text. Handler errors
// and failed store results are reported with IsError.
func callTool(ctx context.Context, h *Handler, logger *slog.Logger, name string, args json.RawMessage) *sdkmcp.CallToolResult {
	value, err := h.Handle(ctx, name, args)
	isError := false
	if err != nil {
		value = MapError(err)
		isError = true
	} else if o, ok := value.(outcome); ok && !o.Succeeded() {
		isError = true
	}

	text, err := json.Marshal(value)
	if err != nil {
		if logger != nil {
			logger.Error("encoding tool result", "tool", name, "error", err)
		}
		text, _ = json.Marshal(&APIError{Code: "INTERNAL", Message: "failed to encode result"})
		isError = true
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(text)}},
		IsError: isError,
	}
}
