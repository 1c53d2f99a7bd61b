package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `pmdash is one session of a project-management dashboard: auth, projects, tasks, users, documents, settings and reports.

Working model:
- Every mutating or fetching tool returns {success, data, error, source}. source is "remote" (API), "fallback" (built-in data after the API failed) or "local" (memory only).
- When the API is unreachable, fetches fall back to built-in data and later mutations apply locally. Nothing is replayed to the API.
- Tools stand in for dashboard screens and inherit their guards: most need a logged-in session; project create/edit/delete need an admin or project manager; list_users needs an admin.

Default workflow:
1) login (demo accounts work offline: admin@dost.gov.ph/admin123, manager@dost.gov.ph/manager123, staff@dost.gov.ph/staff123).
2) list_projects, list_tasks and list_users before get_report; reports aggregate what is loaded.
3) Mutate with create_/update_/delete_ tools. Update and delete need an ID the session has already fetched.
4) get_recent_activity shows what the stores did, including fallbacks and failures.

Docs:
- pmdash://docs/index
- pmdash://docs/results
- pmdash://docs/roles
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "pmdash://docs/index",
		Name:        "docs_index",
		Title:       "pmdash docs index",
		Description: "Entry point for agent-facing docs.",
		Content: `# pmdash: Agent Docs Index

## Quick start

1. ` + "`login`" + `, then ` + "`whoami`" + ` to see your role and location.
2. ` + "`list_projects`" + ` / ` + "`list_tasks`" + ` / ` + "`list_users`" + ` to load collections.
3. ` + "`get_report`" + ` with a report type once collections are loaded.
4. ` + "`logout`" + ` clears the cached session.

## Docs

- ` + "`pmdash://docs/results`" + ` explains result values and data sources.
- ` + "`pmdash://docs/roles`" + ` lists which roles may call which tools.
`,
	},
	{
		URI:         "pmdash://docs/results",
		Name:        "docs_results",
		Title:       "Results and data sources",
		Description: "Shape of tool results and what remote, fallback and local mean.",
		Content: `# Results and data sources

Store tools return:

    {"success": true, "data": ..., "source": "remote"}
    {"success": false, "error": "failed to fetch projects"}

- **remote**: the API answered.
- **fallback**: the API was unreachable, so built-in data was served. The store switches to local mode.
- **local**: the change was applied in memory only. It is not sent to the API later.

A failed result sets ` + "`isError`" + ` on the tool call. The error text is the server's message when it sent one.

Updating or deleting an ID the session has not fetched fails with "not found" without calling the API.
`,
	},
	{
		URI:         "pmdash://docs/roles",
		Name:        "docs_roles",
		Title:       "Roles and guarded tools",
		Description: "Which roles may call which tools.",
		Content: `# Roles and guarded tools

| Tools | Needs |
|---|---|
| login, register, logout, whoami, get_settings, set_theme, navigate | nothing |
| list_projects, get_project, list_tasks, create_task, update_task_status, delete_task, list_documents, download_document, get_report, get_recent_activity | a logged-in session |
| create_project, update_project, delete_project | admin or project_manager |
| list_users | admin |

Guarded tools fail with LOGIN_REQUIRED or FORBIDDEN. ` + "`navigate`" + ` follows the same guards and reports where you ended up.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
