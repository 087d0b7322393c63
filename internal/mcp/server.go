// Package mcp provides the stdio MCP server exposing the todo kernel to
// agents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/todo/internal/apperr"
	"github.com/go-ports/todo/internal/buildinfo"
	"github.com/go-ports/todo/internal/models"
	"github.com/go-ports/todo/internal/service"
)

const addDescription = `Add a todo for the logged-in user. Text is trimmed and must not be empty. A user may hold a limited number of unfinished todos; finish or delete one before adding more.`

const listDescription = `List the logged-in user's todos, newest first. Filter by "pending" or "done", or omit the filter for all todos.`

// NewServer creates and registers all todo tools on a new MCP server.
// It is intentionally separate from Serve so that tests and other callers can
// obtain a fully configured server without committing to the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("todo", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve runs the stdio MCP server over svc, blocking until stdin closes.
func Serve(_ context.Context, svc *service.Service) error {
	return mcpserver.ServeStdio(NewServer(svc))
}

// registerTools wires every kernel operation into the server.
func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("todo_login",
		mcp.WithDescription("Log in as a user, creating the user on first login. Existing todos are kept."),
		mcp.WithString("name",
			mcp.Description("User name."),
			mcp.Required(),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleLogin(svc, req)
	})

	s.AddTool(mcp.NewTool("todo_logout",
		mcp.WithDescription("Log out the current user."),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleLogout(svc)
	})

	s.AddTool(mcp.NewTool("todo_whoami",
		mcp.WithDescription("Show the logged-in user, if any."),
	), func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleWhoami(svc)
	})

	s.AddTool(mcp.NewTool("todo_add",
		mcp.WithDescription(addDescription),
		mcp.WithString("text",
			mcp.Description("What needs doing."),
			mcp.Required(),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t, err := svc.Add(req.GetString("text", ""))
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(todoJSON(*t))
	})

	s.AddTool(mcp.NewTool("todo_list",
		mcp.WithDescription(listDescription),
		mcp.WithString("filter",
			mcp.Description("all (default), pending or done."),
			mcp.Enum(models.FilterNames()...),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleList(svc, req)
	})

	s.AddTool(mcp.NewTool("todo_done",
		mcp.WithDescription("Mark a todo as finished. Finished todos cannot be reopened."),
		mcp.WithNumber("id",
			mcp.Description("Todo id."),
			mcp.Required(),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleByID(req, svc.Complete)
	})

	s.AddTool(mcp.NewTool("todo_delete",
		mcp.WithDescription("Delete a todo. Its id is never reused."),
		mcp.WithNumber("id",
			mcp.Description("Todo id."),
			mcp.Required(),
		),
	), func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleByID(req, svc.Remove)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleLogin(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	u, created, err := svc.Login(req.GetString("name", ""))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(map[string]any{
		"user":    u.Name,
		"created": created,
		"todos":   len(u.Todos),
	})
}

func handleLogout(svc *service.Service) (*mcp.CallToolResult, error) {
	name, ok := svc.Logout()
	if !ok {
		return jsonResult(map[string]any{
			"logged_out": nil,
			"message":    "Nobody is logged in",
		})
	}
	return jsonResult(map[string]any{"logged_out": name})
}

func handleWhoami(svc *service.Service) (*mcp.CallToolResult, error) {
	u, err := svc.CurrentUser()
	if err != nil {
		return errorResult(err), nil
	}
	if u == nil {
		return jsonResult(map[string]any{"user": nil})
	}
	return jsonResult(map[string]any{
		"user":    u.Name,
		"active":  u.ActiveCount(),
		"total":   len(u.Todos),
		"next_id": u.NextID,
	})
}

func handleList(svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	todos, err := svc.List(req.GetString("filter", ""))
	if err != nil {
		return errorResult(err), nil
	}
	out := make([]map[string]any, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoJSON(t))
	}
	return jsonResult(out)
}

func handleByID(req mcp.CallToolRequest, op func(int) (*models.Todo, error)) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return errorResult(err), nil
	}
	t, err := op(id)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(todoJSON(*t))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// requireID reads the "id" argument, rejecting values that are not whole
// numbers.
func requireID(req mcp.CallToolRequest) (int, error) {
	v, err := req.RequireFloat("id")
	if err != nil {
		return 0, apperr.New(apperr.KindInvalidArgument, err.Error())
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, apperr.Newf(apperr.KindInvalidArgument, "id must be a whole number, got %v", v)
	}
	return int(v), nil
}

func todoJSON(t models.Todo) map[string]any {
	return map[string]any{
		"id":         t.ID,
		"text":       t.Text,
		"completed":  t.Completed,
		"created_at": t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// errorResult renders a kernel failure as "<kind>: <message>".
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %s", apperr.KindOf(err), err.Error()))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
