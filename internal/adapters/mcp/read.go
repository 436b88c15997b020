package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"folio/internal/application/commands"
)

// RegisterReadTools adds all read-only notebook tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, env commands.Env) {
	s.AddTool(treeTool(), treeHandler(env))
	s.AddTool(pathTool(), pathHandler(env))
	s.AddTool(firstLeafTool(), firstLeafHandler(env))
	s.AddTool(readNoteTool(), readNoteHandler(env))
	s.AddTool(collapsedTool(), collapsedHandler(env))
	s.AddTool(searchTool(), searchHandler(env))
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the notebook as an indented tree. By default the contents of collapsed folders are hidden, the way the browser shows them."),
		mcp.WithBoolean("all",
			mcp.Description("Include the contents of collapsed folders"),
		),
	)
}

func treeHandler(env commands.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lines, err := commands.NewTreeCommand(env, req.GetBool("all", false)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, l := range lines {
			marker := " "
			if l.Collapsed {
				marker = "+"
			}
			fmt.Fprintf(&sb, "%s%s %d  %s\n", strings.Repeat("  ", l.Depth), marker, l.ID, l.Name)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- path ---

func pathTool() mcp.Tool {
	return mcp.NewTool("path",
		mcp.WithDescription("Get the breadcrumb of a node: its ancestors from the root down to the node itself."),
		mcp.WithNumber("id",
			mcp.Description("Node id"),
			mcp.Required(),
		),
	)
}

func pathHandler(env commands.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(req, "id")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewPathCommand(env, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatPath(result)), nil
	}
}

// --- first_leaf ---

func firstLeafTool() mcp.Tool {
	return mcp.NewTool("first_leaf",
		mcp.WithDescription("Find the first file inside a folder, searching depth first in display order."),
		mcp.WithNumber("folder_id",
			mcp.Description("Folder id"),
			mcp.Required(),
		),
	)
}

func firstLeafHandler(env commands.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(req, "folder_id")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewFirstLeafCommand(env, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatPath(result)), nil
	}
}

// --- read_note ---

func readNoteTool() mcp.Tool {
	return mcp.NewTool("read_note",
		mcp.WithDescription("Read a node's content: the markdown body of a file, or the intro of a folder."),
		mcp.WithNumber("id",
			mcp.Description("Node id"),
			mcp.Required(),
		),
	)
}

func readNoteHandler(env commands.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(req, "id")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewPathCommand(env, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		node := result.Node
		if node.IsFolder() {
			if node.Intro == "" {
				return mcp.NewToolResultText("(folder has no intro)"), nil
			}
			return mcp.NewToolResultText(node.Intro), nil
		}
		return mcp.NewToolResultText(node.Body), nil
	}
}

// --- collapsed ---

func collapsedTool() mcp.Tool {
	return mcp.NewTool("collapsed",
		mcp.WithDescription("List the ids of collapsed folders."),
	)
}

func collapsedHandler(env commands.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := commands.NewCollapsedCommand(env).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatIDs(ids)), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search node names with fuzzy matching. Returns matching nodes with their ids and breadcrumbs, best match first."),
		mcp.WithString("query",
			mcp.Description("Search query (at least two characters)"),
			mcp.Required(),
		),
	)
}

func searchHandler(env commands.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(env, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%d  %s  %s\n", r.Node.ID, r.Node.Type, r.Breadcrumb)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// requireID reads a positive integer id argument
func requireID(req mcp.CallToolRequest, key string) (int, error) {
	id := req.GetInt(key, 0)
	if id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return id, nil
}

func formatPath(r commands.PathResult) string {
	return fmt.Sprintf("%d  %s  %s", r.Node.ID, r.Node.Type, r.Breadcrumb())
}

func formatIDs(ids []int) string {
	if len(ids) == 0 {
		return "No collapsed folders."
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, " ")
}
