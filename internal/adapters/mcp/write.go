package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"folio/internal/application/commands"
)

// RegisterWriteTools adds the tools that change persisted tree state.
func RegisterWriteTools(s *server.MCPServer, env commands.Env) {
	s.AddTool(collapseTool(), setCollapsedHandler(env, true))
	s.AddTool(expandTool(), setCollapsedHandler(env, false))
	s.AddTool(resetCollapsedTool(), resetCollapsedHandler(env))
}

func collapseTool() mcp.Tool {
	return mcp.NewTool("collapse",
		mcp.WithDescription("Collapse a folder so the browser hides its contents. Returns the collapsed folder ids."),
		mcp.WithNumber("folder_id",
			mcp.Description("Folder id"),
			mcp.Required(),
		),
	)
}

func expandTool() mcp.Tool {
	return mcp.NewTool("expand",
		mcp.WithDescription("Expand a folder so the browser shows its contents. Returns the collapsed folder ids."),
		mcp.WithNumber("folder_id",
			mcp.Description("Folder id"),
			mcp.Required(),
		),
	)
}

func setCollapsedHandler(env commands.Env, collapsed bool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(req, "folder_id")
		if err != nil {
			return toolError(err)
		}

		ids, err := commands.NewSetCollapsedCommand(env, id, collapsed).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatIDs(ids)), nil
	}
}

func resetCollapsedTool() mcp.Tool {
	return mcp.NewTool("reset_collapsed",
		mcp.WithDescription("Reset collapse state to the default: every folder below the root collapsed."),
	)
}

func resetCollapsedHandler(env commands.Env) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids, err := commands.NewResetCollapsedCommand(env).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatIDs(ids)), nil
	}
}
