package main

import (
	"context"
	"flag"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "folio/internal/adapters/mcp"
	"folio/internal/config"
	"folio/internal/logging"
	"folio/internal/workspace"
)

func main() {
	rootFlag := flag.String("root", "", "path to the notebook (default from config)")
	outlineFlag := flag.String("outline", "", "browse a YAML or JSON outline file instead")
	flag.Parse()

	// stdout carries the protocol
	log := logging.New(os.Stderr, "info")

	cfg, err := config.Load(config.Path())
	if err != nil {
		log.WithError(err).Fatal("folio-mcp: failed to load config")
	}
	if *rootFlag != "" {
		cfg.Root = *rootFlag
	}
	if *outlineFlag != "" {
		cfg.Outline = *outlineFlag
	}
	log = logging.New(os.Stderr, cfg.LogLevel)

	ws, err := workspace.Open(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("folio-mcp: failed to open notebook")
	}
	defer ws.Close()

	mcpServer := server.NewMCPServer(
		"folio-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, ws.Env)
	mcpadapter.RegisterWriteTools(mcpServer, ws.Env)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.WithError(err).Error("folio-mcp: server stopped")
		ws.Close()
		os.Exit(1)
	}
}
