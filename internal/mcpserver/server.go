// Package mcpserver exposes a read-only Model Context Protocol tool
// surface over a running core.Core handle, for downstream LLM-agent
// or orchestration-host conditioning consumers (§6 EXPANSION). None of
// the tools mutate core state or trigger a fusion tick; they report
// whatever the scheduler most recently produced.
package mcpserver

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/synheart-ai/synheart-core/internal/core"
)

// Server wraps the MCP server instance bound to one Core handle.
type Server struct {
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server exposing the read-only HSV tool
// surface over c.
func NewServer(version string, c *core.Core) *Server {
	s := server.NewMCPServer("hsicore", version, server.WithLogging())
	registerTools(s, c)
	return &Server{mcpServer: s}
}

// Start runs the server in stdio mode (blocking), the same transport
// the teacher's own MCP subcommand uses.
func (s *Server) Start(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcpServer)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

func registerTools(s *server.MCPServer, c *core.Core) {
	s.AddTool(
		mcp.NewTool("get_current_hsv",
			mcp.WithDescription("Returns the latest published Human State Vector (HSV) as JSON, or an explicit no-fusion-yet result if the pipeline has not completed a tick."),
		),
		handleGetCurrentHSV(c),
	)

	s.AddTool(
		mcp.NewTool("get_hsi_snapshot",
			mcp.WithDescription("Runs the HSI 1.0 exporter over the latest HSV and returns the signable snapshot payload (the same shape the upload client sends)."),
		),
		handleGetHSISnapshot(c),
	)

	s.AddTool(
		mcp.NewTool("list_window_types",
			mcp.WithDescription("Lists the four fixed window types (30s/5m/1h/24h) with their durations and wire labels."),
		),
		handleListWindowTypes,
	)
}
