// Package mcptools exposes the tracker over the Model Context Protocol so an
// assistant can read today's state and record progress.
package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
)

const serverName = "ascensao"

// Tool is one MCP tool bound to the service.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Tools returns every tool, reads first.
func Tools(svc *engine.Service) []Tool {
	return []Tool{
		NewTodayTool(svc),
		NewStatusTool(svc),
		NewCompleteMissionTool(svc),
		NewUncompleteMissionTool(svc),
		NewSelectPracticeTool(svc),
		NewSetCounterTool(svc),
		NewAddRitualTool(svc),
		NewAddInsightTool(svc),
	}
}

// New creates the MCP server with every tool registered.
func New(svc *engine.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	for _, t := range Tools(svc) {
		s.AddTool(t.Definition(), t.Handle)
	}
	return s
}

// ServeStdio blocks serving s on stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = `Ascensão is a daily practice tracker. A day runs from 04:00 to 04:00 local time.
Call asc_today or asc_status before recording anything. Mission ids come from asc_today.
Points are final once recorded; use asc_uncomplete_mission to correct a mistaken completion.`
