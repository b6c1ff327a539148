package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// NewHookguardMCPServer creates an MCP server with the hookguard tools and
// resources registered. projectPath is the repository holding the hooks and
// the .hookguard.yaml file.
func NewHookguardMCPServer(projectPath string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := server.NewMCPServer(
		"hookguard",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, logger)
	registerResources(s, projectPath, logger)

	return s
}
