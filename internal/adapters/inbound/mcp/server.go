package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDriftguardMCPServer creates an MCP server with all driftguard tools and
// resources registered. The workspacePath is the root of the workspace to
// validate and analyze.
func NewDriftguardMCPServer(workspacePath string) *server.MCPServer {
	s := server.NewMCPServer(
		"driftguard",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, workspacePath)
	registerResources(s, workspacePath)

	return s
}
