package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/availops/availagent/internal/tools"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the availability tool catalog to
// external agent clients over stdio.
type Server struct {
	catalog *tools.Catalog
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server over the given tool catalog.
func NewServer(catalog *tools.Catalog) *Server {
	s := &Server{catalog: catalog}

	s.mcp = server.NewMCPServer(
		"availagent",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listServicesTool, s.handleListServices)
	s.mcp.AddTool(getPromiseTool, s.handleGetPromise)
	s.mcp.AddTool(getDowntimeTool, s.handleGetDowntime)
	s.mcp.AddTool(computeAvailabilityTool, s.handleComputeAvailability)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
