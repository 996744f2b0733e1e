// Package mcpserver exposes the relic pipeline over the Model Context
// Protocol. Every tool runs the real analysis service; nothing is canned.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all relic analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all relic tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "relic",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_orphans",
		Description: describeFindOrphans(),
	}, handleFindOrphans)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "dependency_graph",
		Description: describeDependencyGraph(),
	}, handleDependencyGraph)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_duplicates",
		Description: describeFindDuplicates(),
	}, handleFindDuplicates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_barrels",
		Description: describeListBarrels(),
	}, handleListBarrels)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_dynamic_refs",
		Description: describeScanDynamicRefs(),
	}, handleScanDynamicRefs)
}
