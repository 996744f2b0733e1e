package main

import (
	"github.com/relictool/relic/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP (Model Context Protocol) server for LLM tool integration",
	Long: `Starts an MCP server over stdio transport that exposes relic's analysis
as tools that LLMs can invoke. Every tool runs the real pipeline against
the project tree; results match the CLI exactly.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "relic": {
        "command": "relic",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - find_orphans        Files nothing imports or references
  - dependency_graph    Import graph (adjacency or D3 form)
  - find_duplicates     Same-named files with identical content
  - list_barrels        Barrel files and their re-exports
  - scan_dynamic_refs   Possible dynamic references to candidates`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.NewServer(version).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
