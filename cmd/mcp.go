package cmd

import (
	"github.com/huangsam/benchboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd serves the read-only views as MCP tools over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Benchboard MCP server",
	Long:  `Launch an MCP server that allows AI agents to search, rank and compare models via standard tools.`,
	Args:  cobra.NoArgs,
	// Tool handlers suppress headers because stdout carries the protocol
	PreRunE: sharedSetupWrapper,
	RunE: func(*cobra.Command, []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
