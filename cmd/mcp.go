package cmd

import (
	"github.com/huangsam/burndown/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Burndown MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents build burndown series and charts from ticket exports.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Each tool call names its own input file
		input.InputOptional = true
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
