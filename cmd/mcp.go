package cmd

import (
	"github.com/spf13/cobra"

	"github.com/amckenna/riskline/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the riskline MCP server",
	Long:  `Launch an MCP server that allows AI agents to run risk analyses via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress nothing special here, but keep stdio clean for the
		// protocol by avoiding any extra setup output.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, store)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
