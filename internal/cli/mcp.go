package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/symextract/internal/mcp"
	"github.com/mvp-joe/symextract/internal/scan"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for symbol extraction",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
extract symbols from the codebase.

The MCP server:
- Provides the extract_symbols tool
- Communicates via stdio (standard MCP transport)
- Logs to stderr only

Example:
  symextract mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	server, err := mcp.NewServer(scan.New(scanOptions(cfg, logger)), Version, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
