// ABOUTME: MCP serve command
// ABOUTME: Starts the MCP server for AI agent integration

package main

import (
	"fmt"
	"log/slog"

	"github.com/harper/shoplist/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if repo == nil {
			return fmt.Errorf("storage is not open")
		}

		server, err := mcp.NewServer(repo, currentFormat(), slog.Default())
		if err != nil {
			return err
		}

		return server.Serve(cmdContext(cmd))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
