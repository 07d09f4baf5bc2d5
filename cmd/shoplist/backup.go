// ABOUTME: Backup command for exporting data to YAML
// ABOUTME: Creates portable backup files for restore and migration

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/storage"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a YAML backup of all items",
	Long: `Create a YAML backup file containing every item.

The backup file can be used to:
- Move the list between machines or backends
- Restore after data loss
- Import into a fresh database

Examples:
  shoplist backup --output shoplist.yaml
  shoplist backup -o ~/backups/shoplist-$(date +%Y%m%d).yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if repo == nil {
			return fmt.Errorf("storage is not open")
		}
		output, _ := cmd.Flags().GetString("output")

		data, err := storage.ExportToYAML(cmdContext(cmd), repo)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		if output == "" {
			output = fmt.Sprintf("shoplist-%s.yaml", time.Now().Format("20060102-150405"))
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		backup, err := storage.ParseBackup(data)
		if err != nil {
			return fmt.Errorf("failed to verify backup: %w", err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Backup created: %s", output))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d items\n", len(backup.Items))
		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: shoplist-YYYYMMDD-HHMMSS.yaml)")

	rootCmd.AddCommand(backupCmd)
}
