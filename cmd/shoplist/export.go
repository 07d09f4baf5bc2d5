// ABOUTME: Export command for printable markdown and YAML output
// ABOUTME: Writes the list with line totals to stdout or a file

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the list as markdown or YAML",
	Long: `Export the list as a markdown table with line totals and the grand total,
or as YAML in the backup format.

Examples:
  shoplist export
  shoplist export --output lista.md
  shoplist export --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if repo == nil {
			return fmt.Errorf("storage is not open")
		}

		exportFormat, _ := cmd.Flags().GetString("format")
		ctx := cmdContext(cmd)

		var (
			data []byte
			err  error
		)
		switch exportFormat {
		case "markdown", "md":
			data, err = storage.ExportToMarkdown(ctx, repo, currentFormat(), time.Now())
		case "yaml":
			data, err = storage.ExportToYAML(ctx, repo)
		default:
			return fmt.Errorf("unsupported format: %s (use 'markdown' or 'yaml')", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for exports
			return fmt.Errorf("failed to write export: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("Exported to %s", output))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "markdown", "output format (markdown, yaml)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
