// ABOUTME: Import command for restoring data from YAML backup
// ABOUTME: Appends items from backup files created by the backup command

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/storage"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import items from a YAML backup",
	Long: `Import items from a YAML backup file created with 'shoplist backup'.

WARNING: This adds to existing items, not replace them. Imported items get
new ids. Use 'shoplist reset' first if you want a clean import.

Examples:
  shoplist import shoplist.yaml
  shoplist import ~/backups/shoplist-20260131.yaml --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if repo == nil {
			return fmt.Errorf("storage is not open")
		}
		filename := args[0]

		data, err := os.ReadFile(filename) //nolint:gosec // user-supplied backup path
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		backup, err := storage.ParseBackup(data)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		prompter := newTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), confirm)
		ctx := cmdContext(cmd)
		ok, err := prompter.Confirm(ctx, "Confirm", fmt.Sprintf("Import %d items from '%s'?", len(backup.Items), filename))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		n, err := storage.ImportFromYAML(ctx, repo, data)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		items, err := repo.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Import complete"))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d imported, %d items in list\n", n, len(items))
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}
