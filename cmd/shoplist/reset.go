// ABOUTME: Shoplist reset command
// ABOUTME: Deletes every item and restarts ids after confirmation

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete ALL items",
	Long: `Delete every item on the list. Ids start again at 1.

This cannot be undone. Use 'shoplist backup' first if in doubt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		vm, err := openViewModel(cmd, confirm)
		if err != nil {
			return err
		}
		defer vm.Close()

		done, err := vm.ResetAll(cmdContext(cmd))
		if err != nil {
			return err
		}
		if !done {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Shopping list cleared"))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}
