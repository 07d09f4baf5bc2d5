// ABOUTME: Shoplist remove command
// ABOUTME: Deletes one item after confirmation

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/storage"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		vm, err := openViewModel(cmd, confirm)
		if err != nil {
			return err
		}
		defer vm.Close()

		ctx := cmdContext(cmd)
		item, err := repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("item %d not found", id)
			}
			return fmt.Errorf("failed to get item: %w", err)
		}

		deleted, err := vm.Delete(ctx, *item)
		if err != nil {
			return err
		}
		if !deleted {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Removed %s", item.Description))
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}
