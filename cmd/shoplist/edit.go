// ABOUTME: Shoplist edit command
// ABOUTME: Loads an item into the view model form and saves it as an update

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/storage"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	Aliases: []string{"e"},
	Short:   "Change an item",
	Long: `Change fields of an existing item. Fields without a flag keep their value.

Examples:
  shoplist edit 3 --price 29,90
  shoplist edit 3 --quantity 2 --description "Arroz integral 5kg"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		vm, err := openViewModel(cmd, false)
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

		form := vm.BeginEdit(*item)
		if cmd.Flags().Changed("description") {
			form.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("quantity") {
			form.Quantity, _ = cmd.Flags().GetString("quantity")
		}
		if cmd.Flags().Changed("price") {
			form.Price, _ = cmd.Flags().GetString("price")
		}
		if cmd.Flags().Changed("date") {
			dateStr, _ := cmd.Flags().GetString("date")
			registeredAt, err := parseDate(dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date value: %w", err)
			}
			form.RegisteredAt = registeredAt
		}

		if err := vm.Save(ctx, form); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Updated #%d %s", id, form.Description))
		return nil
	},
}

// parseID parses an item id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

func init() {
	editCmd.Flags().StringP("description", "d", "", "new description")
	editCmd.Flags().StringP("quantity", "q", "", "new quantity")
	editCmd.Flags().StringP("price", "p", "", "new unit price")
	editCmd.Flags().String("date", "", "new registration date (YYYY-MM-DD or RFC3339)")

	rootCmd.AddCommand(editCmd)
}
