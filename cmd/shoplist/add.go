// ABOUTME: Shoplist add command
// ABOUTME: Saves a new item through the view model form path

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/ui"
	"github.com/harper/shoplist/internal/viewmodel"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add <description> <quantity> <price>",
	Aliases: []string{"a"},
	Short:   "Add an item to the list",
	Long: `Add an item to the shopping list. Price accepts the configured locale
format ("27,90" in pt-BR) or the invariant form ("27.90").

Examples:
  shoplist add "Arroz 5kg" 1 27,90
  shoplist add Feijão 2 8.50
  shoplist add Café 1 15 --date 2026-01-31`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		form := viewmodel.Form{
			Description: args[0],
			Quantity:    args[1],
			Price:       args[2],
		}

		if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
			registeredAt, err := parseDate(dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date value: %w", err)
			}
			form.RegisteredAt = registeredAt
		}

		vm, err := openViewModel(cmd, false)
		if err != nil {
			return err
		}
		defer vm.Close()

		ctx := cmdContext(cmd)
		if err := vm.Save(ctx, form); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, color.GreenString("✓ Added %s", form.Description))
		_, _ = fmt.Fprintln(out, ui.FormatTotal(vm.Total(), len(vm.Items()), currentFormat()))
		return nil
	},
}

// parseDate parses date strings in RFC3339 or YYYY-MM-DD format.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date format (use YYYY-MM-DD or RFC3339)")
}

func init() {
	addCmd.Flags().String("date", "", "registration date (YYYY-MM-DD or RFC3339, default now)")

	rootCmd.AddCommand(addCmd)
}
