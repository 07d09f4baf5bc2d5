// ABOUTME: Shoplist list command
// ABOUTME: Lists items with line totals, optionally bounded by registration date

package main

import (
	"fmt"

	"github.com/harper/shoplist/internal/ui"
	"github.com/harper/shoplist/internal/viewmodel"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List items and the total",
	Long: `List every item ordered by description, followed by the total.

Examples:
  shoplist list
  shoplist list --from 2026-01-01 --to 2026-01-31`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateRange, err := dateRangeFlags(cmd)
		if err != nil {
			return err
		}

		vm, err := openViewModel(cmd, false)
		if err != nil {
			return err
		}
		defer vm.Close()

		vm.SetDateRange(dateRange)
		printItems(cmd, vm.Snapshot())
		return nil
	},
}

// dateRangeFlags reads --from and --to. It returns nil when neither is set.
func dateRangeFlags(cmd *cobra.Command) (*viewmodel.DateRange, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if from == "" && to == "" {
		return nil, nil
	}

	r := &viewmodel.DateRange{}
	if from != "" {
		t, err := parseDate(from)
		if err != nil {
			return nil, fmt.Errorf("invalid --from value: %w", err)
		}
		r.From = t
	}
	if to != "" {
		t, err := parseDate(to)
		if err != nil {
			return nil, fmt.Errorf("invalid --to value: %w", err)
		}
		r.To = t
	}
	return r, nil
}

// printItems writes the visible items of snap followed by their total.
func printItems(cmd *cobra.Command, snap viewmodel.Snapshot) {
	out := cmd.OutOrStdout()
	f := currentFormat()
	_, _ = fmt.Fprintln(out, ui.FormatItemList(snap.Items, f))
	_, _ = fmt.Fprintln(out, ui.FormatTotal(snap.Total, len(snap.Items), f))
}

func init() {
	listCmd.Flags().String("from", "", "only items registered on or after this date (YYYY-MM-DD)")
	listCmd.Flags().String("to", "", "only items registered on or before this date (YYYY-MM-DD)")

	rootCmd.AddCommand(listCmd)
}
