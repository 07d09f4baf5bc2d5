// ABOUTME: Shoplist total command
// ABOUTME: Prints the sum of quantity times unit price over matching items

package main

import (
	"fmt"
	"strings"

	"github.com/harper/shoplist/internal/ui"
	"github.com/spf13/cobra"
)

var totalCmd = &cobra.Command{
	Use:   "total [query]",
	Short: "Show the list total",
	Long: `Show the total of the list, or of the items whose description contains query.

Examples:
  shoplist total
  shoplist total arroz --from 2026-01-01`,
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

		vm.ApplyFilter(strings.Join(args, " "), dateRange)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), ui.FormatTotal(vm.Total(), len(vm.Items()), currentFormat()))
		return nil
	},
}

func init() {
	totalCmd.Flags().String("from", "", "only items registered on or after this date (YYYY-MM-DD)")
	totalCmd.Flags().String("to", "", "only items registered on or before this date (YYYY-MM-DD)")

	rootCmd.AddCommand(totalCmd)
}
