// ABOUTME: Shoplist search command
// ABOUTME: Finds items by case-insensitive description match in the store

package main

import (
	"fmt"
	"strings"

	"github.com/harper/shoplist/internal/models"
	"github.com/harper/shoplist/internal/ui"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"s", "find"},
	Short:   "Find items whose description contains the query",
	Long: `Find items whose description contains the query, ignoring case.
Wildcard characters such as % and _ match literally.

Examples:
  shoplist search arroz
  shoplist search "5kg"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if repo == nil {
			return fmt.Errorf("storage is not open")
		}
		query := strings.Join(args, " ")

		items, err := repo.Search(cmdContext(cmd), query)
		if err != nil {
			return fmt.Errorf("failed to search items: %w", err)
		}

		out := cmd.OutOrStdout()
		f := currentFormat()
		_, _ = fmt.Fprintln(out, ui.FormatItemList(items, f))
		_, _ = fmt.Fprintln(out, ui.FormatTotal(models.Total(items), len(items), f))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
