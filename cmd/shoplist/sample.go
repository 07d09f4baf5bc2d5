// ABOUTME: Shoplist sample command
// ABOUTME: Inserts the example row used to try the list out

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/ui"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Add an example item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, err := openViewModel(cmd, false)
		if err != nil {
			return err
		}
		defer vm.Close()

		item, err := vm.AddSample(cmdContext(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, color.GreenString("✓ Added sample item"))
		_, _ = fmt.Fprintln(out, "  "+ui.FormatItem(item, currentFormat()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
