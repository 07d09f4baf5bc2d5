// ABOUTME: Shoplist browse command
// ABOUTME: Feeds search text lines from stdin through the debounced view model

package main

import (
	"bufio"
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harper/shoplist/internal/viewmodel"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Filter the list interactively",
	Long: `Read search text from stdin, one line per keystroke batch, and print the
filtered list once input has been quiet for the debounce period.
Lines that are superseded before the quiet period ends are never applied.

Examples:
  shoplist browse
  printf 'a\nar\narr\n' | shoplist browse`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []viewmodel.Option
		if cmd.Flags().Changed("debounce") {
			d, _ := cmd.Flags().GetDuration("debounce")
			opts = append(opts, viewmodel.WithDebounce(d))
		}

		vm, err := openViewModel(cmd, false, opts...)
		if err != nil {
			return err
		}
		defer vm.Close()

		out := cmd.OutOrStdout()
		var mu sync.Mutex
		applied := make(chan string, 64)
		unsubscribe := vm.Subscribe(func(snap viewmodel.Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			_, _ = fmt.Fprintln(out, color.New(color.Bold).Sprintf("Search: %q", snap.Query))
			printItems(cmd, snap)
			select {
			case applied <- snap.Query:
			default:
			}
		})
		defer unsubscribe()

		mu.Lock()
		printItems(cmd, vm.Snapshot())
		mu.Unlock()

		var (
			last string
			sent bool
		)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			last = scanner.Text()
			sent = true
			vm.OnSearchTextChanged(last)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read search input: %w", err)
		}
		if !sent {
			return nil
		}

		timeout := time.After(browseWait(cmd))
		ctx := cmdContext(cmd)
		for {
			select {
			case q := <-applied:
				if q == last {
					return nil
				}
			case <-timeout:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	},
}

// browseWait bounds how long browse waits for the last line to be applied.
func browseWait(cmd *cobra.Command) time.Duration {
	d := viewmodel.DefaultDebounce
	if appConfig != nil {
		d = appConfig.GetSearchDebounce()
	}
	if cmd.Flags().Changed("debounce") {
		d, _ = cmd.Flags().GetDuration("debounce")
	}
	return 2*d + 2*time.Second
}

func init() {
	browseCmd.Flags().Duration("debounce", 0, "quiet period before applying search text (default from config)")

	rootCmd.AddCommand(browseCmd)
}
