// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up logging, config, the storage backend, and the shared view model

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/harper/shoplist/internal/config"
	"github.com/harper/shoplist/internal/locale"
	"github.com/harper/shoplist/internal/storage"
	"github.com/harper/shoplist/internal/viewmodel"
	"github.com/spf13/cobra"
)

var (
	repo      storage.Repository
	appConfig *config.Config
	format    *locale.Format

	verbose    bool
	logPath    string
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "shoplist",
	Short: "Shopping list with running totals",
	Long: `
███████╗██╗  ██╗ ██████╗ ██████╗ ██╗     ██╗███████╗████████╗
██╔════╝██║  ██║██╔═══██╗██╔══██╗██║     ██║██╔════╝╚══██╔══╝
███████╗███████║██║   ██║██████╔╝██║     ██║███████╗   ██║
╚════██║██╔══██║██║   ██║██╔═══╝ ██║     ██║╚════██║   ██║
███████║██║  ██║╚██████╔╝██║     ███████╗██║███████║   ██║
╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚══════╝╚═╝╚══════╝   ╚═╝

         Keep a shopping list and know what it costs

Examples:
  shoplist add "Arroz 5kg" 1 27,90
  shoplist list
  shoplist search arroz
  shoplist total`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupLogger(verbose, logPath)
		if err != nil {
			return err
		}
		logCleanup = cleanup

		appConfig, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		format, err = appConfig.Format()
		if err != nil {
			return fmt.Errorf("invalid locale settings: %w", err)
		}

		repo, err = appConfig.OpenStorage(slog.Default())
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", appConfig.GetBackend(), err)
		}
		slog.Debug("storage opened", "backend", appConfig.GetBackend(), "data_dir", appConfig.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			if logCleanup != nil {
				logCleanup()
				logCleanup = nil
			}
		}()
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", "", "also append logs to this file")
}

// setupLogger installs a text handler on stderr, WARN by default and DEBUG
// when verbose. If path is non-empty, records are also appended to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(debug bool, path string) (func(), error) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	var cleanup func()
	w := io.Writer(os.Stderr)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { _ = f.Close() }
		w = io.MultiWriter(os.Stderr, f)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return cleanup, nil
}

// cmdContext returns the command context, or Background when run outside Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func currentFormat() *locale.Format {
	if format == nil {
		return locale.Default()
	}
	return format
}

// openViewModel builds a view model over repo with a terminal prompter bound
// to the command's streams, and loads the list.
func openViewModel(cmd *cobra.Command, assumeYes bool, opts ...viewmodel.Option) (*viewmodel.ViewModel, error) {
	if repo == nil {
		return nil, fmt.Errorf("storage is not open")
	}

	base := []viewmodel.Option{
		viewmodel.WithFormat(currentFormat()),
		viewmodel.WithPrompter(newTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), assumeYes)),
		viewmodel.WithLogger(slog.Default()),
	}
	if appConfig != nil {
		base = append(base, viewmodel.WithDebounce(appConfig.GetSearchDebounce()))
	}

	vm := viewmodel.New(repo, append(base, opts...)...)
	if err := vm.Reload(cmdContext(cmd)); err != nil {
		vm.Close()
		return nil, err
	}
	return vm, nil
}
