// ABOUTME: Migration command for converting list data between storage backends
// ABOUTME: Supports sqlite-to-badger and badger-to-sqlite with safety checks

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/shoplist/internal/config"
	"github.com/harper/shoplist/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Migrate every item from the currently configured backend to a different backend.

Reads items from the current backend and writes them to the target backend.
Ids are reassigned in list order. Does NOT update the config file; verify the
migration was successful then update config.json manually.

Examples:
  shoplist migrate --to badger
  shoplist migrate --to sqlite --data-dir ~/shoplist-sqlite
  shoplist migrate --to badger --force`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

var (
	migrateTo      string
	migrateDataDir string
	migrateForce   bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (sqlite or badger)")
	migrateCmd.Flags().StringVar(&migrateDataDir, "data-dir", "", "target data directory (defaults to current config data_dir)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a target that already has data")
	_ = migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if repo == nil || appConfig == nil {
		return fmt.Errorf("storage is not open")
	}

	sourceBackend := appConfig.GetBackend()
	sourceDataDir := appConfig.GetDataDir()
	targetBackend := migrateTo

	if targetBackend != config.BackendSQLite && targetBackend != config.BackendBadger {
		return fmt.Errorf("invalid target backend %q: must be \"sqlite\" or \"badger\"", targetBackend)
	}

	targetDataDir := sourceDataDir
	if migrateDataDir != "" {
		targetDataDir = config.ExpandPath(migrateDataDir)
	}
	if targetBackend == sourceBackend && targetDataDir == sourceDataDir {
		return fmt.Errorf("target backend %q is the same as the current backend", targetBackend)
	}

	hasData, err := targetHasData(targetBackend, targetDataDir)
	if err != nil {
		return fmt.Errorf("check target: %w", err)
	}
	if hasData && !migrateForce {
		return fmt.Errorf("target %s storage in %q already has data; use --force to write into it", targetBackend, targetDataDir)
	}

	dst, err := config.OpenBackend(targetBackend, targetDataDir, slog.Default())
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", targetBackend, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: closing target storage: %v\n", cerr)
		}
	}()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, color.YellowString("Migrating shopping list:"))
	_, _ = fmt.Fprintf(out, "  Source:  %s (%s)\n", sourceBackend, sourceDataDir)
	_, _ = fmt.Fprintf(out, "  Target:  %s (%s)\n", targetBackend, targetDataDir)
	_, _ = fmt.Fprintln(out)

	summary, err := storage.MigrateData(cmdContext(cmd), repo, dst)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	_, _ = fmt.Fprintln(out, color.GreenString("Migration complete!"))
	_, _ = fmt.Fprintf(out, "  Items: %d\n", summary.Items)
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, color.YellowString("Note: config.json was NOT updated. To switch to the new backend, edit:"))
	_, _ = fmt.Fprintf(out, "  %s\n", config.GetConfigPath())
	_, _ = fmt.Fprintf(out, "  Set \"backend\": %q", targetBackend)
	if migrateDataDir != "" {
		_, _ = fmt.Fprintf(out, " and \"data_dir\": %q", migrateDataDir)
	}
	_, _ = fmt.Fprintln(out)

	return nil
}

// targetHasData reports whether backend already keeps data under dataDir.
func targetHasData(backend, dataDir string) (bool, error) {
	switch backend {
	case config.BackendSQLite:
		_, err := os.Stat(config.DBPath(dataDir))
		if err == nil {
			return true, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	default:
		return storage.IsDirNonEmpty(config.BadgerDir(dataDir))
	}
}
