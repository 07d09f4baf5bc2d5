// ABOUTME: Data migration between shopping list storage backends
// ABOUTME: Copies items from source to destination repository

package storage

import (
	"context"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Items int
}

// MigrateData copies all items from src to dst in list order.
// Destination IDs are assigned by dst, so dst should be empty.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	items, err := src.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source items: %w", err)
	}

	for i := range items {
		item := items[i]
		item.ID = 0
		if _, err := dst.Insert(ctx, &item); err != nil {
			return summary, fmt.Errorf("create item %q: %w", item.Description, err)
		}
		summary.Items++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
