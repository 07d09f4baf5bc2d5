// ABOUTME: Export and import functionality for shopping list data
// ABOUTME: Supports the YAML backup format shared by every backend

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/shoplist/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// BackupTool identifies backups written by this program.
const BackupTool = "shoplist"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string       `yaml:"version"`
	ExportedAt time.Time    `yaml:"exported_at"`
	Tool       string       `yaml:"tool"`
	ID         string       `yaml:"id"`
	Items      []ItemBackup `yaml:"items"`
}

// ItemBackup represents an item in the backup format.
// IDs are kept for reference; import assigns fresh ones.
type ItemBackup struct {
	ID           int64     `yaml:"id"`
	Description  string    `yaml:"description"`
	Quantity     int       `yaml:"quantity"`
	UnitPrice    string    `yaml:"unit_price"`
	RegisteredAt time.Time `yaml:"registered_at"`
}

// ExportToYAML exports all items to YAML format.
func ExportToYAML(ctx context.Context, repo Repository) ([]byte, error) {
	items, err := repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       BackupTool,
		ID:         uuid.NewString(),
		Items:      make([]ItemBackup, len(items)),
	}

	for i, item := range items {
		backup.Items[i] = ItemBackup{
			ID:           item.ID,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice.String(),
			RegisteredAt: item.RegisteredAt,
		}
	}

	return yaml.Marshal(backup)
}

// ParseBackup decodes and checks a YAML backup without touching any store.
func ParseBackup(data []byte) (*Backup, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}

	if backup.Tool != BackupTool {
		return nil, fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, BackupTool)
	}

	return &backup, nil
}

// ImportFromYAML inserts every item of a backup in file order and returns
// how many were written. Items get new IDs.
func ImportFromYAML(ctx context.Context, repo Repository, data []byte) (int, error) {
	backup, err := ParseBackup(data)
	if err != nil {
		return 0, err
	}

	// Check every row before writing any of them.
	items := make([]*models.Item, len(backup.Items))
	for i, ib := range backup.Items {
		price, err := decimal.NewFromString(ib.UnitPrice)
		if err != nil {
			return 0, fmt.Errorf("item %d: invalid unit price %q: %w", i+1, ib.UnitPrice, err)
		}
		item := &models.Item{
			Description:  ib.Description,
			Quantity:     ib.Quantity,
			UnitPrice:    price,
			RegisteredAt: ib.RegisteredAt.In(time.Local),
		}
		if err := item.Validate(); err != nil {
			return 0, fmt.Errorf("item %d: %w", i+1, err)
		}
		items[i] = item
	}

	for i, item := range items {
		if _, err := repo.Insert(ctx, item); err != nil {
			return i, fmt.Errorf("insert %q: %w", item.Description, err)
		}
	}

	return len(items), nil
}
