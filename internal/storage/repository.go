// ABOUTME: Repository interface for shopping list storage
// ABOUTME: Enables testability and storage backend swapping

package storage

import (
	"context"
	"sort"

	"github.com/harper/shoplist/internal/models"
	"github.com/harper/shoplist/internal/textmatch"
)

// Repository persists shopping list items.
//
// ListAll and Search order by description (byte order) and then by ID.
// Update and Delete report the number of affected rows; zero is not an error.
type Repository interface {
	ListAll(ctx context.Context) ([]models.Item, error)
	Search(ctx context.Context, query string) ([]models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Insert(ctx context.Context, item *models.Item) (int64, error)
	Update(ctx context.Context, item *models.Item) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Reset(ctx context.Context) error
	Close() error
}

// sortItems applies the repository ordering to items held in memory.
func sortItems(items []models.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Description != items[j].Description {
			return items[i].Description < items[j].Description
		}
		return items[i].ID < items[j].ID
	})
}

// filterItems keeps the items whose description contains query, ignoring case.
func filterItems(items []models.Item, query string) []models.Item {
	out := items[:0]
	for _, item := range items {
		if textmatch.Contains(item.Description, query) {
			out = append(out, item)
		}
	}
	return out
}
