// ABOUTME: Badger key/value storage implementation for shopping list items
// ABOUTME: Stores items as JSON under sortable ID keys with a stored ID sequence

package storage

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harper/shoplist/internal/models"
)

// Key prefixes for type-based organization.
const (
	ItemPrefix = "item:"
	nextIDKey  = "meta:next_id"
)

// BadgerStore implements Repository on an embedded Badger database.
type BadgerStore struct {
	db     *badger.DB
	dir    string
	logger *slog.Logger
}

// Compile-time check that BadgerStore implements Repository.
var _ Repository = (*BadgerStore)(nil)

// NewBadgerStore opens (or creates) a Badger database in dir.
func NewBadgerStore(dir string, logger *slog.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, &Error{Op: "open", Err: fmt.Errorf("create directory: %w", err)}
	}
	return openBadger(badger.DefaultOptions(dir), dir, logger)
}

// NewMemoryBadgerStore opens a Badger database that lives only in memory.
func NewMemoryBadgerStore(logger *slog.Logger) (*BadgerStore, error) {
	return openBadger(badger.DefaultOptions("").WithInMemory(true), "", logger)
}

func openBadger(opts badger.Options, dir string, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	logger.Debug("opened badger store", "dir", dir)
	return &BadgerStore{db: db, dir: dir, logger: logger}, nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}

func itemKey(id int64) []byte {
	return []byte(fmt.Sprintf("%s%020d", ItemPrefix, id))
}

// Reset removes every key, including the ID sequence.
func (b *BadgerStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.db.DropAll(); err != nil {
		return wrapErr("reset", err)
	}
	b.logger.Info("reset shopping list", "backend", "badger")
	return nil
}

// ListAll returns every item sorted by description.
func (b *BadgerStore) ListAll(ctx context.Context) ([]models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := []models.Item{}
	prefix := []byte(ItemPrefix)
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var item models.Item
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return fmt.Errorf("unmarshal %s: %w", it.Item().Key(), err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr("list", err)
	}

	sortItems(items)
	return items, nil
}

// Search returns the items whose description contains query, ignoring case.
func (b *BadgerStore) Search(ctx context.Context, query string) ([]models.Item, error) {
	items, err := b.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterItems(items, query), nil
}

// Get retrieves a single item by ID.
func (b *BadgerStore) Get(ctx context.Context, id int64) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item models.Item
	err := b.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(id))
		if err != nil {
			return err
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get", err)
	}
	return &item, nil
}

// Insert stores a new item under the next ID in the sequence.
func (b *BadgerStore) Insert(ctx context.Context, item *models.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if item.RegisteredAt.IsZero() {
		item.RegisteredAt = time.Now()
	}

	stored := *item
	err := b.db.Update(func(txn *badger.Txn) error {
		id, err := nextID(txn)
		if err != nil {
			return err
		}
		stored.ID = id

		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshal item: %w", err)
		}
		return txn.Set(itemKey(id), data)
	})
	if err != nil {
		return 0, wrapErr("insert", err)
	}

	item.ID = stored.ID
	return stored.ID, nil
}

// nextID advances the stored sequence and returns the new value.
func nextID(txn *badger.Txn) (int64, error) {
	var last int64
	entry, err := txn.Get([]byte(nextIDKey))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return 0, err
	default:
		if err := entry.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt id sequence: %d bytes", len(val))
			}
			last = int64(binary.BigEndian.Uint64(val))
			return nil
		}); err != nil {
			return 0, err
		}
	}

	next := last + 1
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(next))
	if err := txn.Set([]byte(nextIDKey), buf); err != nil {
		return 0, err
	}
	return next, nil
}

// Update replaces the item with the same ID if it exists.
func (b *BadgerStore) Update(ctx context.Context, item *models.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if item.RegisteredAt.IsZero() {
		item.RegisteredAt = time.Now()
	}

	var affected int64
	err := b.db.Update(func(txn *badger.Txn) error {
		key := itemKey(item.ID)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal item: %w", err)
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	if err != nil {
		return 0, wrapErr("update", err)
	}
	return affected, nil
}

// Delete removes the item with the given ID if it exists.
func (b *BadgerStore) Delete(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var affected int64
	err := b.db.Update(func(txn *badger.Txn) error {
		key := itemKey(id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	if err != nil {
		return 0, wrapErr("delete", err)
	}
	return affected, nil
}
