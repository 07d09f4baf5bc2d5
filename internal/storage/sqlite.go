// ABOUTME: SQLite storage implementation for shopping list items
// ABOUTME: Provides local-only persistence using pure Go SQLite driver and sqlx

package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/shoplist/internal/models"
	"github.com/harper/shoplist/internal/textmatch"
	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
)

const driverName = "sqlite"

const schema = `
	CREATE TABLE IF NOT EXISTS Produto (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Descricao TEXT NOT NULL,
		Quantidade INTEGER NOT NULL DEFAULT 0,
		Preco TEXT NOT NULL DEFAULT '0',
		DataCadastro DATETIME NOT NULL
	);
`

const selectColumns = `SELECT Id, Descricao, Quantidade, Preco, DataCadastro FROM Produto`

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)

	// fold lets queries compare descriptions with the same Unicode case
	// folding the in-memory filter uses.
	if err := sqlite.RegisterDeterministicScalarFunction("fold", 1,
		func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case nil:
				return nil, nil
			case string:
				return textmatch.Fold(v), nil
			case []byte:
				return textmatch.Fold(string(v)), nil
			default:
				return textmatch.Fold(fmt.Sprint(v)), nil
			}
		}); err != nil {
		panic(fmt.Sprintf("register fold function: %v", err))
	}
}

// SQLiteDB implements Repository with a local SQLite database.
type SQLiteDB struct {
	db     *sqlx.DB
	path   string
	logger *slog.Logger
}

// Compile-time check that SQLiteDB implements Repository.
var _ Repository = (*SQLiteDB)(nil)

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "shoplist", "shoplist.db")
}

// NewSQLiteDB opens the database at path, creating the directory, the file
// and the schema when missing. A nil logger falls back to slog.Default.
func NewSQLiteDB(path string, logger *slog.Logger) (*SQLiteDB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := path
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
			return nil, &Error{Op: "open", Err: fmt.Errorf("create directory: %w", err)}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	// Single writer; also keeps an in-memory database on one connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	s := &SQLiteDB{db: sqlx.NewDb(conn, driverName), path: path, logger: logger}

	if err := s.migrate(context.Background()); err != nil {
		_ = conn.Close()
		return nil, &Error{Op: "migrate", Err: err}
	}

	logger.Debug("opened sqlite store", "path", path)
	return s, nil
}

// migrate creates the schema if it does not exist yet.
func (s *SQLiteDB) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteDB) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Reset drops and recreates the table. The AUTOINCREMENT sequence goes
// with the table, so IDs start at 1 again.
func (s *SQLiteDB) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS Produto"); err != nil {
		return wrapErr("reset", err)
	}
	if err := s.migrate(ctx); err != nil {
		return wrapErr("reset", err)
	}
	s.logger.Info("reset shopping list", "backend", "sqlite")
	return nil
}

// ListAll returns every item sorted by description.
func (s *SQLiteDB) ListAll(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	err := s.db.SelectContext(ctx, &items, selectColumns+" ORDER BY Descricao, Id")
	if err != nil {
		return nil, wrapErr("list", err)
	}
	return items, nil
}

// Search returns the items whose description contains query, ignoring case.
// A blank query returns every item.
func (s *SQLiteDB) Search(ctx context.Context, query string) ([]models.Item, error) {
	if textmatch.Normalize(query) == "" {
		return s.ListAll(ctx)
	}

	items := []models.Item{}
	err := s.db.SelectContext(ctx, &items,
		selectColumns+` WHERE fold(Descricao) LIKE ? ESCAPE '`+textmatch.LikeEscape+`' ORDER BY Descricao, Id`,
		textmatch.LikePattern(query),
	)
	if err != nil {
		return nil, wrapErr("search", err)
	}
	return items, nil
}

// Get retrieves a single item by ID.
func (s *SQLiteDB) Get(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := s.db.GetContext(ctx, &item, selectColumns+" WHERE Id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get", err)
	}
	return &item, nil
}

// Insert stores a new item and assigns its ID.
func (s *SQLiteDB) Insert(ctx context.Context, item *models.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	if item.RegisteredAt.IsZero() {
		item.RegisteredAt = time.Now()
	}

	r, err := s.db.NamedExecContext(ctx, `
		INSERT INTO Produto (Descricao, Quantidade, Preco, DataCadastro)
		VALUES (:Descricao, :Quantidade, :Preco, :DataCadastro)`, item)
	if err != nil {
		return 0, wrapErr("insert", err)
	}
	id, err := getNewInsertedID(r)
	if err != nil {
		return 0, wrapErr("insert", err)
	}
	item.ID = id
	return id, nil
}

// Update replaces the stored fields of the item with the same ID.
func (s *SQLiteDB) Update(ctx context.Context, item *models.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}
	if item.RegisteredAt.IsZero() {
		item.RegisteredAt = time.Now()
	}

	r, err := s.db.NamedExecContext(ctx, `
		UPDATE Produto
		   SET Descricao = :Descricao,
		       Quantidade = :Quantidade,
		       Preco = :Preco,
		       DataCadastro = :DataCadastro
		 WHERE Id = :Id`, item)
	if err != nil {
		return 0, wrapErr("update", err)
	}
	n, err := r.RowsAffected()
	if err != nil {
		return 0, wrapErr("update", err)
	}
	return n, nil
}

// Delete removes the item with the given ID.
func (s *SQLiteDB) Delete(ctx context.Context, id int64) (int64, error) {
	r, err := s.db.ExecContext(ctx, "DELETE FROM Produto WHERE Id = ?", id)
	if err != nil {
		return 0, wrapErr("delete", err)
	}
	n, err := r.RowsAffected()
	if err != nil {
		return 0, wrapErr("delete", err)
	}
	return n, nil
}

func getNewInsertedID(r sql.Result) (int64, error) {
	id, err := r.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("row was not inserted")
	}
	return id, nil
}
