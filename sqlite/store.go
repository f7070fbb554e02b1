// Package sqlite provides a SQLite-backed catalog.ProductStore.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fluxmart/catalog"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    description    TEXT NOT NULL,
    price          REAL NOT NULL,
    stock_quantity INTEGER NOT NULL,
    created_at     INTEGER NOT NULL,
    updated_at     INTEGER NOT NULL
);
`

// Store persists products in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ catalog.ProductStore = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite product store and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Insert persists a new product under a generated UUID. Identifiers are
// never reused: a deleted id is gone for good.
func (s *Store) Insert(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Product{}, err
	}
	now := toMillis(time.Now())
	id := uuid.NewString()

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO products (
		   id, name, description, price, stock_quantity, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		in.Name,
		in.Description,
		in.Price,
		in.Stock,
		now,
		now,
	)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return catalog.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}, nil
}

// Find returns the product for id, or catalog.ErrNotFound.
func (s *Store) Find(ctx context.Context, id string) (catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Product{}, err
	}
	var p catalog.Product
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, description, price, stock_quantity
		 FROM products WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

// ApplyPatch updates only the set fields of patch and returns the
// resulting row. An empty patch is a read. The single UPDATE statement
// keeps the write atomic per record.
func (s *Store) ApplyPatch(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Product{}, err
	}
	if patch.Empty() {
		return s.Find(ctx, id)
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *patch.Price)
	}
	if patch.Stock != nil {
		sets = append(sets, "stock_quantity = ?")
		args = append(args, *patch.Stock)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, toMillis(time.Now()), id)

	res, err := s.sqlDB.ExecContext(
		ctx,
		"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return catalog.Product{}, fmt.Errorf("update product: rows affected: %w", err)
	}
	if n == 0 {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return s.Find(ctx, id)
}

// Remove deletes the product for id, or returns catalog.ErrNotFound.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: rows affected: %w", err)
	}
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Count returns the number of stored products. Used to decide whether to
// seed a fresh database.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Seed inserts the given products. Intended for first-boot population of
// an empty database.
func (s *Store) Seed(ctx context.Context, inputs []catalog.ProductInput) error {
	for _, in := range inputs {
		if _, err := s.Insert(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
