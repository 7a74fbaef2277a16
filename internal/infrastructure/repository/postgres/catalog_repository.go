package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gourmetline/catalog-ingest/internal/core/domain"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *CatalogRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083001)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE CHECK (char_length(name) BETWEEN 1 AND 50),
	icon TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE CHECK (char_length(name) BETWEEN 1 AND 200),
	description TEXT NOT NULL DEFAULT '' CHECK (char_length(description) <= 500),
	price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
	category TEXT NOT NULL,
	weight TEXT NOT NULL DEFAULT '',
	ingredients JSONB NOT NULL DEFAULT '[]'::jsonb,
	stock INTEGER NOT NULL CHECK (stock >= 0),
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// CreateCategoryIfAbsent inserts the category unless one with the exact
// name already exists. ON CONFLICT DO NOTHING makes the check-and-create
// atomic, so concurrent commits of the same document converge to a single
// creation.
func (r *CatalogRepository) CreateCategoryIfAbsent(ctx context.Context, category *domain.Category) (domain.CreateOutcome, error) {
	result, err := r.db.ExecContext(ctx, `
INSERT INTO categories (id, name, icon, description, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (name) DO NOTHING
`,
		category.ID, category.Name, category.Icon, category.Description, category.IsActive, category.CreatedAt,
	)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("insert category: %w", err)
	}
	return outcomeFromResult(result)
}

func (r *CatalogRepository) CreateProductIfAbsent(ctx context.Context, product *domain.Product) (domain.CreateOutcome, error) {
	ingredientsJSON, err := json.Marshal(product.Ingredients)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("marshal ingredients: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
INSERT INTO products (id, name, description, price, category, weight, ingredients, stock, is_active, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (name) DO NOTHING
`,
		product.ID, product.Name, product.Description, product.Price, product.Category,
		product.Weight, ingredientsJSON, product.Stock, product.IsActive, product.CreatedAt,
	)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("insert product: %w", err)
	}
	return outcomeFromResult(result)
}

func (r *CatalogRepository) CategoryExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}
	return exists, nil
}

func (r *CatalogRepository) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM categories`)
}

func (r *CatalogRepository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products`)
}

func (r *CatalogRepository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func outcomeFromResult(result sql.Result) (domain.CreateOutcome, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.OutcomeSkipped, nil
	}
	return domain.OutcomeCreated, nil
}
