package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/gourmetline/catalog-ingest/internal/core/domain"
)

func newMockRepo(t *testing.T) (*CatalogRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return NewCatalogRepository(db), mock, func() { db.Close() }
}

func sampleCategory() *domain.Category {
	return &domain.Category{
		ID:          "c-1",
		Name:        "Chocolates",
		Icon:        "🍫",
		Description: "Created from price list import",
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:          "p-1",
		Name:        "Dalfi Dark Chocolate",
		Description: "Dalfi Dark Chocolate - High quality product.",
		Price:       9.99,
		Category:    "Chocolates",
		Weight:      "100g",
		Ingredients: []string{},
		Stock:       100,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestCreateCategoryIfAbsentCreated(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	category := sampleCategory()
	mock.ExpectExec("INSERT INTO categories").
		WithArgs(category.ID, category.Name, category.Icon, category.Description, category.IsActive, category.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	outcome, err := repo.CreateCategoryIfAbsent(context.Background(), category)
	if err != nil {
		t.Fatalf("CreateCategoryIfAbsent() error = %v", err)
	}
	if outcome != domain.OutcomeCreated {
		t.Fatalf("outcome = %v", outcome)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateCategoryIfAbsentSkippedOnConflict(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec("INSERT INTO categories").
		WillReturnResult(sqlmock.NewResult(0, 0))

	outcome, err := repo.CreateCategoryIfAbsent(context.Background(), sampleCategory())
	if err != nil {
		t.Fatalf("CreateCategoryIfAbsent() error = %v", err)
	}
	if outcome != domain.OutcomeSkipped {
		t.Fatalf("outcome = %v", outcome)
	}
}

func TestCreateProductIfAbsentCreated(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	product := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(product.ID, product.Name, product.Description, product.Price, product.Category,
			product.Weight, []byte("[]"), product.Stock, product.IsActive, product.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	outcome, err := repo.CreateProductIfAbsent(context.Background(), product)
	if err != nil {
		t.Fatalf("CreateProductIfAbsent() error = %v", err)
	}
	if outcome != domain.OutcomeCreated {
		t.Fatalf("outcome = %v", outcome)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestCreateProductIfAbsentSkippedOnConflict(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec("INSERT INTO products").
		WillReturnResult(sqlmock.NewResult(0, 0))

	outcome, err := repo.CreateProductIfAbsent(context.Background(), sampleProduct())
	if err != nil {
		t.Fatalf("CreateProductIfAbsent() error = %v", err)
	}
	if outcome != domain.OutcomeSkipped {
		t.Fatalf("outcome = %v", outcome)
	}
}

func TestCreateProductIfAbsentFailedOnExecError(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec("INSERT INTO products").
		WillReturnError(errors.New("connection reset"))

	outcome, err := repo.CreateProductIfAbsent(context.Background(), sampleProduct())
	if err == nil {
		t.Fatalf("expected error")
	}
	if outcome != domain.OutcomeFailed {
		t.Fatalf("outcome = %v", outcome)
	}
}

func TestCategoryExists(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("Chocolates").
		WillReturnRows(rows)

	exists, err := repo.CategoryExists(context.Background(), "Chocolates")
	if err != nil {
		t.Fatalf("CategoryExists() error = %v", err)
	}
	if !exists {
		t.Fatalf("expected true")
	}
}

func TestCountProducts(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(42))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(rows)

	n, err := repo.CountProducts(context.Background())
	if err != nil {
		t.Fatalf("CountProducts() error = %v", err)
	}
	if n != 42 {
		t.Fatalf("count = %d", n)
	}
}

func TestEnsureSchemaRunsInTransaction(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock").
		WithArgs(int64(2026083001)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS categories").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
