// AngelaMos | 2026
// repository_test.go

package sweet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/sweetcorner/backend/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func sweetRows(s *Sweet) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "price", "category", "quantity", "image_url",
		"created_at", "updated_at",
	}).AddRow(
		s.ID, s.Name, s.Price, s.Category, s.Quantity, s.ImageURL,
		s.CreatedAt, s.UpdatedAt,
	)
}

func TestDecrementStock_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	want := &Sweet{
		ID:        "s1",
		Name:      "Ladoo",
		Price:     5.50,
		Category:  "indian",
		Quantity:  7,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery(`UPDATE sweets\s+SET quantity = quantity - \$2`).
		WithArgs("s1", 3).
		WillReturnRows(sweetRows(want))

	got, err := repo.DecrementStock(context.Background(), "s1", 3)
	if err != nil {
		t.Fatalf("DecrementStock failed: %v", err)
	}
	if got.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", got.Quantity)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecrementStock_InsufficientStock(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	existing := &Sweet{
		ID:        "s1",
		Name:      "Ladoo",
		Price:     5.50,
		Category:  "indian",
		Quantity:  2,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// conditional update matches no row, then the lookup finds the sweet
	mock.ExpectQuery(`UPDATE sweets\s+SET quantity = quantity - \$2`).
		WithArgs("s1", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery(`SELECT id, name, price, category`).
		WithArgs("s1").
		WillReturnRows(sweetRows(existing))

	_, err := repo.DecrementStock(context.Background(), "s1", 5)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecrementStock_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE sweets\s+SET quantity = quantity - \$2`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectQuery(`SELECT id, name, price, category`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.DecrementStock(context.Background(), "missing", 1)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIncrementStock_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	want := &Sweet{
		ID:        "s1",
		Name:      "Barfi",
		Price:     4.00,
		Category:  "indian",
		Quantity:  15,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery(`UPDATE sweets\s+SET quantity = quantity \+ \$2`).
		WithArgs("s1", 10).
		WillReturnRows(sweetRows(want))

	got, err := repo.IncrementStock(context.Background(), "s1", 10)
	if err != nil {
		t.Fatalf("IncrementStock failed: %v", err)
	}
	if got.Quantity != 15 {
		t.Errorf("expected quantity 15, got %d", got.Quantity)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO sweets`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &Sweet{
		ID:       "s2",
		Name:     "Ladoo",
		Price:    5.50,
		Category: "indian",
	})
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM sweets WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFind_BuildsConditions(t *testing.T) {
	repo, mock := newMockRepo(t)

	minPrice := 2.0
	maxPrice := 10.0

	mock.ExpectQuery(
		`FROM sweets\s+WHERE name ILIKE \$1 AND price >= \$2 AND price <= \$3`,
	).
		WithArgs("%ladoo%", minPrice, maxPrice).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "price", "category", "quantity", "image_url",
			"created_at", "updated_at",
		}))

	_, err := repo.Find(context.Background(), Filter{
		NamePattern: "ladoo",
		PriceMin:    &minPrice,
		PriceMax:    &maxPrice,
	})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFind_EscapesLikeWildcards(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM sweets\s+WHERE name ILIKE \$1`).
		WithArgs(`%50\% off%`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "price", "category", "quantity", "image_url",
			"created_at", "updated_at",
		}))

	_, err := repo.Find(context.Background(), Filter{
		NamePattern: "50% off",
	})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
}
