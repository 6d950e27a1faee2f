// AngelaMos | 2026
// repository.go

package sweet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sweetcorner/backend/internal/core"
)

// ErrInsufficientStock reports a purchase request that exceeds the current
// quantity. The conditional decrement leaves the row untouched in that case.
var ErrInsufficientStock = errors.New("insufficient stock")

type Repository interface {
	Create(ctx context.Context, sweet *Sweet) error
	GetByID(ctx context.Context, id string) (*Sweet, error)
	List(ctx context.Context) ([]Sweet, error)
	Find(ctx context.Context, filter Filter) ([]Sweet, error)
	Update(ctx context.Context, sweet *Sweet) error
	Delete(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, id string, qty int) (*Sweet, error)
	IncrementStock(ctx context.Context, id string, qty int) (*Sweet, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sweet *Sweet) error {
	query := `
		INSERT INTO sweets (id, name, price, category, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, sweet, query,
		sweet.ID,
		sweet.Name,
		sweet.Price,
		sweet.Category,
		sweet.Quantity,
		sweet.ImageURL,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create sweet: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create sweet: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Sweet, error) {
	query := `
		SELECT id, name, price, category, quantity, image_url,
		       created_at, updated_at
		FROM sweets
		WHERE id = $1`

	var sweet Sweet
	err := r.db.GetContext(ctx, &sweet, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get sweet: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get sweet: %w", err)
	}

	return &sweet, nil
}

func (r *repository) List(ctx context.Context) ([]Sweet, error) {
	query := `
		SELECT id, name, price, category, quantity, image_url,
		       created_at, updated_at
		FROM sweets`

	sweets := []Sweet{}
	if err := r.db.SelectContext(ctx, &sweets, query); err != nil {
		return nil, fmt.Errorf("list sweets: %w", err)
	}

	return sweets, nil
}

func (r *repository) Find(
	ctx context.Context,
	filter Filter,
) ([]Sweet, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if filter.NamePattern != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("name ILIKE $%d", argIdx),
		)
		args = append(args, "%"+escapeLike(filter.NamePattern)+"%")
		argIdx++
	}

	if filter.CategoryPattern != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("category ILIKE $%d", argIdx),
		)
		args = append(args, "%"+escapeLike(filter.CategoryPattern)+"%")
		argIdx++
	}

	if filter.PriceMin != nil {
		conditions = append(
			conditions,
			fmt.Sprintf("price >= $%d", argIdx),
		)
		args = append(args, *filter.PriceMin)
		argIdx++
	}

	if filter.PriceMax != nil {
		conditions = append(
			conditions,
			fmt.Sprintf("price <= $%d", argIdx),
		)
		args = append(args, *filter.PriceMax)
		argIdx++
	}

	query := `
		SELECT id, name, price, category, quantity, image_url,
		       created_at, updated_at
		FROM sweets`

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sweets := []Sweet{}
	if err := r.db.SelectContext(ctx, &sweets, query, args...); err != nil {
		return nil, fmt.Errorf("find sweets: %w", err)
	}

	return sweets, nil
}

func (r *repository) Update(ctx context.Context, sweet *Sweet) error {
	query := `
		UPDATE sweets
		SET name = $2, price = $3, category = $4, quantity = $5,
		    image_url = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &sweet.UpdatedAt, query,
		sweet.ID,
		sweet.Name,
		sweet.Price,
		sweet.Category,
		sweet.Quantity,
		sweet.ImageURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update sweet: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update sweet: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("update sweet: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sweets WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete sweet: %w", core.ErrNotFound)
	}

	return nil
}

// DecrementStock performs the purchase transition as a single conditional
// update: the row only matches while it holds enough stock, so concurrent
// purchases can never drive quantity negative.
func (r *repository) DecrementStock(
	ctx context.Context,
	id string,
	qty int,
) (*Sweet, error) {
	query := `
		UPDATE sweets
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
		RETURNING id, name, price, category, quantity, image_url,
		          created_at, updated_at`

	var sweet Sweet
	err := r.db.GetContext(ctx, &sweet, query, id, qty)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the sweet is missing or the stock check failed; look the
		// row up to report the right condition.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("decrement stock: %w", ErrInsufficientStock)
	}
	if err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	return &sweet, nil
}

func (r *repository) IncrementStock(
	ctx context.Context,
	id string,
	qty int,
) (*Sweet, error) {
	query := `
		UPDATE sweets
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, price, category, quantity, image_url,
		          created_at, updated_at`

	var sweet Sweet
	err := r.db.GetContext(ctx, &sweet, query, id, qty)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("increment stock: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("increment stock: %w", err)
	}

	return &sweet, nil
}

func (r *repository) ExistsByName(
	ctx context.Context,
	name string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM sweets WHERE name = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("check name exists: %w", err)
	}

	return exists, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
