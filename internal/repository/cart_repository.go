package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Gaurav-0801/E-com-Platform/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrCartLineNotFound = errors.New("cart item not found")
)

// CartRow is a cart line joined to current product data, before any
// money arithmetic is applied.
type CartRow struct {
	ID        int64
	ProductID int64
	Name      string
	Price     decimal.Decimal
	ImageURL  string
	Quantity  int
}

// CartRepository defines the interface for cart data access. One row per
// (user, product) pair is enforced by a unique constraint; Upsert relies
// on it to overwrite quantity instead of duplicating lines.
type CartRepository interface {
	Upsert(ctx context.Context, userID string, productID int64, quantity int) (*domain.CartLine, error)
	ListForUser(ctx context.Context, userID string) ([]CartRow, error)
	DeleteForUser(ctx context.Context, userID string, lineID int64) error
}

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepository{db: db}
}

// Upsert inserts a cart line or, when the (user, product) pair already
// exists, overwrites its quantity and stamps updated_at.
func (r *cartRepository) Upsert(ctx context.Context, userID string, productID int64, quantity int) (*domain.CartLine, error) {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = $3, updated_at = CURRENT_TIMESTAMP
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`

	line := &domain.CartLine{}
	err := r.db.QueryRowContext(ctx, query, userID, productID, quantity).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.CreatedAt,
		&line.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return line, nil
}

// ListForUser retrieves the user's cart lines joined to current product
// data, most recently added first.
func (r *cartRepository) ListForUser(ctx context.Context, userID string) ([]CartRow, error) {
	query := `
		SELECT ci.id, p.id, p.name, p.price, p.image_url, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at DESC, ci.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	items := []CartRow{}
	for rows.Next() {
		var row CartRow
		err := rows.Scan(
			&row.ID,
			&row.ProductID,
			&row.Name,
			&row.Price,
			&row.ImageURL,
			&row.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// DeleteForUser removes a cart line only when it belongs to the given
// user. A line owned by another user reports not-found, never its
// existence.
func (r *cartRepository) DeleteForUser(ctx context.Context, userID string, lineID int64) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, lineID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrCartLineNotFound
	}

	return nil
}
