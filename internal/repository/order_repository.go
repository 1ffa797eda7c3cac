package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Gaurav-0801/E-com-Platform/internal/domain"
)

// OrderRepository persists completed checkouts. PlaceOrder is the only
// write path; orders are immutable once committed.
type OrderRepository interface {
	// PlaceOrder inserts the order and its lines and clears the user's
	// cart inside a single transaction. Either all three effects commit
	// or none do.
	PlaceOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) PlaceOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// No-op after a successful Commit.
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, user_id, customer_name, customer_email, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err = tx.QueryRowContext(
		ctx,
		orderQuery,
		order.ID,
		order.UserID,
		order.CustomerName,
		order.CustomerEmail,
		order.Total,
	).Scan(&order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range lines {
		lines[i].OrderID = order.ID
		err = tx.QueryRowContext(
			ctx,
			lineQuery,
			lines[i].OrderID,
			lines[i].ProductID,
			lines[i].ProductName,
			lines[i].ProductPrice,
			lines[i].Quantity,
			lines[i].Subtotal,
		).Scan(&lines[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return nil
}
