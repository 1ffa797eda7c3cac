package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (user, product, quantity) row. At most one line exists
// per user/product pair; adding the same product again overwrites the
// quantity instead of creating a second line.
type CartLine struct {
	ID        int64     `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CartView is a cart line joined to current product data, as returned to
// the client. Subtotal is quantity × current price, rounded to 2 decimals.
type CartView struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Cart is the full cart payload: lines ordered most-recently-added first
// plus the running total.
type Cart struct {
	Items []CartView      `json:"items"`
	Total decimal.Decimal `json:"total"`
}
