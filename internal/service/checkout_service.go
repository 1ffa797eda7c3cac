package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Gaurav-0801/E-com-Platform/internal/domain"
	"github.com/Gaurav-0801/E-com-Platform/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SnapshotLine is one entry of the cart snapshot submitted for checkout.
// Quantities are taken from the snapshot, never re-read from the live
// cart; prices are always re-read from the catalog.
type SnapshotLine struct {
	ProductID int64
	Quantity  int
}

// CheckoutInput is everything the checkout needs from the caller.
type CheckoutInput struct {
	UserID string
	Name   string
	Email  string
	Items  []SnapshotLine
}

// CheckoutService converts a cart snapshot into a persisted order with a
// receipt. Order, order lines, and the cart clear commit atomically.
type CheckoutService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Receipt, error)
}

type checkoutService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository) CheckoutService {
	return &checkoutService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, input CheckoutInput) (*domain.Receipt, error) {
	// Fail fast on customer details before touching storage.
	var bad []string
	if strings.TrimSpace(input.Name) == "" {
		bad = append(bad, "name")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		bad = append(bad, "email")
	}
	if len(bad) > 0 {
		return nil, NewValidationError("invalid customer details", bad...)
	}

	// An already-emptied snapshot must fail, never produce a zero-total
	// order.
	if len(input.Items) == 0 {
		return nil, NewValidationError("cart items are required")
	}

	lines := make([]domain.OrderLine, 0, len(input.Items))
	total := decimal.Zero

	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, NewValidationError(fmt.Sprintf("invalid quantity for product %d", item.ProductID))
		}

		// Prices come from the live catalog, never from the client.
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if err == repository.ErrProductNotFound {
				return nil, NewValidationError(fmt.Sprintf("product with ID %d not found", item.ProductID))
			}
			return nil, fmt.Errorf("failed to load product %d: %w", item.ProductID, err)
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		total = total.Add(subtotal)

		lines = append(lines, domain.OrderLine{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			Quantity:     item.Quantity,
			Subtotal:     subtotal,
		})
	}

	order := &domain.Order{
		ID:            uuid.New(),
		UserID:        input.UserID,
		CustomerName:  input.Name,
		CustomerEmail: input.Email,
		Total:         total,
	}

	if err := s.orderRepo.PlaceOrder(ctx, order, lines); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	return &domain.Receipt{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Total:         order.Total,
		Items:         lines,
		Timestamp:     order.CreatedAt,
	}, nil
}
