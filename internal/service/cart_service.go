package service

import (
	"context"
	"fmt"

	"github.com/Gaurav-0801/E-com-Platform/internal/domain"
	"github.com/Gaurav-0801/E-com-Platform/internal/repository"
	"github.com/shopspring/decimal"
)

// CartService defines the interface for cart business logic
type CartService interface {
	// AddOrUpdate upserts the (user, product) line, setting quantity to
	// the given value rather than incrementing.
	AddOrUpdate(ctx context.Context, userID string, productID int64, quantity int) (*domain.CartLine, error)

	// Get returns the cart joined to current product data with per-line
	// subtotals and the running total.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Remove deletes a line only when it belongs to the given user.
	Remove(ctx context.Context, userID string, lineID int64) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) AddOrUpdate(ctx context.Context, userID string, productID int64, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, NewValidationError("quantity must be at least 1")
	}

	// The product must exist before a line may reference it.
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == repository.ErrProductNotFound {
			return nil, fmt.Errorf("product %d: %w", productID, repository.ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to check product: %w", err)
	}

	line, err := s.cartRepo.Upsert(ctx, userID, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	return line, nil
}

func (s *cartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	rows, err := s.cartRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	cart := &domain.Cart{
		Items: make([]domain.CartView, 0, len(rows)),
		Total: decimal.Zero,
	}

	// Each subtotal is rounded to 2 decimals before summing; the total
	// is the sum of the rounded subtotals.
	for _, row := range rows {
		subtotal := row.Price.Mul(decimal.NewFromInt(int64(row.Quantity))).Round(2)
		cart.Items = append(cart.Items, domain.CartView{
			ID:        row.ID,
			ProductID: row.ProductID,
			Name:      row.Name,
			Price:     row.Price,
			ImageURL:  row.ImageURL,
			Quantity:  row.Quantity,
			Subtotal:  subtotal,
		})
		cart.Total = cart.Total.Add(subtotal)
	}

	return cart, nil
}

func (s *cartService) Remove(ctx context.Context, userID string, lineID int64) error {
	if err := s.cartRepo.DeleteForUser(ctx, userID, lineID); err != nil {
		if err == repository.ErrCartLineNotFound {
			return err
		}
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}
