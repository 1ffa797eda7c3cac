package service

import (
	"context"
	"testing"
	"time"

	"github.com/Gaurav-0801/E-com-Platform/internal/domain"
	"github.com/Gaurav-0801/E-com-Platform/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCartRepository mirrors the unique (user, product) constraint and
// the newest-first ordering of the real table.
type mockCartRepository struct {
	products *mockProductRepository
	lines    []*domain.CartLine
	nextID   int64
}

func newMockCartRepository(products *mockProductRepository) *mockCartRepository {
	return &mockCartRepository{products: products, nextID: 1}
}

func (m *mockCartRepository) Upsert(ctx context.Context, userID string, productID int64, quantity int) (*domain.CartLine, error) {
	for _, line := range m.lines {
		if line.UserID == userID && line.ProductID == productID {
			line.Quantity = quantity
			line.UpdatedAt = time.Now()
			return line, nil
		}
	}

	line := &domain.CartLine{
		ID:        m.nextID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.nextID++
	m.lines = append(m.lines, line)
	return line, nil
}

func (m *mockCartRepository) ListForUser(ctx context.Context, userID string) ([]repository.CartRow, error) {
	rows := []repository.CartRow{}
	// Newest first
	for i := len(m.lines) - 1; i >= 0; i-- {
		line := m.lines[i]
		if line.UserID != userID {
			continue
		}
		product := m.products.products[line.ProductID]
		rows = append(rows, repository.CartRow{
			ID:        line.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}
	return rows, nil
}

func (m *mockCartRepository) DeleteForUser(ctx context.Context, userID string, lineID int64) error {
	for i, line := range m.lines {
		if line.ID == lineID && line.UserID == userID {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
			return nil
		}
	}
	return repository.ErrCartLineNotFound
}

func TestCartAddOrUpdate_OverwritesQuantity(t *testing.T) {
	productRepo := newMockProductRepository()
	productRepo.add(1, "Wireless Headphones", "79.99")
	cartRepo := newMockCartRepository(productRepo)
	svc := NewCartService(cartRepo, productRepo)
	ctx := context.Background()

	first, err := svc.AddOrUpdate(ctx, "user_123", 1, 2)
	require.NoError(t, err)

	second, err := svc.AddOrUpdate(ctx, "user_123", 1, 5)
	require.NoError(t, err)

	// One line, latest quantity, not two lines and not 7.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	assert.Len(t, cartRepo.lines, 1)
}

func TestCartAddOrUpdate_RejectsBadInput(t *testing.T) {
	productRepo := newMockProductRepository()
	productRepo.add(1, "Wireless Headphones", "79.99")
	cartRepo := newMockCartRepository(productRepo)
	svc := NewCartService(cartRepo, productRepo)
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, "user_123", 1, 0)
	_, ok := AsValidationError(err)
	assert.True(t, ok, "zero quantity must be a validation error, got %v", err)

	_, err = svc.AddOrUpdate(ctx, "user_123", 42, 1)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.Empty(t, cartRepo.lines)
}

// Rounding contract: each line subtotal is rounded to 2 decimals first,
// then summed. Two lines at unit price 9.995 with quantities 2 and 3
// give 19.99 + 29.99 = 49.98.
func TestCartGet_TotalRounding(t *testing.T) {
	productRepo := newMockProductRepository()
	productRepo.add(1, "A", "9.995")
	productRepo.add(2, "B", "9.995")
	cartRepo := newMockCartRepository(productRepo)
	svc := NewCartService(cartRepo, productRepo)
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, "user_123", 1, 2)
	require.NoError(t, err)
	_, err = svc.AddOrUpdate(ctx, "user_123", 2, 3)
	require.NoError(t, err)

	cart, err := svc.Get(ctx, "user_123")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	// Newest-added line first.
	assert.Equal(t, int64(2), cart.Items[0].ProductID)
	assert.True(t, cart.Items[0].Subtotal.Equal(decimal.RequireFromString("29.99")),
		"qty 3 subtotal: got %s", cart.Items[0].Subtotal)
	assert.True(t, cart.Items[1].Subtotal.Equal(decimal.RequireFromString("19.99")),
		"qty 2 subtotal: got %s", cart.Items[1].Subtotal)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("49.98")),
		"total: got %s", cart.Total)
}

func TestCartGet_EmptyCart(t *testing.T) {
	productRepo := newMockProductRepository()
	cartRepo := newMockCartRepository(productRepo)
	svc := NewCartService(cartRepo, productRepo)

	cart, err := svc.Get(context.Background(), "user_123")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.Equal(decimal.Zero))
}

func TestCartRemove_OtherUsersLineIsNotFound(t *testing.T) {
	productRepo := newMockProductRepository()
	productRepo.add(1, "Wireless Headphones", "79.99")
	cartRepo := newMockCartRepository(productRepo)
	svc := NewCartService(cartRepo, productRepo)
	ctx := context.Background()

	line, err := svc.AddOrUpdate(ctx, "user_123", 1, 1)
	require.NoError(t, err)

	err = svc.Remove(ctx, "someone_else", line.ID)
	assert.ErrorIs(t, err, repository.ErrCartLineNotFound)
	assert.Len(t, cartRepo.lines, 1, "the row must survive a foreign delete attempt")

	require.NoError(t, svc.Remove(ctx, "user_123", line.ID))
	assert.Empty(t, cartRepo.lines)
}
