package service

import (
	"context"
	"fmt"

	"github.com/Gaurav-0801/E-com-Platform/internal/domain"
	"github.com/Gaurav-0801/E-com-Platform/internal/repository"
)

// CatalogService lists the product catalog. No filtering or paging; the
// storefront renders the whole catalog at once.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
