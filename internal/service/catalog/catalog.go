// internal/service/catalog/catalog.go
package catalog

import (
	"context"
	"fmt"

	"fitlife-service/internal/domain/catalog"
	"fitlife-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type CatalogService struct {
	productRepo *postgres.ProductRepository
	logger      *zap.Logger
}

func NewCatalogService(productRepo *postgres.ProductRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// ListProducts retrieves public products with filters
func (s *CatalogService) ListProducts(ctx context.Context, filters *catalog.ProductListFilters) (*catalog.ProductListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}

	products, total, err := s.productRepo.ListPublic(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &catalog.ProductListResponse{
		Products:   products,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *CatalogService) GetProduct(ctx context.Context, productID int64) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

// GetProductBySKU retrieves a single product by its SKU
func (s *CatalogService) GetProductBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	return s.productRepo.FindBySKU(ctx, sku)
}
