// internal/repository/postgres/product_repo.go
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fitlife-service/internal/domain/catalog"
	xerrors "fitlife-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `
	id, sku, name, description, tier_level, duration_months,
	price, reference_full_price, currency,
	status, is_public, metadata, created_at, updated_at
`

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// FindBySKU retrieves a product by SKU
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`

	row := r.db.QueryRow(ctx, query, sku)
	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

// ListPublic retrieves active public products, optionally filtered by tier
func (r *ProductRepository) ListPublic(ctx context.Context, filters *catalog.ProductListFilters) ([]catalog.Product, int64, error) {
	where := `WHERE status = 'active' AND is_public = true`
	args := []interface{}{}

	if filters.TierLevel != nil {
		args = append(args, *filters.TierLevel)
		where += fmt.Sprintf(" AND tier_level = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM products ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (filters.Page - 1) * filters.PageSize
	args = append(args, filters.PageSize, offset)
	query := `SELECT ` + productColumns + ` FROM products ` + where +
		fmt.Sprintf(" ORDER BY tier_level, duration_months LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	return products, total, rows.Err()
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var product catalog.Product
	var metadataJSON []byte

	err := row.Scan(
		&product.ID, &product.SKU, &product.Name, &product.Description,
		&product.TierLevel, &product.DurationMonths,
		&product.Price, &product.ReferenceFullPrice, &product.Currency,
		&product.Status, &product.IsPublic, &metadataJSON,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &product.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &product, nil
}
