// internal/repository/postgres/promo_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"fitlife-service/internal/domain/promo"
	xerrors "fitlife-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoCodeRepository struct {
	db *pgxpool.Pool
}

func NewPromoCodeRepository(db *pgxpool.Pool) *PromoCodeRepository {
	return &PromoCodeRepository{db: db}
}

// FindByCode retrieves a promo code, matching case-insensitively
func (r *PromoCodeRepository) FindByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	query := `
		SELECT id, code, name, discount_type, discount_value, max_discount_amount,
		       start_date, end_date, max_uses, current_uses, applicable_products,
		       status, created_at, updated_at
		FROM promo_codes
		WHERE LOWER(code) = LOWER($1)
	`

	var pc promo.PromoCode
	err := r.db.QueryRow(ctx, query, code).Scan(
		&pc.ID, &pc.Code, &pc.Name, &pc.DiscountType, &pc.DiscountValue, &pc.MaxDiscountAmount,
		&pc.StartDate, &pc.EndDate, &pc.MaxUses, &pc.CurrentUses, &pc.ApplicableProducts,
		&pc.Status, &pc.CreatedAt, &pc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find promo code: %w", err)
	}

	return &pc, nil
}

// IncrementUsesWithTx bumps the usage counter inside an existing transaction
func (r *PromoCodeRepository) IncrementUsesWithTx(ctx context.Context, tx pgx.Tx, id int64) error {
	query := `
		UPDATE promo_codes
		SET current_uses = current_uses + 1, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment promo uses: %w", err)
	}
	return nil
}
