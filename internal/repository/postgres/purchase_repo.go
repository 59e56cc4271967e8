// internal/repository/postgres/purchase_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"fitlife-service/internal/domain/purchase"
	xerrors "fitlife-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PurchaseRepository struct {
	db *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// CreateWithTx inserts a pending purchase inside an existing transaction
func (r *PurchaseRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, p *purchase.Purchase) error {
	query := `
		INSERT INTO purchases (
			reference, user_id, product_id,
			base_price, duration_discount_amount, promo_code, promo_discount_amount,
			bonus_used, final_price, cashback_percent, cashback_amount, currency,
			converted_days, total_days, new_expires_at,
			status, payment_reference
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		p.Reference, p.UserID, p.ProductID,
		p.BasePrice, p.DurationDiscountAmount, p.PromoCode, p.PromoDiscountAmount,
		p.BonusUsed, p.FinalPrice, p.CashbackPercent, p.CashbackAmount, p.Currency,
		p.ConvertedDays, p.TotalDays, p.NewExpiresAt,
		p.Status, p.PaymentReference,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// FindByReference retrieves a purchase by its ULID reference
func (r *PurchaseRepository) FindByReference(ctx context.Context, reference string) (*purchase.Purchase, error) {
	query := `
		SELECT id, reference, user_id, product_id,
		       base_price, duration_discount_amount, promo_code, promo_discount_amount,
		       bonus_used, final_price, cashback_percent, cashback_amount, currency,
		       converted_days, total_days, new_expires_at,
		       status, payment_reference, created_at, updated_at
		FROM purchases
		WHERE reference = $1
	`

	var p purchase.Purchase
	err := r.db.QueryRow(ctx, query, reference).Scan(
		&p.ID, &p.Reference, &p.UserID, &p.ProductID,
		&p.BasePrice, &p.DurationDiscountAmount, &p.PromoCode, &p.PromoDiscountAmount,
		&p.BonusUsed, &p.FinalPrice, &p.CashbackPercent, &p.CashbackAmount, &p.Currency,
		&p.ConvertedDays, &p.TotalDays, &p.NewExpiresAt,
		&p.Status, &p.PaymentReference, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase: %w", err)
	}

	return &p, nil
}

// MarkPaidWithTx transitions a pending purchase to paid. The status guard
// makes a duplicate gateway callback a no-op at the SQL level.
func (r *PurchaseRepository) MarkPaidWithTx(ctx context.Context, tx pgx.Tx, id int64, paymentReference string) error {
	query := `
		UPDATE purchases
		SET status = 'paid', payment_reference = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := tx.Exec(ctx, query, id, paymentReference)
	if err != nil {
		return fmt.Errorf("failed to mark purchase paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrConflict
	}
	return nil
}

// ListByUser retrieves a user's purchase history, newest first
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]purchase.Purchase, error) {
	query := `
		SELECT id, reference, user_id, product_id,
		       base_price, duration_discount_amount, promo_code, promo_discount_amount,
		       bonus_used, final_price, cashback_percent, cashback_amount, currency,
		       converted_days, total_days, new_expires_at,
		       status, payment_reference, created_at, updated_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []purchase.Purchase
	for rows.Next() {
		var p purchase.Purchase
		err := rows.Scan(
			&p.ID, &p.Reference, &p.UserID, &p.ProductID,
			&p.BasePrice, &p.DurationDiscountAmount, &p.PromoCode, &p.PromoDiscountAmount,
			&p.BonusUsed, &p.FinalPrice, &p.CashbackPercent, &p.CashbackAmount, &p.Currency,
			&p.ConvertedDays, &p.TotalDays, &p.NewExpiresAt,
			&p.Status, &p.PaymentReference, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	return purchases, rows.Err()
}
