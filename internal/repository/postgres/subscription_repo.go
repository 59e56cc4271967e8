// internal/repository/postgres/subscription_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitlife-service/internal/domain/subscription"
	xerrors "fitlife-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// FindActiveByUser retrieves the user's active subscription
func (r *SubscriptionRepository) FindActiveByUser(ctx context.Context, userID int64) (*subscription.Subscription, error) {
	query := `
		SELECT id, user_id, tier_level, status, started_at, expires_at,
		       auto_renew, renewal_count, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var sub subscription.Subscription
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&sub.ID, &sub.UserID, &sub.TierLevel, &sub.Status, &sub.StartedAt, &sub.ExpiresAt,
		&sub.AutoRenew, &sub.RenewalCount, &sub.CreatedAt, &sub.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}

	return &sub, nil
}

// ExtendWithTx pushes the expiry forward after a paid renewal of the same tier
func (r *SubscriptionRepository) ExtendWithTx(ctx context.Context, tx pgx.Tx, id int64, newExpiry time.Time) error {
	query := `
		UPDATE subscriptions
		SET expires_at = $2, renewal_count = renewal_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, id, newExpiry); err != nil {
		return fmt.Errorf("failed to extend subscription: %w", err)
	}
	return nil
}

// UpgradeWithTx moves the subscription to a new tier with a fresh expiry
func (r *SubscriptionRepository) UpgradeWithTx(ctx context.Context, tx pgx.Tx, id int64, tierLevel int, newExpiry time.Time) error {
	query := `
		UPDATE subscriptions
		SET tier_level = $2, expires_at = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, id, tierLevel, newExpiry); err != nil {
		return fmt.Errorf("failed to upgrade subscription: %w", err)
	}
	return nil
}

// CreateWithTx inserts a brand-new subscription for a first-time buyer
func (r *SubscriptionRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, sub *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, tier_level, status, started_at, expires_at, auto_renew)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		sub.UserID, sub.TierLevel, sub.Status, sub.StartedAt, sub.ExpiresAt, sub.AutoRenew,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}
