// internal/repository/postgres/bonus_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"fitlife-service/internal/domain/bonus"
	xerrors "fitlife-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BonusRepository struct {
	db *pgxpool.Pool
}

func NewBonusRepository(db *pgxpool.Pool) *BonusRepository {
	return &BonusRepository{db: db}
}

// FindAccount retrieves a user's bonus account
func (r *BonusRepository) FindAccount(ctx context.Context, userID int64) (*bonus.Account, error) {
	query := `
		SELECT user_id, balance, cashback_level, lifetime_earned, lifetime_spent, updated_at
		FROM bonus_accounts
		WHERE user_id = $1
	`

	var acc bonus.Account
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&acc.UserID, &acc.Balance, &acc.CashbackLevel,
		&acc.LifetimeEarned, &acc.LifetimeSpent, &acc.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bonus account: %w", err)
	}

	return &acc, nil
}

// ApplyEntryWithTx records a ledger entry and moves the balance atomically.
// The balance check guards against a redemption racing the account below zero.
func (r *BonusRepository) ApplyEntryWithTx(ctx context.Context, tx pgx.Tx, entry *bonus.LedgerEntry) error {
	insert := `
		INSERT INTO bonus_ledger (user_id, purchase_reference, kind, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := tx.QueryRow(ctx, insert,
		entry.UserID, entry.PurchaseReference, entry.Kind, entry.Amount,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	update := `
		UPDATE bonus_accounts
		SET balance = balance + $2,
		    lifetime_earned = lifetime_earned + GREATEST($2, 0),
		    lifetime_spent = lifetime_spent + GREATEST(-$2, 0),
		    updated_at = NOW()
		WHERE user_id = $1 AND balance + $2 >= 0
	`
	tag, err := tx.Exec(ctx, update, entry.UserID, entry.Amount)
	if err != nil {
		return fmt.Errorf("failed to update bonus balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrInsufficientBalance
	}

	return nil
}
