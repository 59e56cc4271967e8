// internal/service/bonus/bonus.go
package bonus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitlife-service/internal/domain/bonus"
	"fitlife-service/internal/pricing"
	"fitlife-service/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const accountCacheTTL = 60 * time.Second

type BonusService struct {
	bonusRepo *postgres.BonusRepository
	redis     *redis.Client
	policy    pricing.Policy
	logger    *zap.Logger
}

func NewBonusService(bonusRepo *postgres.BonusRepository, redisClient *redis.Client, policy pricing.Policy, logger *zap.Logger) *BonusService {
	return &BonusService{
		bonusRepo: bonusRepo,
		redis:     redisClient,
		policy:    policy,
		logger:    logger,
	}
}

// GetAccount reads a user's bonus account, cache-aside through redis. The
// quote path hits this on every recomputation, so a short TTL keeps the
// database out of the keystroke loop.
func (s *BonusService) GetAccount(ctx context.Context, userID int64) (*bonus.Account, error) {
	key := accountCacheKey(userID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var acc bonus.Account
			if err := json.Unmarshal(cached, &acc); err == nil {
				return &acc, nil
			}
		}
	}

	acc, err := s.bonusRepo.FindAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(acc); err == nil {
			if err := s.redis.Set(ctx, key, data, accountCacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache bonus account", zap.Error(err))
			}
		}
	}

	return acc, nil
}

// CashbackPercent maps the user's loyalty level to a cashback rate.
func (s *BonusService) CashbackPercent(acc *bonus.Account) int64 {
	return s.policy.CashbackPercent(acc.CashbackLevel)
}

// RecordRedemptionWithTx debits redeemed bonus inside a purchase transaction.
func (s *BonusService) RecordRedemptionWithTx(ctx context.Context, tx pgx.Tx, userID int64, purchaseRef string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	entry := &bonus.LedgerEntry{
		UserID:            userID,
		PurchaseReference: purchaseRef,
		Kind:              bonus.EntryKindRedemption,
		Amount:            -amount,
	}
	if err := s.bonusRepo.ApplyEntryWithTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("failed to record redemption: %w", err)
	}
	return nil
}

// RecordAccrualWithTx credits cashback inside a purchase transaction.
func (s *BonusService) RecordAccrualWithTx(ctx context.Context, tx pgx.Tx, userID int64, purchaseRef string, amount int64) error {
	if amount <= 0 {
		return nil
	}
	entry := &bonus.LedgerEntry{
		UserID:            userID,
		PurchaseReference: purchaseRef,
		Kind:              bonus.EntryKindAccrual,
		Amount:            amount,
	}
	if err := s.bonusRepo.ApplyEntryWithTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("failed to record accrual: %w", err)
	}
	return nil
}

// InvalidateCache drops the cached account after a balance mutation.
func (s *BonusService) InvalidateCache(ctx context.Context, userID int64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, accountCacheKey(userID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate bonus cache",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

func accountCacheKey(userID int64) string {
	return fmt.Sprintf("bonus:account:%d", userID)
}
