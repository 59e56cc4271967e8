// internal/service/upgrade/upgrade.go
package upgrade

import (
	"context"
	"errors"
	"time"

	"fitlife-service/internal/domain/subscription"
	xerrors "fitlife-service/internal/pkg/errors"
	"fitlife-service/internal/pricing"
	"fitlife-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type UpgradeService struct {
	subscriptionRepo *postgres.SubscriptionRepository
	calc             *pricing.Calculator
	logger           *zap.Logger
}

func NewUpgradeService(subscriptionRepo *postgres.SubscriptionRepository, calc *pricing.Calculator, logger *zap.Logger) *UpgradeService {
	return &UpgradeService{
		subscriptionRepo: subscriptionRepo,
		calc:             calc,
		logger:           logger,
	}
}

// CurrentSubscription returns the user's active subscription snapshot.
func (s *UpgradeService) CurrentSubscription(ctx context.Context, userID int64) (*subscription.Subscription, error) {
	sub, err := s.subscriptionRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrNoActiveSubscription
		}
		return nil, err
	}
	return sub, nil
}

// Preview computes the upgrade conversion for the user's current
// subscription. Each tier/duration selection in the UI triggers an
// independent recomputation from the same snapshot; stale results are simply
// superseded by the latest call.
func (s *UpgradeService) Preview(ctx context.Context, userID int64, targetTier, months int) (*pricing.Conversion, error) {
	conv, _, err := s.PreviewAt(ctx, userID, targetTier, months, time.Now())
	return conv, err
}

// PreviewAt is Preview with an explicit clock, also returning the snapshot it
// converted from. The strict-upgrade guard lives here, not in the calculator:
// a same-or-lower target is rejected before the conversion runs.
func (s *UpgradeService) PreviewAt(ctx context.Context, userID int64, targetTier, months int, now time.Time) (*pricing.Conversion, *subscription.Subscription, error) {
	sub, err := s.subscriptionRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, nil, xerrors.ErrNoActiveSubscription
		}
		return nil, nil, err
	}

	if targetTier <= sub.TierLevel {
		return nil, nil, xerrors.ErrNotAnUpgrade
	}

	in := pricing.ConversionInput{
		CurrentTier:  sub.TierLevel,
		TargetTier:   targetTier,
		TargetMonths: months,
		Now:          now,
	}
	if sub.ExpiresAt.Valid {
		expiresAt := sub.ExpiresAt.Time
		in.ExpiresAt = &expiresAt
	}

	conv, err := s.calc.Convert(in)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Debug("upgrade conversion computed",
		zap.Int64("user_id", userID),
		zap.Int("current_tier", sub.TierLevel),
		zap.Int("target_tier", targetTier),
		zap.Int("remaining_days", conv.RemainingDays),
		zap.Int("converted_days", conv.ConvertedDays),
	)

	return &conv, sub, nil
}
