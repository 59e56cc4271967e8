// internal/service/checkout/checkout.go
package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitlife-service/internal/domain/bonus"
	"fitlife-service/internal/domain/purchase"
	"fitlife-service/internal/domain/subscription"
	xerrors "fitlife-service/internal/pkg/errors"
	"fitlife-service/internal/pricing"
	"fitlife-service/internal/repository/postgres"
	bonussvc "fitlife-service/internal/service/bonus"
	promosvc "fitlife-service/internal/service/promo"
	upgradesvc "fitlife-service/internal/service/upgrade"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type CheckoutService struct {
	productRepo      *postgres.ProductRepository
	promoRepo        *postgres.PromoCodeRepository
	purchaseRepo     *postgres.PurchaseRepository
	subscriptionRepo *postgres.SubscriptionRepository
	promoService     *promosvc.PromoService
	bonusService     *bonussvc.BonusService
	upgradeService   *upgradesvc.UpgradeService
	db               *postgres.DB
	calc             *pricing.Calculator
	logger           *zap.Logger
}

func NewCheckoutService(
	productRepo *postgres.ProductRepository,
	promoRepo *postgres.PromoCodeRepository,
	purchaseRepo *postgres.PurchaseRepository,
	subscriptionRepo *postgres.SubscriptionRepository,
	promoService *promosvc.PromoService,
	bonusService *bonussvc.BonusService,
	upgradeService *upgradesvc.UpgradeService,
	db *postgres.DB,
	calc *pricing.Calculator,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		productRepo:      productRepo,
		promoRepo:        promoRepo,
		purchaseRepo:     purchaseRepo,
		subscriptionRepo: subscriptionRepo,
		promoService:     promoService,
		bonusService:     bonusService,
		upgradeService:   upgradeService,
		db:               db,
		calc:             calc,
		logger:           logger,
	}
}

// quoteContext is everything resolved for one calculation: the calculator's
// inputs plus the rows they came from.
type quoteContext struct {
	calculation pricing.Calculation
	promoCodeID int64
	productTier int
	months      int
	currency    string
}

// Quote resolves a product, promo code and bonus balance and produces the
// itemized price breakdown. Stateless: nothing is persisted, and repeated
// calls with the same inputs return the same breakdown.
func (s *CheckoutService) Quote(ctx context.Context, userID int64, req *purchase.QuoteRequest) (*pricing.Calculation, error) {
	qc, err := s.buildQuote(ctx, userID, req.ProductID, req.PromoCode, req.BonusRequested, time.Now())
	if err != nil {
		return nil, err
	}
	return &qc.calculation, nil
}

func (s *CheckoutService) buildQuote(ctx context.Context, userID, productID int64, promoCode string, bonusRequested int64, now time.Time) (*quoteContext, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if !product.Purchasable() {
		return nil, xerrors.ErrProductNotPurchasable
	}

	acc, err := s.bonusService.GetAccount(ctx, userID)
	if err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to read bonus account: %w", err)
		}
		// New users have no ledger yet: zero balance, entry loyalty level.
		acc = &bonus.Account{UserID: userID, CashbackLevel: 1}
	}

	in := pricing.QuoteInput{
		BasePrice:          product.Price,
		ReferenceFullPrice: product.ReferenceFullPrice,
		BonusRequested:     bonusRequested,
		BonusBalance:       acc.Balance,
		CashbackPercent:    s.bonusService.CashbackPercent(acc),
	}

	qc := &quoteContext{
		productTier: product.TierLevel,
		months:      product.DurationMonths,
		currency:    product.Currency,
	}

	// An invalid or inapplicable code means "no promo", not an error. The
	// explicit validate endpoint is where rejection reasons surface.
	if promoCode != "" {
		resolved, promoID, err := s.promoService.Resolve(ctx, promoCode, productID, now)
		if err != nil {
			s.logger.Warn("promo code not applied",
				zap.String("code", promoCode),
				zap.Int64("product_id", productID),
				zap.Error(err),
			)
		} else {
			in.Promo = resolved
			qc.promoCodeID = promoID
		}
	}

	qc.calculation = s.calc.Calculate(in)
	return qc, nil
}

// Checkout quotes and persists a pending purchase for the payment gateway to
// settle. For upgrades it also freezes the conversion of unused days.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64, req *purchase.CheckoutRequest) (*purchase.Purchase, *pricing.Calculation, error) {
	now := time.Now()

	qc, err := s.buildQuote(ctx, userID, req.ProductID, req.PromoCode, req.BonusRequested, now)
	if err != nil {
		return nil, nil, err
	}
	calc := qc.calculation

	p := &purchase.Purchase{
		Reference: generatePurchaseReference(),
		UserID:    userID,
		ProductID: req.ProductID,

		BasePrice:              calc.BasePrice,
		DurationDiscountAmount: calc.DurationDiscountAmount,
		PromoDiscountAmount:    calc.PromoDiscountAmount,
		BonusUsed:              calc.BonusToUse,
		FinalPrice:             calc.FinalPrice,
		CashbackPercent:        calc.CashbackPercent,
		CashbackAmount:         calc.CashbackAmount,
		Currency:               qc.currency,

		Status: purchase.StatusPending,
	}
	if calc.PromoCode != "" {
		p.PromoCode = sql.NullString{String: calc.PromoCode, Valid: true}
	}

	if req.Upgrade {
		conv, _, err := s.upgradeService.PreviewAt(ctx, userID, qc.productTier, qc.months, now)
		if err != nil {
			return nil, nil, err
		}
		p.ConvertedDays = sql.NullInt32{Int32: int32(conv.ConvertedDays), Valid: true}
		p.TotalDays = sql.NullInt32{Int32: int32(conv.TotalDays), Valid: true}
		p.NewExpiresAt = sql.NullTime{Time: conv.NewExpirationDate, Valid: true}
	}

	err = s.db.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.purchaseRepo.CreateWithTx(ctx, tx, p); err != nil {
			return err
		}
		if qc.promoCodeID != 0 {
			if err := s.promoRepo.IncrementUsesWithTx(ctx, tx, qc.promoCodeID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("purchase created",
		zap.String("reference", p.Reference),
		zap.Int64("user_id", userID),
		zap.Int64("product_id", req.ProductID),
		zap.Int64("final_price", p.FinalPrice),
		zap.Bool("upgrade", req.Upgrade),
	)

	return p, &calc, nil
}

// ConfirmPayment settles a pending purchase after the gateway reports
// success: the purchase flips to paid, redeemed bonus is debited, cashback is
// credited, and the subscription moves forward. All arithmetic happened at
// quote time; this only applies the frozen snapshot.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, reference, paymentReference string) (*purchase.Purchase, error) {
	p, err := s.purchaseRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if p.Status != purchase.StatusPending {
		return nil, xerrors.ErrConflict
	}

	product, err := s.productRepo.FindByID(ctx, p.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	sub, err := s.subscriptionRepo.FindActiveByUser(ctx, p.UserID)
	if err != nil && !errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	err = s.db.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.purchaseRepo.MarkPaidWithTx(ctx, tx, p.ID, paymentReference); err != nil {
			return err
		}
		if err := s.bonusService.RecordRedemptionWithTx(ctx, tx, p.UserID, p.Reference, p.BonusUsed); err != nil {
			return err
		}
		if err := s.bonusService.RecordAccrualWithTx(ctx, tx, p.UserID, p.Reference, p.CashbackAmount); err != nil {
			return err
		}
		return s.applySubscriptionChange(ctx, tx, sub, p, product.TierLevel, product.DurationMonths, now)
	})
	if err != nil {
		return nil, err
	}

	s.bonusService.InvalidateCache(ctx, p.UserID)

	s.logger.Info("purchase confirmed",
		zap.String("reference", p.Reference),
		zap.Int64("user_id", p.UserID),
		zap.String("payment_reference", paymentReference),
	)

	return s.purchaseRepo.FindByReference(ctx, reference)
}

// ListPurchases returns the user's purchase history, newest first.
func (s *CheckoutService) ListPurchases(ctx context.Context, userID int64, limit int) ([]purchase.Purchase, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.purchaseRepo.ListByUser(ctx, userID, limit)
}

// applySubscriptionChange moves the user's subscription according to what was
// bought: a fresh subscription, a same-tier extension, or a tier change using
// the upgrade conversion snapshot.
func (s *CheckoutService) applySubscriptionChange(ctx context.Context, tx pgx.Tx, sub *subscription.Subscription, p *purchase.Purchase, tierLevel, months int, now time.Time) error {
	switch {
	case sub == nil:
		fresh := &subscription.Subscription{
			UserID:    p.UserID,
			TierLevel: tierLevel,
			Status:    subscription.StatusActive,
			StartedAt: now,
			ExpiresAt: sql.NullTime{Time: newSubscriptionExpiry(p, months, now), Valid: true},
		}
		return s.subscriptionRepo.CreateWithTx(ctx, tx, fresh)

	case p.IsUpgrade():
		return s.subscriptionRepo.UpgradeWithTx(ctx, tx, sub.ID, tierLevel, p.NewExpiresAt.Time)

	case sub.TierLevel == tierLevel:
		// Renewal: the new period starts when the old one ends, unless it
		// already lapsed.
		base := now
		if sub.ExpiresAt.Valid && sub.ExpiresAt.Time.After(now) {
			base = sub.ExpiresAt.Time
		}
		return s.subscriptionRepo.ExtendWithTx(ctx, tx, sub.ID, base.AddDate(0, months, 0))

	default:
		// Tier switch bought without conversion: the new tier starts now.
		return s.subscriptionRepo.UpgradeWithTx(ctx, tx, sub.ID, tierLevel, now.AddDate(0, months, 0))
	}
}

// newSubscriptionExpiry picks the expiry for a subscription created at
// confirmation time. An upgrade purchase carries its frozen conversion
// snapshot, which already includes the converted days; everything else runs
// months from now.
func newSubscriptionExpiry(p *purchase.Purchase, months int, now time.Time) time.Time {
	if p.IsUpgrade() && p.NewExpiresAt.Valid {
		return p.NewExpiresAt.Time
	}
	return now.AddDate(0, months, 0)
}

func generatePurchaseReference() string {
	return "PUR-" + ulid.Make().String()
}
