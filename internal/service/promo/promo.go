// internal/service/promo/promo.go
package promo

import (
	"context"
	"fmt"
	"time"

	"fitlife-service/internal/domain/promo"
	"fitlife-service/internal/pricing"
	"fitlife-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type PromoService struct {
	promoRepo *postgres.PromoCodeRepository
	logger    *zap.Logger
}

func NewPromoService(promoRepo *postgres.PromoCodeRepository, logger *zap.Logger) *PromoService {
	return &PromoService{
		promoRepo: promoRepo,
		logger:    logger,
	}
}

// Resolve looks up a code and validates it for a product. On success it
// returns the promo shaped for the pricing engine plus the row ID for usage
// accounting; the engine itself never sees an invalid code.
func (s *PromoService) Resolve(ctx context.Context, code string, productID int64, now time.Time) (*pricing.ResolvedPromo, int64, error) {
	pc, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, 0, fmt.Errorf("promo code not found: %w", err)
	}

	if err := Validate(pc, productID, now); err != nil {
		return nil, 0, err
	}

	resolved := &pricing.ResolvedPromo{
		Code:  pc.Code,
		Type:  pricing.DiscountType(pc.DiscountType),
		Value: pc.DiscountValue,
	}
	if pc.MaxDiscountAmount.Valid {
		resolved.MaxAmount = pc.MaxDiscountAmount.Int64
	}
	return resolved, pc.ID, nil
}

// Validate checks whether a promo code applies to a product at a point in
// time. Pure over its inputs so every rejection path is unit-testable.
func Validate(pc *promo.PromoCode, productID int64, now time.Time) error {
	if pc.Status != promo.PromoStatusActive {
		return fmt.Errorf("promo code is not active")
	}

	switch pc.DiscountType {
	case promo.DiscountTypePercentage:
		if pc.DiscountValue <= 0 || pc.DiscountValue > 100 {
			return fmt.Errorf("promo code has an invalid percentage value")
		}
	case promo.DiscountTypeFixedAmount:
		if pc.DiscountValue <= 0 {
			return fmt.Errorf("promo code has an invalid discount amount")
		}
	default:
		return fmt.Errorf("promo code has an unknown discount type")
	}

	if now.Before(pc.StartDate) || now.After(pc.EndDate) {
		return fmt.Errorf("promo code is outside its validity window")
	}

	if pc.MaxUses.Valid && pc.CurrentUses >= int(pc.MaxUses.Int32) {
		return fmt.Errorf("promo code usage limit reached")
	}

	if len(pc.ApplicableProducts) > 0 {
		applicable := false
		for _, id := range pc.ApplicableProducts {
			if id == productID {
				applicable = true
				break
			}
		}
		if !applicable {
			return fmt.Errorf("promo code not applicable to this product")
		}
	}

	return nil
}
