// internal/pricing/calculator_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_FullBreakdown(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	// Half-year plan at half the monthly reference, 10% promo, bonus request
	// above the 30% cap.
	out := calc.Calculate(QuoteInput{
		BasePrice:          4990,
		ReferenceFullPrice: 9980,
		Promo: &ResolvedPromo{
			Code:  "FIT10",
			Type:  DiscountTypePercentage,
			Value: 10,
		},
		BonusRequested:  2000,
		BonusBalance:    5000,
		CashbackPercent: 5,
	})

	assert.Equal(t, int64(4990), out.DurationDiscountAmount)
	assert.Equal(t, int64(50), out.DurationDiscountPercent)
	assert.Equal(t, int64(499), out.PromoDiscountAmount)
	assert.Equal(t, int64(4491), out.PriceAfterDiscounts)
	assert.Equal(t, int64(1347), out.BonusCap)
	assert.Equal(t, int64(1347), out.BonusToUse, "request above cap is clamped, not rejected")
	assert.Equal(t, int64(3144), out.FinalPrice)
	assert.Equal(t, int64(157), out.CashbackAmount)
	assert.Equal(t, int64(4990+499+1347), out.TotalSavings)
}

func TestCalculate_NoDiscounts(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	out := calc.Calculate(QuoteInput{
		BasePrice:          3990,
		ReferenceFullPrice: 3990,
		CashbackPercent:    3,
	})

	assert.Zero(t, out.DurationDiscountAmount)
	assert.Zero(t, out.DurationDiscountPercent)
	assert.Zero(t, out.PromoDiscountAmount)
	assert.Zero(t, out.BonusToUse)
	assert.Equal(t, int64(3990), out.FinalPrice)
	assert.Equal(t, int64(120), out.CashbackAmount)
}

func TestCalculate_FixedAmountPromoClampedAtPrice(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	out := calc.Calculate(QuoteInput{
		BasePrice:          1000,
		ReferenceFullPrice: 1000,
		Promo: &ResolvedPromo{
			Code:  "MEGA",
			Type:  DiscountTypeFixedAmount,
			Value: 5000,
		},
	})

	assert.Equal(t, int64(1000), out.PromoDiscountAmount, "fixed discount never exceeds remaining price")
	assert.Zero(t, out.PriceAfterDiscounts)
	assert.Zero(t, out.BonusCap)
	assert.Zero(t, out.FinalPrice)
}

func TestCalculate_PercentagePromoClampedAtPrice(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	out := calc.Calculate(QuoteInput{
		BasePrice:          1000,
		ReferenceFullPrice: 1000,
		Promo: &ResolvedPromo{
			Code:  "OVER",
			Type:  DiscountTypePercentage,
			Value: 150,
		},
		BonusRequested: 500,
		BonusBalance:   500,
	})

	assert.Equal(t, int64(1000), out.PromoDiscountAmount, "percentage discount never exceeds remaining price")
	assert.Zero(t, out.PriceAfterDiscounts)
	assert.Zero(t, out.BonusCap)
	assert.Zero(t, out.BonusToUse)
	assert.Zero(t, out.FinalPrice)
}

func TestCalculate_PercentagePromoMaxAmountCap(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	out := calc.Calculate(QuoteInput{
		BasePrice:          10000,
		ReferenceFullPrice: 10000,
		Promo: &ResolvedPromo{
			Code:      "HALF",
			Type:      DiscountTypePercentage,
			Value:     50,
			MaxAmount: 1500,
		},
	})

	assert.Equal(t, int64(1500), out.PromoDiscountAmount)
	assert.Equal(t, int64(8500), out.PriceAfterDiscounts)
}

func TestCalculate_BonusClampedToBalance(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	out := calc.Calculate(QuoteInput{
		BasePrice:          10000,
		ReferenceFullPrice: 10000,
		BonusRequested:     3000,
		BonusBalance:       250,
	})

	assert.Equal(t, int64(3000), out.BonusCap)
	assert.Equal(t, int64(250), out.BonusToUse)
	assert.Equal(t, int64(9750), out.FinalPrice)
}

func TestCalculate_Invariants(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	promos := []*ResolvedPromo{
		nil,
		{Code: "P10", Type: DiscountTypePercentage, Value: 10},
		{Code: "P100", Type: DiscountTypePercentage, Value: 100},
		{Code: "P150", Type: DiscountTypePercentage, Value: 150},
		{Code: "F500", Type: DiscountTypeFixedAmount, Value: 500},
		{Code: "F1M", Type: DiscountTypeFixedAmount, Value: 1_000_000},
	}

	for _, base := range []int64{0, 1, 990, 4990, 59900} {
		for _, promo := range promos {
			for _, requested := range []int64{0, 100, 5000, 1_000_000} {
				for _, balance := range []int64{0, 300, 10_000} {
					in := QuoteInput{
						BasePrice:          base,
						ReferenceFullPrice: base * 2,
						Promo:              promo,
						BonusRequested:     requested,
						BonusBalance:       balance,
						CashbackPercent:    7,
					}
					out := calc.Calculate(in)

					assert.GreaterOrEqual(t, out.FinalPrice, int64(0))
					assert.LessOrEqual(t, out.FinalPrice, in.BasePrice)
					assert.GreaterOrEqual(t, out.PriceAfterDiscounts, int64(0))
					assert.GreaterOrEqual(t, out.BonusToUse, int64(0))
					assert.LessOrEqual(t, out.BonusToUse, out.BonusCap)
					assert.LessOrEqual(t, out.BonusToUse, balance)
					assert.Equal(t, out.FinalPrice, out.PriceAfterDiscounts-out.BonusToUse)

					// Pure function: identical inputs, identical output.
					require.Equal(t, out, calc.Calculate(in))
				}
			}
		}
	}
}

func TestCalculate_BonusCapNeverCoversWholePurchase(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	out := calc.Calculate(QuoteInput{
		BasePrice:          4491,
		ReferenceFullPrice: 4491,
		BonusRequested:     4491,
		BonusBalance:       100_000,
	})

	assert.Equal(t, int64(1347), out.BonusToUse)
	assert.Equal(t, int64(3144), out.FinalPrice)
}
