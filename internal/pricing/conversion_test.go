// internal/pricing/conversion_test.go
package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func expiresIn(days int) *time.Time {
	t := fixedNow().AddDate(0, 0, days)
	return &t
}

func TestConvert_UpgradeWithFairnessFloor(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	// Basic (3990/mo) with 15 days left, upgrading to Elite (9990/mo) for 6
	// months. Naive conversion gives 6 days; the fairness floor raises it to 8.
	out, err := calc.Convert(ConversionInput{
		CurrentTier:  TierBasic,
		TargetTier:   TierElite,
		ExpiresAt:    expiresIn(15),
		TargetMonths: 6,
		Now:          fixedNow(),
	})
	require.NoError(t, err)

	assert.Equal(t, 15, out.RemainingDays)
	assert.Equal(t, int64(1995), out.RemainingValue)
	assert.Equal(t, 8, out.ConvertedDays, "ceil(15*0.5)=8 beats the naive 6")
	assert.Equal(t, 180, out.NewProductDays)
	assert.Equal(t, 188, out.TotalDays)
	assert.Equal(t, fixedNow().AddDate(0, 0, 188), out.NewExpirationDate)
}

func TestConvert_NoRemainingTime(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	tests := []struct {
		name      string
		expiresAt *time.Time
	}{
		{"nil expiry", nil},
		{"already expired", expiresIn(-3)},
		{"expires exactly now", expiresIn(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := calc.Convert(ConversionInput{
				CurrentTier:  TierBasic,
				TargetTier:   TierPro,
				ExpiresAt:    tt.expiresAt,
				TargetMonths: 3,
				Now:          fixedNow(),
			})
			require.NoError(t, err)

			assert.Zero(t, out.RemainingDays)
			assert.Zero(t, out.ConvertedDays)
			assert.Equal(t, 90, out.TotalDays, "only the newly purchased duration counts")
		})
	}
}

func TestConvert_PartialDayRoundsUp(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	expiry := fixedNow().Add(36 * time.Hour)
	out, err := calc.Convert(ConversionInput{
		CurrentTier:  TierBasic,
		TargetTier:   TierPro,
		ExpiresAt:    &expiry,
		TargetMonths: 1,
		Now:          fixedNow(),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.RemainingDays)
}

func TestConvert_NeverZeroRule(t *testing.T) {
	// Steep price gap so one remaining cheap day rounds to zero target days.
	policy := DefaultPolicy()
	policy.TierMonthlyPrice = map[int]int64{
		TierBasic: 300,
		TierElite: 30000,
	}
	calc := NewCalculator(policy)

	out, err := calc.Convert(ConversionInput{
		CurrentTier:  TierBasic,
		TargetTier:   TierElite,
		ExpiresAt:    expiresIn(1),
		TargetMonths: 1,
		Now:          fixedNow(),
	})
	require.NoError(t, err)

	// round(10 / 1000) = 0, forced up to 1: unused time never vanishes.
	assert.Equal(t, 1, out.ConvertedDays)
	assert.Equal(t, 31, out.TotalDays)
}

func TestConvert_MonotonicInTargetTier(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	naive := func(target int) int {
		out, err := calc.Convert(ConversionInput{
			CurrentTier:  TierBasic,
			TargetTier:   target,
			ExpiresAt:    expiresIn(20),
			TargetMonths: 1,
			Now:          fixedNow(),
		})
		require.NoError(t, err)
		return out.ConvertedDays
	}

	toPro := naive(TierPro)
	toElite := naive(TierElite)
	assert.GreaterOrEqual(t, toPro, toElite, "a pricier target tier yields fewer equivalent days")
	assert.GreaterOrEqual(t, toElite, ceilDays(20, 50), "bounded below by the fairness floor")
}

func TestConvert_CheapUpgradeKeepsNaiveConversion(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	// Basic -> Pro with 20 days left: round(20*133/233) = 11, above the
	// 10-day fairness floor, so the naive value stands.
	out, err := calc.Convert(ConversionInput{
		CurrentTier:  TierBasic,
		TargetTier:   TierPro,
		ExpiresAt:    expiresIn(20),
		TargetMonths: 1,
		Now:          fixedNow(),
	})
	require.NoError(t, err)

	assert.Equal(t, 20, out.RemainingDays)
	assert.Equal(t, int64(2660), out.RemainingValue)
	assert.Equal(t, 11, out.ConvertedDays)
	assert.Equal(t, 41, out.TotalDays)
}

func TestConvert_UnknownTier(t *testing.T) {
	calc := NewCalculator(DefaultPolicy())

	_, err := calc.Convert(ConversionInput{
		CurrentTier:  TierBasic,
		TargetTier:   9,
		ExpiresAt:    expiresIn(10),
		TargetMonths: 1,
		Now:          fixedNow(),
	})
	assert.Error(t, err)
}
