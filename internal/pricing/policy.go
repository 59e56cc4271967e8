// internal/pricing/policy.go
package pricing

// Policy holds the tunable business rules behind the price and conversion
// calculators. The constants observed in production are defaults here, not
// hard-coded into the arithmetic, so product can adjust them per environment.
type Policy struct {
	// BonusCapPercent caps bonus redemption at this share of the price
	// remaining after all discounts. Bonuses can never cover a whole purchase.
	BonusCapPercent int64

	// FairnessFloorPercent guarantees an upgrading user keeps at least this
	// share of their remaining days after conversion to a pricier tier.
	FairnessFloorPercent int

	// MinConvertedDays is the smallest conversion granted when any unused
	// time exists. Unused time must never vanish entirely.
	MinConvertedDays int

	// DaysPerMonth is the billing month length used for per-day pricing.
	DaysPerMonth int

	// TierMonthlyPrice is the undiscounted reference price per month for each
	// tier level. Conversion always uses these, never the discounted catalog
	// price, so promo effects cannot compound across tiers.
	TierMonthlyPrice map[int]int64

	// CashbackPercentByLevel maps a user's loyalty level to the cashback rate
	// applied to the final paid amount.
	CashbackPercentByLevel map[int]int64
}

// Tier levels as ordinals. Higher means pricier.
const (
	TierBasic = 1
	TierPro   = 2
	TierElite = 3
)

// DefaultPolicy returns the production pricing policy.
func DefaultPolicy() Policy {
	return Policy{
		BonusCapPercent:      30,
		FairnessFloorPercent: 50,
		MinConvertedDays:     1,
		DaysPerMonth:         30,
		TierMonthlyPrice: map[int]int64{
			TierBasic: 3990,
			TierPro:   6990,
			TierElite: 9990,
		},
		CashbackPercentByLevel: map[int]int64{
			1: 3,
			2: 5,
			3: 7,
			4: 10,
		},
	}
}

// CashbackPercent returns the cashback rate for a loyalty level, or 0 for an
// unknown level.
func (p Policy) CashbackPercent(level int) int64 {
	return p.CashbackPercentByLevel[level]
}
