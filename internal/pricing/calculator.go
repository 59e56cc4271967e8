// internal/pricing/calculator.go
package pricing

// Calculator computes price breakdowns and upgrade conversions. It is a pure
// domain service: no clock, no session, no storage. Every input comes from
// the caller, every call recomputes from scratch, and concurrent calls need
// no coordination.
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy}
}

// DiscountType matches the promo code discount kinds in the catalog.
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

// ResolvedPromo is a promo code that upstream validation has already accepted
// for the product being priced. The calculator trusts it as-is; an invalid or
// inapplicable code never reaches this struct.
type ResolvedPromo struct {
	Code  string
	Type  DiscountType
	Value int64
	// MaxAmount caps a percentage discount in currency units. Zero means no cap.
	MaxAmount int64
}

// QuoteInput carries everything the price calculator needs.
type QuoteInput struct {
	// BasePrice is the catalog price for the selected tier and duration.
	// Duration-tiered pricing is a catalog property, already applied here.
	BasePrice int64

	// ReferenceFullPrice is the "price per month x months" baseline used only
	// to derive the displayed duration discount.
	ReferenceFullPrice int64

	// Promo is nil when no valid code applies.
	Promo *ResolvedPromo

	// BonusRequested is the bonus amount the user asked to redeem. It is
	// clamped, never rejected.
	BonusRequested int64

	// BonusBalance is the user's current steps balance. 1 step = 1 currency unit.
	BonusBalance int64

	// CashbackPercent is the user's loyalty cashback rate.
	CashbackPercent int64
}

// Calculation is the itemized price breakdown. Ephemeral: recomputed on every
// input change, persisted only as a snapshot on the resulting purchase.
type Calculation struct {
	BasePrice int64 `json:"base_price"`

	DurationDiscountPercent int64 `json:"duration_discount_percent"`
	DurationDiscountAmount  int64 `json:"duration_discount_amount"`

	PromoCode           string       `json:"promo_code,omitempty"`
	PromoDiscountType   DiscountType `json:"promo_discount_type,omitempty"`
	PromoDiscountValue  int64        `json:"promo_discount_value,omitempty"`
	PromoDiscountAmount int64        `json:"promo_discount_amount"`

	PriceAfterDiscounts int64 `json:"price_after_discounts"`

	BonusCap   int64 `json:"bonus_cap"`
	BonusToUse int64 `json:"bonus_to_use"`

	FinalPrice int64 `json:"final_price"`

	CashbackPercent int64 `json:"cashback_percent"`
	CashbackAmount  int64 `json:"cashback_amount"`

	TotalSavings int64 `json:"total_savings"`
}

// Calculate produces the full price breakdown. Steps apply in fixed order;
// each discount applies to the result of the previous step.
func (c *Calculator) Calculate(in QuoteInput) Calculation {
	out := Calculation{BasePrice: in.BasePrice}

	// Step 1: duration discount, display-only. The base price already carries
	// the duration tier; the reference baseline just quantifies the saving.
	out.DurationDiscountAmount = maxInt64(0, in.ReferenceFullPrice-in.BasePrice)
	if in.ReferenceFullPrice > 0 && out.DurationDiscountAmount > 0 {
		out.DurationDiscountPercent = roundUnits(float64(out.DurationDiscountAmount) / float64(in.ReferenceFullPrice) * 100)
	}
	priceAfterDuration := in.BasePrice

	// Step 2: promo discount, clamped so the price never goes negative.
	if in.Promo != nil {
		out.PromoCode = in.Promo.Code
		out.PromoDiscountType = in.Promo.Type
		out.PromoDiscountValue = in.Promo.Value

		switch in.Promo.Type {
		case DiscountTypePercentage:
			amount := percentOf(priceAfterDuration, in.Promo.Value)
			if in.Promo.MaxAmount > 0 && amount > in.Promo.MaxAmount {
				amount = in.Promo.MaxAmount
			}
			out.PromoDiscountAmount = minInt64(amount, priceAfterDuration)
		case DiscountTypeFixedAmount:
			out.PromoDiscountAmount = minInt64(in.Promo.Value, priceAfterDuration)
		}
	}
	out.PriceAfterDiscounts = priceAfterDuration - out.PromoDiscountAmount

	// Step 3: bonus redemption. Clamped to the cap and the balance; an
	// over-cap request is a normalization, not an error.
	out.BonusCap = floorPercentOf(out.PriceAfterDiscounts, c.policy.BonusCapPercent)
	out.BonusToUse = minInt64(minInt64(maxInt64(0, in.BonusRequested), out.BonusCap), maxInt64(0, in.BonusBalance))

	// Step 4: final price, floored at zero.
	out.FinalPrice = maxInt64(0, out.PriceAfterDiscounts-out.BonusToUse)

	// Step 5: cashback estimate on the final paid amount.
	out.CashbackPercent = in.CashbackPercent
	out.CashbackAmount = percentOf(out.FinalPrice, in.CashbackPercent)

	// Step 6: total savings, display only.
	out.TotalSavings = out.DurationDiscountAmount + out.PromoDiscountAmount + out.BonusToUse

	return out
}
