// internal/domain/purchase/entity.go
package purchase

import (
	"database/sql"
	"time"
)

type PurchaseStatus string

const (
	StatusPending   PurchaseStatus = "pending"
	StatusPaid      PurchaseStatus = "paid"
	StatusFailed    PurchaseStatus = "failed"
	StatusCancelled PurchaseStatus = "cancelled"
)

// Purchase is the persisted record of a checkout: the full price breakdown
// frozen at quote time, plus the upgrade conversion snapshot when the buy is
// a tier upgrade. The payment gateway settles against FinalPrice; the
// snapshot guarantees charged and displayed amounts match.
type Purchase struct {
	ID        int64  `json:"id" db:"id"`
	Reference string `json:"reference" db:"reference"`
	UserID    int64  `json:"user_id" db:"user_id"`
	ProductID int64  `json:"product_id" db:"product_id"`

	// Price breakdown snapshot, whole currency units
	BasePrice              int64          `json:"base_price" db:"base_price"`
	DurationDiscountAmount int64          `json:"duration_discount_amount" db:"duration_discount_amount"`
	PromoCode              sql.NullString `json:"promo_code,omitempty" db:"promo_code"`
	PromoDiscountAmount    int64          `json:"promo_discount_amount" db:"promo_discount_amount"`
	BonusUsed              int64          `json:"bonus_used" db:"bonus_used"`
	FinalPrice             int64          `json:"final_price" db:"final_price"`
	CashbackPercent        int64          `json:"cashback_percent" db:"cashback_percent"`
	CashbackAmount         int64          `json:"cashback_amount" db:"cashback_amount"`
	Currency               string         `json:"currency" db:"currency"`

	// Upgrade conversion snapshot (valid only for tier upgrades)
	ConvertedDays sql.NullInt32 `json:"converted_days,omitempty" db:"converted_days"`
	TotalDays     sql.NullInt32 `json:"total_days,omitempty" db:"total_days"`
	NewExpiresAt  sql.NullTime  `json:"new_expires_at,omitempty" db:"new_expires_at"`

	// Settlement
	Status           PurchaseStatus `json:"status" db:"status"`
	PaymentReference sql.NullString `json:"payment_reference,omitempty" db:"payment_reference"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsUpgrade reports whether the purchase carried a tier-upgrade conversion.
func (p *Purchase) IsUpgrade() bool {
	return p.ConvertedDays.Valid
}
