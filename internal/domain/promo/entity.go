// internal/domain/promo/entity.go
package promo

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

type PromoStatus string

const (
	PromoStatusActive    PromoStatus = "active"
	PromoStatusInactive  PromoStatus = "inactive"
	PromoStatusExpired   PromoStatus = "expired"
	PromoStatusSuspended PromoStatus = "suspended"
)

// PromoCode is a redeemable discount code. Codes match case-insensitively.
type PromoCode struct {
	ID   int64  `json:"id" db:"id"`
	Code string `json:"code" db:"code"`
	Name string `json:"name" db:"name"`

	// Discount
	DiscountType      DiscountType  `json:"discount_type" db:"discount_type"`
	DiscountValue     int64         `json:"discount_value" db:"discount_value"`
	MaxDiscountAmount sql.NullInt64 `json:"max_discount_amount,omitempty" db:"max_discount_amount"`

	// Validity window
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`

	// Usage limits
	MaxUses     sql.NullInt32 `json:"max_uses,omitempty" db:"max_uses"`
	CurrentUses int           `json:"current_uses" db:"current_uses"`

	// Targeting: empty means the code applies to every product.
	ApplicableProducts pq.Int64Array `json:"applicable_products,omitempty" db:"applicable_products"`

	// Status
	Status PromoStatus `json:"status" db:"status"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
