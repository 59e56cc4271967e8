// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql"
	"time"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusArchived ProductStatus = "archived"
)

// Product is an immutable catalog entry: one subscription tier at one
// duration. Price is in whole currency units and already carries the
// duration-tiered discount; ReferenceFullPrice is the per-month price times
// the duration, kept so the saving can be itemized.
type Product struct {
	ID          int64          `json:"id" db:"id"`
	SKU         string         `json:"sku" db:"sku"`
	Name        string         `json:"name" db:"name"`
	Description sql.NullString `json:"description,omitempty" db:"description"`

	// Tier and duration
	TierLevel      int `json:"tier_level" db:"tier_level"`
	DurationMonths int `json:"duration_months" db:"duration_months"`

	// Pricing
	Price              int64  `json:"price" db:"price"`
	ReferenceFullPrice int64  `json:"reference_full_price" db:"reference_full_price"`
	Currency           string `json:"currency" db:"currency"`

	// Status
	Status   ProductStatus `json:"status" db:"status"`
	IsPublic bool          `json:"is_public" db:"is_public"`

	// Metadata
	Metadata map[string]interface{} `json:"metadata,omitempty" db:"metadata"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Purchasable reports whether the product can be sold right now.
func (p *Product) Purchasable() bool {
	return p.Status == ProductStatusActive && p.IsPublic
}
