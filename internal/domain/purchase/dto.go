// internal/domain/purchase/dto.go
package purchase

type QuoteRequest struct {
	ProductID      int64  `json:"product_id" binding:"required"`
	PromoCode      string `json:"promo_code,omitempty"`
	BonusRequested int64  `json:"bonus_requested,omitempty"`
}

type CheckoutRequest struct {
	ProductID      int64  `json:"product_id" binding:"required"`
	PromoCode      string `json:"promo_code,omitempty"`
	BonusRequested int64  `json:"bonus_requested,omitempty"`

	// Upgrade marks the checkout as a tier upgrade; unused subscription time
	// is then converted onto the new tier.
	Upgrade bool `json:"upgrade,omitempty"`
}

type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required"`
}
