// internal/domain/promo/dto.go
package promo

type ValidateRequest struct {
	Code      string `json:"code" binding:"required"`
	ProductID int64  `json:"product_id" binding:"required"`
}

type ValidateResponse struct {
	Valid         bool         `json:"valid"`
	Reason        string       `json:"reason,omitempty"`
	Code          string       `json:"code,omitempty"`
	DiscountType  DiscountType `json:"discount_type,omitempty"`
	DiscountValue int64        `json:"discount_value,omitempty"`
}
