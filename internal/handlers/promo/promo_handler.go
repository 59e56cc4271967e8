// internal/handlers/promo/promo_handler.go
package promo

import (
	"net/http"
	"time"

	promodomain "fitlife-service/internal/domain/promo"
	"fitlife-service/internal/pkg/response"
	service "fitlife-service/internal/service/promo"

	"github.com/gin-gonic/gin"
)

type PromoHandler struct {
	promoService *service.PromoService
}

func NewPromoHandler(promoService *service.PromoService) *PromoHandler {
	return &PromoHandler{
		promoService: promoService,
	}
}

// Validate checks a promo code against a product. Unlike the quote path,
// which silently drops a bad code, this endpoint reports why a code was
// rejected so the UI can tell the user.
func (h *PromoHandler) Validate(c *gin.Context) {
	var req promodomain.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resolved, _, err := h.promoService.Resolve(c.Request.Context(), req.Code, req.ProductID, time.Now())
	if err != nil {
		response.Success(c, http.StatusOK, "promo code rejected", promodomain.ValidateResponse{
			Valid:  false,
			Reason: err.Error(),
		})
		return
	}

	response.Success(c, http.StatusOK, "promo code valid", promodomain.ValidateResponse{
		Valid:         true,
		Code:          resolved.Code,
		DiscountType:  promodomain.DiscountType(resolved.Type),
		DiscountValue: resolved.Value,
	})
}
