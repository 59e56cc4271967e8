// internal/handlers/checkout/checkout_handler.go
package checkout

import (
	"errors"
	"net/http"
	"strconv"

	"fitlife-service/internal/domain/purchase"
	"fitlife-service/internal/middleware"
	xerrors "fitlife-service/internal/pkg/errors"
	"fitlife-service/internal/pkg/response"
	service "fitlife-service/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Quote computes the price breakdown without persisting anything. The client
// calls this on every input change; each response fully replaces the last.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req purchase.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	userID := middleware.MustGetUserID(c)

	calc, err := h.checkoutService.Quote(c.Request.Context(), userID, &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, xerrors.ErrProductNotPurchasable):
			status = http.StatusUnprocessableEntity
		}
		response.Error(c, status, "failed to compute quote", err)
		return
	}

	response.Success(c, http.StatusOK, "quote computed", calc)
}

// Checkout persists a pending purchase for the payment gateway to settle
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req purchase.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	userID := middleware.MustGetUserID(c)

	p, calc, err := h.checkoutService.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, xerrors.ErrProductNotPurchasable):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, xerrors.ErrNotAnUpgrade), errors.Is(err, xerrors.ErrNoActiveSubscription):
			status = http.StatusBadRequest
		}
		response.Error(c, status, "failed to create purchase", err)
		return
	}

	response.Success(c, http.StatusCreated, "purchase created", gin.H{
		"purchase":    p,
		"calculation": calc,
	})
}

// ListPurchases returns the caller's purchase history
func (h *CheckoutHandler) ListPurchases(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	purchases, err := h.checkoutService.ListPurchases(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list purchases", err)
		return
	}

	response.Success(c, http.StatusOK, "purchases retrieved", gin.H{
		"purchases": purchases,
		"count":     len(purchases),
	})
}

// ConfirmPayment marks a purchase paid. Stands in for the payment gateway
// callback in environments without a real gateway.
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		response.Error(c, http.StatusBadRequest, "purchase reference is required", nil)
		return
	}

	var req purchase.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	p, err := h.checkoutService.ConfirmPayment(c.Request.Context(), reference, req.PaymentReference)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, xerrors.ErrConflict):
			status = http.StatusConflict
		}
		response.Error(c, status, "failed to confirm payment", err)
		return
	}

	response.Success(c, http.StatusOK, "payment confirmed", p)
}
