// internal/handlers/upgrade/upgrade_handler.go
package upgrade

import (
	"errors"
	"net/http"

	"fitlife-service/internal/domain/subscription"
	"fitlife-service/internal/middleware"
	xerrors "fitlife-service/internal/pkg/errors"
	"fitlife-service/internal/pkg/response"
	service "fitlife-service/internal/service/upgrade"

	"github.com/gin-gonic/gin"
)

type UpgradeHandler struct {
	upgradeService *service.UpgradeService
}

func NewUpgradeHandler(upgradeService *service.UpgradeService) *UpgradeHandler {
	return &UpgradeHandler{
		upgradeService: upgradeService,
	}
}

// GetSubscription returns the caller's current subscription state
func (h *UpgradeHandler) GetSubscription(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	sub, err := h.upgradeService.CurrentSubscription(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNoActiveSubscription) {
			response.Error(c, http.StatusNotFound, "no active subscription", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to read subscription", err)
		return
	}

	resp := subscription.SubscriptionResponse{
		TierLevel:    sub.TierLevel,
		Status:       string(sub.Status),
		AutoRenew:    sub.AutoRenew,
		RenewalCount: sub.RenewalCount,
	}
	if sub.ExpiresAt.Valid {
		expiresAt := sub.ExpiresAt.Time
		resp.ExpiresAt = &expiresAt
	}

	response.Success(c, http.StatusOK, "subscription retrieved", resp)
}

// Preview converts the caller's unused subscription days onto a target tier.
// Idempotent: every tier/duration selection recomputes from the same snapshot.
func (h *UpgradeHandler) Preview(c *gin.Context) {
	var req subscription.UpgradePreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	if req.DurationMonths < 1 {
		response.Error(c, http.StatusBadRequest, "months must be positive", nil)
		return
	}

	userID := middleware.MustGetUserID(c)

	conv, err := h.upgradeService.Preview(c.Request.Context(), userID, req.TargetTierLevel, req.DurationMonths)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, xerrors.ErrNoActiveSubscription):
			status = http.StatusNotFound
		case errors.Is(err, xerrors.ErrNotAnUpgrade):
			status = http.StatusBadRequest
		}
		response.Error(c, status, "failed to compute upgrade preview", err)
		return
	}

	response.Success(c, http.StatusOK, "upgrade preview computed", conv)
}
