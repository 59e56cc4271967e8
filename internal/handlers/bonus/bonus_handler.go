// internal/handlers/bonus/bonus_handler.go
package bonus

import (
	"errors"
	"net/http"

	bonusdomain "fitlife-service/internal/domain/bonus"
	"fitlife-service/internal/middleware"
	xerrors "fitlife-service/internal/pkg/errors"
	"fitlife-service/internal/pkg/response"
	service "fitlife-service/internal/service/bonus"

	"github.com/gin-gonic/gin"
)

type BonusHandler struct {
	bonusService *service.BonusService
}

func NewBonusHandler(bonusService *service.BonusService) *BonusHandler {
	return &BonusHandler{
		bonusService: bonusService,
	}
}

// GetBalance retrieves the caller's bonus balance and cashback rate
func (h *BonusHandler) GetBalance(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	acc, err := h.bonusService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			// No ledger yet: zero balance at the entry loyalty level.
			fresh := &bonusdomain.Account{UserID: userID, CashbackLevel: 1}
			response.Success(c, http.StatusOK, "bonus balance retrieved", bonusdomain.BalanceResponse{
				CashbackLevel:   fresh.CashbackLevel,
				CashbackPercent: h.bonusService.CashbackPercent(fresh),
			})
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to read bonus balance", err)
		return
	}

	response.Success(c, http.StatusOK, "bonus balance retrieved", bonusdomain.BalanceResponse{
		Balance:         acc.Balance,
		CashbackLevel:   acc.CashbackLevel,
		CashbackPercent: h.bonusService.CashbackPercent(acc),
	})
}
