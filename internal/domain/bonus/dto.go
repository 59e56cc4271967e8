// internal/domain/bonus/dto.go
package bonus

type BalanceResponse struct {
	Balance         int64 `json:"balance"`
	CashbackLevel   int   `json:"cashback_level"`
	CashbackPercent int64 `json:"cashback_percent"`
}
