// internal/service/promo/promo_test.go
package promo

import (
	"database/sql"
	"testing"
	"time"

	"fitlife-service/internal/domain/promo"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func validCode() *promo.PromoCode {
	return &promo.PromoCode{
		ID:            1,
		Code:          "FIT10",
		DiscountType:  promo.DiscountTypePercentage,
		DiscountValue: 10,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:        promo.PromoStatusActive,
	}
}

func TestValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(pc *promo.PromoCode)
		wantErr string
	}{
		{
			name:   "valid code",
			mutate: func(pc *promo.PromoCode) {},
		},
		{
			name:    "inactive status",
			mutate:  func(pc *promo.PromoCode) { pc.Status = promo.PromoStatusSuspended },
			wantErr: "not active",
		},
		{
			name:    "percentage above 100",
			mutate:  func(pc *promo.PromoCode) { pc.DiscountValue = 150 },
			wantErr: "invalid percentage",
		},
		{
			name:    "percentage of zero",
			mutate:  func(pc *promo.PromoCode) { pc.DiscountValue = 0 },
			wantErr: "invalid percentage",
		},
		{
			name: "negative fixed amount",
			mutate: func(pc *promo.PromoCode) {
				pc.DiscountType = promo.DiscountTypeFixedAmount
				pc.DiscountValue = -100
			},
			wantErr: "invalid discount amount",
		},
		{
			name:    "unknown discount type",
			mutate:  func(pc *promo.PromoCode) { pc.DiscountType = "free_trial" },
			wantErr: "unknown discount type",
		},
		{
			name:    "not started yet",
			mutate:  func(pc *promo.PromoCode) { pc.StartDate = now.AddDate(0, 1, 0) },
			wantErr: "validity window",
		},
		{
			name:    "already ended",
			mutate:  func(pc *promo.PromoCode) { pc.EndDate = now.AddDate(0, -1, 0) },
			wantErr: "validity window",
		},
		{
			name: "usage limit reached",
			mutate: func(pc *promo.PromoCode) {
				pc.MaxUses = sql.NullInt32{Int32: 100, Valid: true}
				pc.CurrentUses = 100
			},
			wantErr: "usage limit",
		},
		{
			name: "under usage limit",
			mutate: func(pc *promo.PromoCode) {
				pc.MaxUses = sql.NullInt32{Int32: 100, Valid: true}
				pc.CurrentUses = 99
			},
		},
		{
			name:    "not applicable to product",
			mutate:  func(pc *promo.PromoCode) { pc.ApplicableProducts = pq.Int64Array{7, 8} },
			wantErr: "not applicable",
		},
		{
			name:   "applicable product listed",
			mutate: func(pc *promo.PromoCode) { pc.ApplicableProducts = pq.Int64Array{7, 42} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := validCode()
			tt.mutate(pc)

			err := Validate(pc, 42, now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
