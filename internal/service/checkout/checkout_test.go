// internal/service/checkout/checkout_test.go
package checkout

import (
	"database/sql"
	"testing"
	"time"

	"fitlife-service/internal/domain/purchase"

	"github.com/stretchr/testify/assert"
)

func TestNewSubscriptionExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := now.AddDate(0, 0, 188)

	tests := []struct {
		name string
		p    *purchase.Purchase
		want time.Time
	}{
		{
			name: "plain purchase runs months from now",
			p:    &purchase.Purchase{},
			want: now.AddDate(0, 6, 0),
		},
		{
			name: "upgrade purchase keeps the frozen conversion expiry",
			p: &purchase.Purchase{
				ConvertedDays: sql.NullInt32{Int32: 8, Valid: true},
				TotalDays:     sql.NullInt32{Int32: 188, Valid: true},
				NewExpiresAt:  sql.NullTime{Time: snapshot, Valid: true},
			},
			want: snapshot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newSubscriptionExpiry(tt.p, 6, now))
		})
	}
}
