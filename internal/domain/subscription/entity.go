// internal/domain/subscription/entity.go
package subscription

import (
	"database/sql"
	"time"
)

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusExpired   SubscriptionStatus = "expired"
	StatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a user's current membership state: which tier they are on
// and when it runs out. The pricing engine receives a fresh snapshot of this
// per calculation and never caches it.
type Subscription struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`

	TierLevel int                `json:"tier_level" db:"tier_level"`
	Status    SubscriptionStatus `json:"status" db:"status"`

	StartedAt time.Time    `json:"started_at" db:"started_at"`
	ExpiresAt sql.NullTime `json:"expires_at,omitempty" db:"expires_at"`

	AutoRenew    bool `json:"auto_renew" db:"auto_renew"`
	RenewalCount int  `json:"renewal_count" db:"renewal_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ActiveAt reports whether the subscription grants access at the given time.
func (s *Subscription) ActiveAt(t time.Time) bool {
	if s.Status != StatusActive {
		return false
	}
	return s.ExpiresAt.Valid && s.ExpiresAt.Time.After(t)
}
