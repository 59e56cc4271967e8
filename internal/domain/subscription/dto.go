// internal/domain/subscription/dto.go
package subscription

import "time"

type UpgradePreviewRequest struct {
	TargetTierLevel int `form:"tier" binding:"required"`
	DurationMonths  int `form:"months" binding:"required"`
}

type SubscriptionResponse struct {
	TierLevel    int        `json:"tier_level"`
	Status       string     `json:"status"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	AutoRenew    bool       `json:"auto_renew"`
	RenewalCount int        `json:"renewal_count"`
}
