// internal/pricing/conversion.go
package pricing

import (
	"fmt"
	"time"
)

// ConversionInput describes a tier upgrade mid-subscription. The caller has
// already established that TargetTier is strictly above CurrentTier; the
// conversion is undefined otherwise. Now is explicit so the computation stays
// clock-free and testable.
type ConversionInput struct {
	CurrentTier  int
	TargetTier   int
	ExpiresAt    *time.Time
	TargetMonths int
	Now          time.Time
}

// Conversion re-expresses the monetary value of unused days on the current
// tier as an equivalent day count on the target tier.
type Conversion struct {
	RemainingDays     int       `json:"remaining_days"`
	RemainingValue    int64     `json:"remaining_value"`
	ConvertedDays     int       `json:"converted_days"`
	NewProductDays    int       `json:"new_product_days"`
	TotalDays         int       `json:"total_days"`
	NewExpirationDate time.Time `json:"new_expiration_date"`
}

// Convert turns unused subscription time into days on the target tier.
//
// A flat day-for-day carryover would be unfair because tiers have different
// per-day prices, so remaining time is priced at the current tier's reference
// rate and re-expressed at the target tier's rate. Two guards protect the
// user: conversion never drops to zero while any time remains, and it never
// eats more than half the remaining days regardless of the tier price gap.
func (c *Calculator) Convert(in ConversionInput) (Conversion, error) {
	oldMonthly, ok := c.policy.TierMonthlyPrice[in.CurrentTier]
	if !ok {
		return Conversion{}, fmt.Errorf("no reference price for tier %d", in.CurrentTier)
	}
	newMonthly, ok := c.policy.TierMonthlyPrice[in.TargetTier]
	if !ok {
		return Conversion{}, fmt.Errorf("no reference price for tier %d", in.TargetTier)
	}

	out := Conversion{
		NewProductDays: in.TargetMonths * c.policy.DaysPerMonth,
	}

	if in.ExpiresAt != nil {
		if d := in.ExpiresAt.Sub(in.Now); d > 0 {
			out.RemainingDays = int((d + 24*time.Hour - 1) / (24 * time.Hour))
		}
	}

	if out.RemainingDays > 0 {
		pricePerDayOld := float64(oldMonthly) / float64(c.policy.DaysPerMonth)
		pricePerDayNew := float64(newMonthly) / float64(c.policy.DaysPerMonth)

		out.RemainingValue = roundUnits(float64(out.RemainingDays) * pricePerDayOld)
		out.ConvertedDays = int(roundUnits(float64(out.RemainingValue) / pricePerDayNew))

		// Unused time must never vanish entirely.
		if out.ConvertedDays < c.policy.MinConvertedDays {
			out.ConvertedDays = c.policy.MinConvertedDays
		}

		// Fairness floor: the price-gap penalty may not cost the user more
		// than half their remaining days.
		if floor := ceilDays(out.RemainingDays, c.policy.FairnessFloorPercent); out.ConvertedDays < floor {
			out.ConvertedDays = floor
		}
	}

	out.TotalDays = out.ConvertedDays + out.NewProductDays
	out.NewExpirationDate = in.Now.AddDate(0, 0, out.TotalDays)

	return out, nil
}
