package model

import (
	"math"
	"time"

	apperrors "go-booking-engine/pkg/app_errors"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PromoCode is a discount policy. Codes are matched case-insensitively;
// Uses is incremented exactly once per confirmed booking that applied it.
type PromoCode struct {
	ID                int          `json:"id" db:"id"`
	Code              string       `json:"code" db:"code"`
	IsActive          bool         `json:"is_active" db:"is_active"`
	DiscountType      DiscountType `json:"discount_type" db:"discount_type"`
	DiscountValue     float64      `json:"discount_value" db:"discount_value"`
	MinPurchaseAmount float64      `json:"min_purchase_amount" db:"min_purchase_amount"`
	MaxDiscountAmount float64      `json:"max_discount_amount" db:"max_discount_amount"`
	Uses              int          `json:"uses" db:"uses"`
	MaxUses           *int         `json:"max_uses,omitempty" db:"max_uses"`
	ValidFrom         *time.Time   `json:"valid_from,omitempty" db:"valid_from"`
	ValidUntil        *time.Time   `json:"valid_until,omitempty" db:"valid_until"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
}

// ValidateAt checks the code may be applied at the given instant. The
// returned reason is one of the apperrors.PromoReason* constants and is
// empty when valid.
func (p *PromoCode) ValidateAt(now time.Time) (bool, string) {
	if !p.IsActive {
		return false, apperrors.PromoReasonInactive
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return false, apperrors.PromoReasonOutOfWindow
	}
	if p.ValidUntil != nil && now.After(*p.ValidUntil) {
		return false, apperrors.PromoReasonOutOfWindow
	}
	if p.MaxUses != nil && *p.MaxUses > 0 && p.Uses >= *p.MaxUses {
		return false, apperrors.PromoReasonUsageLimit
	}
	return true, ""
}

// CalculateDiscount returns the discount for the given amount: 0 when the
// minimum purchase is unmet; percentage discounts are capped at
// MaxDiscountAmount (when set); fixed discounts never exceed the amount.
// The result is never negative.
func (p *PromoCode) CalculateDiscount(amount float64) float64 {
	if amount < p.MinPurchaseAmount {
		return 0
	}

	var discount float64
	switch p.DiscountType {
	case DiscountTypePercentage:
		discount = amount * p.DiscountValue / 100
		if p.MaxDiscountAmount > 0 && discount > p.MaxDiscountAmount {
			discount = p.MaxDiscountAmount
		}
	case DiscountTypeFixed:
		discount = p.DiscountValue
	default:
		return 0
	}

	if discount > amount {
		discount = amount
	}
	if discount < 0 {
		return 0
	}
	// Keep money at two decimal places.
	return math.Round(discount*100) / 100
}
