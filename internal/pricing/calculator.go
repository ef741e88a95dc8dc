// Package pricing computes the payable amount for a seat selection.
// Composition order is a fixed business rule: discount before tax, tax on
// the post-discount amount, each rounding applied exactly once.
package pricing

import (
	"fmt"
	"math"
	"time"

	"go-booking-engine/internal/model"
	apperrors "go-booking-engine/pkg/app_errors"
)

// Round2 rounds to two decimal places, half-up.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote is the full amount breakdown persisted on a booking.
type Quote struct {
	OriginalAmount float64
	DiscountAmount float64
	GSTAmount      float64
	TotalAmount    float64
}

// ComputeOriginalAmount sums the tier price of every requested seat.
// Unknown seats are bad input; a seat type without a configured tier
// fails closed with ErrPricingUnavailable.
func ComputeOriginalAmount(showtime *model.Showtime, seatTypes map[string]string, seats []string) (float64, error) {
	var amount float64
	for _, seat := range seats {
		seatType, ok := seatTypes[seat]
		if !ok {
			return 0, fmt.Errorf("%w: %s", apperrors.ErrUnknownSeat, seat)
		}
		price, ok := showtime.TierPrice(seatType)
		if !ok {
			return 0, fmt.Errorf("%w: %s", apperrors.ErrPricingUnavailable, seatType)
		}
		amount += price
	}
	return Round2(amount), nil
}

// ApplyPromo validates the code and computes its discount. A rejected
// code returns *apperrors.PromoRejectedError with the specific reason;
// an unmet minimum purchase is one of those reasons, never a silent
// zero discount.
func ApplyPromo(promo *model.PromoCode, originalAmount float64, now time.Time) (float64, error) {
	if promo == nil {
		return 0, nil
	}
	if valid, reason := promo.ValidateAt(now); !valid {
		return 0, &apperrors.PromoRejectedError{Code: promo.Code, Reason: reason}
	}
	if originalAmount < promo.MinPurchaseAmount {
		return 0, &apperrors.PromoRejectedError{Code: promo.Code, Reason: apperrors.PromoReasonMinPurchase}
	}
	return promo.CalculateDiscount(originalAmount), nil
}

// ApplyTax computes GST on the post-discount amount.
func ApplyTax(amountAfterDiscount, gstRatePercent float64) float64 {
	return Round2(amountAfterDiscount * gstRatePercent / 100)
}

// BuildQuote composes the amounts: total = round2(max(original-discount, 0) + gst).
func BuildQuote(originalAmount, discountAmount, gstRatePercent float64) Quote {
	net := originalAmount - discountAmount
	if net < 0 {
		net = 0
	}
	gst := ApplyTax(net, gstRatePercent)
	return Quote{
		OriginalAmount: originalAmount,
		DiscountAmount: discountAmount,
		GSTAmount:      gst,
		TotalAmount:    Round2(net + gst),
	}
}

// Total recomputes a booking total from its components; the stored value
// must always equal this.
func Total(originalAmount, discountAmount, gstAmount float64) float64 {
	net := originalAmount - discountAmount
	if net < 0 {
		net = 0
	}
	return Round2(net + gstAmount)
}
