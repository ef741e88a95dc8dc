package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrShowtimeNotFound    = errors.New("showtime not found")
	ErrShowtimeUnavailable = errors.New("showtime unavailable")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrVenueNotFound       = errors.New("venue not found")
	ErrPromoNotFound       = errors.New("promo code not found")
	ErrPricingUnavailable  = errors.New("no price tier for seat type")
	ErrUnknownSeat         = errors.New("seat not in screen layout")
	ErrCutoffExceeded      = errors.New("too close to showtime to cancel")
	ErrAlreadyTerminal     = errors.New("booking already in terminal state")
	ErrNotConfirmed        = errors.New("booking is not confirmed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrReferenceExhausted  = errors.New("booking reference allocation exhausted")
	ErrInvariantViolation  = errors.New("booking invariant violated")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)

// SeatsUnavailableError reports exactly which requested seats were already
// claimed. The claim is all-or-nothing, so a failing request took none of
// the seats it asked for.
type SeatsUnavailableError struct {
	Seats []string
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Seats, ", "))
}

// Promo rejection reasons. "valid code, zero discount" and "code rejected"
// are distinct outcomes and must stay distinguishable to the caller.
const (
	PromoReasonInactive    = "inactive"
	PromoReasonOutOfWindow = "out_of_window"
	PromoReasonUsageLimit  = "usage_limit_reached"
	PromoReasonMinPurchase = "minimum_purchase_not_met"
)

type PromoRejectedError struct {
	Code   string
	Reason string
}

func (e *PromoRejectedError) Error() string {
	return fmt.Sprintf("promo code %q rejected: %s", e.Code, e.Reason)
}

// AlreadyCheckedInError carries the original check-in time so the gate
// can report when the ticket was first redeemed.
type AlreadyCheckedInError struct {
	CheckedInAt time.Time
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("already checked in at %s", e.CheckedInAt.Format(time.RFC3339))
}
