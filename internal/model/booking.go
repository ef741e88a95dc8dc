package model

import "time"

// BookingStatus lifecycle states.
type BookingStatus string

const (
	BookingStatusPaymentPending BookingStatus = "payment_pending"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusPaymentFailed  BookingStatus = "payment_failed"
	BookingStatusCancelled      BookingStatus = "cancelled"
	BookingStatusCheckedIn      BookingStatus = "checked_in"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPaymentPending, BookingStatusConfirmed,
		BookingStatusPaymentFailed, BookingStatusCancelled, BookingStatusCheckedIn:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusPaymentFailed, BookingStatusCancelled, BookingStatusCheckedIn:
		return true
	}
	return false
}

// CanTransitionTo checks the state machine:
// payment_pending -> confirmed | payment_failed | cancelled
// confirmed       -> checked_in | cancelled
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	transitions := map[BookingStatus][]BookingStatus{
		BookingStatusPaymentPending: {BookingStatusConfirmed, BookingStatusPaymentFailed, BookingStatusCancelled},
		BookingStatusConfirmed:      {BookingStatusCheckedIn, BookingStatusCancelled},
		BookingStatusPaymentFailed:  {},
		BookingStatusCancelled:      {},
		BookingStatusCheckedIn:      {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Booking is one purchase transaction for a set of seats on one showtime.
// TotalAmount is always recomputed from its components (see pricing.Total),
// never stored independently of them.
type Booking struct {
	ID             int           `json:"id" db:"id"`
	RefID          string        `json:"ref_id" db:"ref_id"`
	UserID         int           `json:"user_id" db:"user_id"`
	ShowtimeID     int           `json:"showtime_id" db:"showtime_id"`
	Seats          []string      `json:"seats" db:"seats"`
	OriginalAmount float64       `json:"original_amount" db:"original_amount"`
	DiscountAmount float64       `json:"discount_amount" db:"discount_amount"`
	GSTAmount      float64       `json:"gst_amount" db:"gst_amount"`
	TotalAmount    float64       `json:"total_amount" db:"total_amount"`
	PromoCodeID    *int          `json:"promo_code_id,omitempty" db:"promo_code_id"`
	Status         BookingStatus `json:"status" db:"status"`
	BookedAt       time.Time     `json:"booked_at" db:"booked_at"`

	// Payment provider correlation, set in gateway mode.
	ProviderOrderID   *string `json:"provider_order_id,omitempty" db:"provider_order_id"`
	ProviderPaymentID *string `json:"provider_payment_id,omitempty" db:"provider_payment_id"`
	ProviderSignature *string `json:"-" db:"provider_signature"`

	CheckedInAt *time.Time `json:"checked_in_at,omitempty" db:"checked_in_at"`
	CheckedInBy *int       `json:"checked_in_by,omitempty" db:"checked_in_by"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (b *Booking) IsCheckedIn() bool {
	return b.Status == BookingStatusCheckedIn
}

// CreateBookingRequest is the inbound shape for booking creation.
type CreateBookingRequest struct {
	UserID     int      `json:"user_id" binding:"required"`
	ShowtimeID int      `json:"showtime_id" binding:"required"`
	Seats      []string `json:"seats" binding:"required,min=1"`
	PromoCode  string   `json:"promo_code"`
}

// ConfirmPaymentRequest carries the provider confirmation callback.
type ConfirmPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// CancelBookingRequest identifies the acting principal.
type CancelBookingRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

// CheckInRequest is submitted by venue staff at the gate.
type CheckInRequest struct {
	StaffID   int    `json:"staff_id" binding:"required"`
	StaffRole Role   `json:"staff_role" binding:"required"`
	Approved  bool   `json:"approved"`
	RefID     string `json:"ref_id" binding:"required"`
}

// CheckInResult is the gate summary returned on successful check-in.
type CheckInResult struct {
	RefID       string    `json:"ref_id"`
	Seats       []string  `json:"seats"`
	Title       string    `json:"title"`
	ScreenName  string    `json:"screen_name"`
	StartTime   time.Time `json:"start_time"`
	CheckedInAt time.Time `json:"checked_in_at"`
}
