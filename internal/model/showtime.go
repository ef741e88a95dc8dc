package model

import "time"

// SubjectKind tags what a showtime screens: a movie or a live event.
type SubjectKind string

const (
	SubjectMovie SubjectKind = "movie"
	SubjectEvent SubjectKind = "event"
)

func (k SubjectKind) IsValid() bool {
	return k == SubjectMovie || k == SubjectEvent
}

// ShowtimeSubject is a tagged union; exactly one subject per showtime is
// enforced by construction instead of two nullable refs.
type ShowtimeSubject struct {
	Kind SubjectKind `json:"kind" db:"subject_kind"`
	ID   int         `json:"id" db:"subject_id"`
}

// Showtime is one scheduled screening at one screen. Catalog management
// owns creation; the engine only reads it and mutates the booked-seat set
// through the seat inventory.
type Showtime struct {
	ID         int                `json:"id" db:"id"`
	Subject    ShowtimeSubject    `json:"subject"`
	Title      string             `json:"title" db:"title"`
	VenueID    int                `json:"venue_id" db:"venue_id"`
	ScreenID   int                `json:"screen_id" db:"screen_id"`
	ScreenName string             `json:"screen_name" db:"screen_name"`
	StartTime  time.Time          `json:"start_time" db:"start_time"`
	EndTime    time.Time          `json:"end_time" db:"end_time"`
	TotalSeats int                `json:"total_seats" db:"total_seats"`
	PriceTiers map[string]float64 `json:"price_tiers" db:"price_tiers"`
	IsActive   bool               `json:"is_active" db:"is_active"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" db:"updated_at"`

	// BookedSeats is derived from booking_seats rows, not a column.
	BookedSeats []string `json:"booked_seats,omitempty" db:"-"`
}

// TierPrice looks up the price for a seat type.
func (s *Showtime) TierPrice(seatType string) (float64, bool) {
	price, ok := s.PriceTiers[seatType]
	return price, ok
}

// IsBookable checks the showtime can accept new bookings at all; per-seat
// availability is the seat inventory's job.
func (s *Showtime) IsBookable() bool {
	return s.IsActive && len(s.PriceTiers) > 0
}

// ShowtimeResponse is the read-side view exposing seat availability.
type ShowtimeResponse struct {
	ID          int                `json:"id"`
	Subject     ShowtimeSubject    `json:"subject"`
	Title       string             `json:"title"`
	ScreenName  string             `json:"screen_name"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	PriceTiers  map[string]float64 `json:"price_tiers"`
	TotalSeats  int                `json:"total_seats"`
	BookedSeats []string           `json:"booked_seats"`
	IsActive    bool               `json:"is_active"`
}
