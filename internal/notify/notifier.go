// Package notify is the notification collaborator boundary. The engine
// never blocks on or fails because of a notification; delivery runs on
// the worker after commit.
package notify

import (
	"context"
	"time"

	"go-booking-engine/pkg/logger"

	"go.uber.org/zap"
)

// BookingConfirmedEvent is the payload handed to downstream consumers
// (email, tickets, analytics).
type BookingConfirmedEvent struct {
	BookingID   int       `json:"booking_id"`
	RefID       string    `json:"ref_id"`
	UserID      int       `json:"user_id"`
	ShowtimeID  int       `json:"showtime_id"`
	Seats       []string  `json:"seats"`
	TotalAmount float64   `json:"total_amount"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

type Notifier interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
}

// LogNotifier just records the event; used in tests and when no broker
// is configured.
type LogNotifier struct{}

func NewLogNotifier() Notifier {
	return &LogNotifier{}
}

func (n *LogNotifier) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	logger.WithComponent("notify").Info("booking confirmed",
		zap.Int("booking_id", event.BookingID),
		zap.String("ref_id", event.RefID),
		zap.Int("user_id", event.UserID),
		zap.Strings("seats", event.Seats),
		zap.Float64("total_amount", event.TotalAmount),
	)
	return nil
}
