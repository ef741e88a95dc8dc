package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-booking-engine/internal/model"
	apperrors "go-booking-engine/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id int) (*model.Booking, error)
	FindByRefID(ctx context.Context, refID string) (*model.Booking, error)
	ListByUserID(ctx context.Context, userID int) ([]*model.Booking, error)
	RefExists(ctx context.Context, ref string) (bool, error)
	// CheckIn is a guarded single-statement transition: it only succeeds
	// while the booking is still confirmed, so a raced duplicate check-in
	// loses cleanly.
	CheckIn(ctx context.Context, id int, staffID int) (*model.Booking, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Booking, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus) (*model.Booking, error)
	ConfirmPaymentTx(ctx context.Context, tx pgx.Tx, id int, paymentID, signature string) (*model.Booking, error)
	DeleteSeatsTx(ctx context.Context, tx pgx.Tx, bookingID int) error
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

const bookingColumns = `
	id, ref_id, user_id, showtime_id, seats,
	original_amount, discount_amount, gst_amount, total_amount,
	promo_code_id, status, booked_at,
	provider_order_id, provider_payment_id, provider_signature,
	checked_in_at, checked_in_by, created_at, updated_at
`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(
		&b.ID,
		&b.RefID,
		&b.UserID,
		&b.ShowtimeID,
		&b.Seats,
		&b.OriginalAmount,
		&b.DiscountAmount,
		&b.GSTAmount,
		&b.TotalAmount,
		&b.PromoCodeID,
		&b.Status,
		&b.BookedAt,
		&b.ProviderOrderID,
		&b.ProviderPaymentID,
		&b.ProviderSignature,
		&b.CheckedInAt,
		&b.CheckedInBy,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts the booking row and one booking_seats row per seat. The
// (showtime_id, seat_id) primary key on booking_seats is the durable
// backstop behind the Redis claim: a violation here means a seat was
// claimed without its owning booking being released, which the engine
// cannot self-heal.
func (r *BookingRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (
			ref_id, user_id, showtime_id, seats,
			original_amount, discount_amount, gst_amount, total_amount,
			promo_code_id, status, booked_at, provider_order_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + bookingColumns

	created, err := scanBooking(tx.QueryRow(ctx, query,
		booking.RefID, booking.UserID, booking.ShowtimeID, booking.Seats,
		booking.OriginalAmount, booking.DiscountAmount, booking.GSTAmount, booking.TotalAmount,
		booking.PromoCodeID, booking.Status, booking.BookedAt, booking.ProviderOrderID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	for _, seat := range booking.Seats {
		_, err := tx.Exec(ctx,
			`INSERT INTO booking_seats (booking_id, showtime_id, seat_id) VALUES ($1, $2, $3)`,
			created.ID, created.ShowtimeID, seat,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, fmt.Errorf("%w: seat %s already persisted for showtime %d",
					apperrors.ErrInvariantViolation, seat, created.ShowtimeID)
			}
			return nil, fmt.Errorf("failed to persist booking seat: %w", err)
		}
	}

	return created, nil
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) FindByRefID(ctx context.Context, refID string) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ref_id = UPPER($1)
	`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, refID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) ListByUserID(ctx context.Context, userID int) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY booked_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepositoryImpl) RefExists(ctx context.Context, ref string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE ref_id = UPPER($1))`

	var exists bool
	err := r.pool.QueryRow(ctx, query, ref).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *BookingRepositoryImpl) CheckIn(ctx context.Context, id int, staffID int) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, checked_in_at = $2, checked_in_by = $3, updated_at = $2
		WHERE id = $4 AND status = $5
		RETURNING ` + bookingColumns

	booking, err := scanBooking(r.pool.QueryRow(ctx, query,
		model.BookingStatusCheckedIn, time.Now().UTC(), staffID,
		id, model.BookingStatusConfirmed,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotConfirmed
		}
		return nil, fmt.Errorf("failed to check in booking: %w", err)
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	booking, err := scanBooking(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int, status model.BookingStatus) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRow(ctx, query, status, time.Now().UTC(), id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) ConfirmPaymentTx(ctx context.Context, tx pgx.Tx, id int, paymentID, signature string) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $1, provider_payment_id = $2, provider_signature = $3, updated_at = $4
		WHERE id = $5 AND status = $6
		RETURNING ` + bookingColumns

	booking, err := scanBooking(tx.QueryRow(ctx, query,
		model.BookingStatusConfirmed, paymentID, signature, time.Now().UTC(),
		id, model.BookingStatusPaymentPending,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to confirm booking payment: %w", err)
	}

	return booking, nil
}

// DeleteSeatsTx removes the booking's seat rows, committing the durable
// seat release together with the status change.
func (r *BookingRepositoryImpl) DeleteSeatsTx(ctx context.Context, tx pgx.Tx, bookingID int) error {
	_, err := tx.Exec(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking seats: %w", err)
	}
	return nil
}
