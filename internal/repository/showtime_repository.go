package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go-booking-engine/internal/model"
	apperrors "go-booking-engine/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ShowtimeRepository reads catalog-owned showtime data. The engine never
// writes showtimes; seat ownership lives in booking_seats.
type ShowtimeRepository interface {
	FindByID(ctx context.Context, id int) (*model.Showtime, error)
	ListActive(ctx context.Context) ([]*model.Showtime, error)
	// GetBookedSeats derives the showtime's booked-seat set from the seats
	// of its non-cancelled bookings.
	GetBookedSeats(ctx context.Context, showtimeID int) ([]string, error)
}

type ShowtimeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewShowtimeRepository(pool *pgxpool.Pool) ShowtimeRepository {
	return &ShowtimeRepositoryImpl{
		pool: pool,
	}
}

const showtimeColumns = `
	id, subject_kind, subject_id, title, venue_id, screen_id, screen_name,
	start_time, end_time, total_seats, price_tiers, is_active,
	created_at, updated_at
`

func scanShowtime(row pgx.Row) (*model.Showtime, error) {
	var s model.Showtime
	var tiersJSON []byte
	err := row.Scan(
		&s.ID,
		&s.Subject.Kind,
		&s.Subject.ID,
		&s.Title,
		&s.VenueID,
		&s.ScreenID,
		&s.ScreenName,
		&s.StartTime,
		&s.EndTime,
		&s.TotalSeats,
		&tiersJSON,
		&s.IsActive,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tiersJSON, &s.PriceTiers); err != nil {
		return nil, fmt.Errorf("decode price tiers: %w", err)
	}
	return &s, nil
}

func (r *ShowtimeRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE id = $1
	`

	showtime, err := scanShowtime(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrShowtimeNotFound
		}
		return nil, err
	}

	return showtime, nil
}

func (r *ShowtimeRepositoryImpl) ListActive(ctx context.Context) ([]*model.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE is_active = TRUE
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]*model.Showtime, 0)

	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			return nil, err
		}
		showtimes = append(showtimes, showtime)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

func (r *ShowtimeRepositoryImpl) GetBookedSeats(ctx context.Context, showtimeID int) ([]string, error) {
	query := `
		SELECT seat_id
		FROM booking_seats
		WHERE showtime_id = $1
		ORDER BY seat_id
	`

	rows, err := r.pool.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]string, 0)

	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
