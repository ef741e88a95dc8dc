package repository

import (
	"context"

	"go-booking-engine/internal/model"
	apperrors "go-booking-engine/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScreenLayoutRepository reads the seat-type-tagged seat map of a screen.
type ScreenLayoutRepository interface {
	ListSeats(ctx context.Context, venueID, screenID int) ([]model.SeatInfo, error)
}

// VenueRepository resolves venue ownership for check-in authorization.
type VenueRepository interface {
	FindByID(ctx context.Context, id int) (*model.Venue, error)
}

type ScreenLayoutRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewScreenLayoutRepository(pool *pgxpool.Pool) ScreenLayoutRepository {
	return &ScreenLayoutRepositoryImpl{
		pool: pool,
	}
}

func (r *ScreenLayoutRepositoryImpl) ListSeats(ctx context.Context, venueID, screenID int) ([]model.SeatInfo, error) {
	query := `
		SELECT seat_id, seat_type
		FROM screen_seats
		WHERE venue_id = $1 AND screen_id = $2
		ORDER BY seat_id
	`

	rows, err := r.pool.Query(ctx, query, venueID, screenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.SeatInfo, 0)

	for rows.Next() {
		var seat model.SeatInfo
		if err := rows.Scan(&seat.SeatID, &seat.SeatType); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

type VenueRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) VenueRepository {
	return &VenueRepositoryImpl{
		pool: pool,
	}
}

func (r *VenueRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Venue, error) {
	query := `
		SELECT id, name, owner_id
		FROM venues
		WHERE id = $1
	`

	var venue model.Venue
	err := r.pool.QueryRow(ctx, query, id).Scan(&venue.ID, &venue.Name, &venue.OwnerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, err
	}

	return &venue, nil
}
