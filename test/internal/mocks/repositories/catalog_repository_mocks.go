package repositories

import (
	"context"

	"go-booking-engine/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type ShowtimeRepositoryMock struct {
	mock.Mock
}

func NewShowtimeRepositoryMock() *ShowtimeRepositoryMock {
	return &ShowtimeRepositoryMock{}
}

func (m *ShowtimeRepositoryMock) FindByID(ctx context.Context, id int) (*model.Showtime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Showtime), args.Error(1)
}

func (m *ShowtimeRepositoryMock) ListActive(ctx context.Context) ([]*model.Showtime, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Showtime), args.Error(1)
}

func (m *ShowtimeRepositoryMock) GetBookedSeats(ctx context.Context, showtimeID int) ([]string, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type ScreenLayoutRepositoryMock struct {
	mock.Mock
}

func NewScreenLayoutRepositoryMock() *ScreenLayoutRepositoryMock {
	return &ScreenLayoutRepositoryMock{}
}

func (m *ScreenLayoutRepositoryMock) ListSeats(ctx context.Context, venueID, screenID int) ([]model.SeatInfo, error) {
	args := m.Called(ctx, venueID, screenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SeatInfo), args.Error(1)
}

type VenueRepositoryMock struct {
	mock.Mock
}

func NewVenueRepositoryMock() *VenueRepositoryMock {
	return &VenueRepositoryMock{}
}

func (m *VenueRepositoryMock) FindByID(ctx context.Context, id int) (*model.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Venue), args.Error(1)
}

type PromoRepositoryMock struct {
	mock.Mock
}

func NewPromoRepositoryMock() *PromoRepositoryMock {
	return &PromoRepositoryMock{}
}

func (m *PromoRepositoryMock) FindByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PromoCode), args.Error(1)
}

func (m *PromoRepositoryMock) IncrementUsesTx(ctx context.Context, tx pgx.Tx, id int) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type SettingsRepositoryMock struct {
	mock.Mock
}

func NewSettingsRepositoryMock() *SettingsRepositoryMock {
	return &SettingsRepositoryMock{}
}

func (m *SettingsRepositoryMock) GetFloat(ctx context.Context, key string) (float64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(float64), args.Error(1)
}
