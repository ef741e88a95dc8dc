package caches

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SeatInventoryManagerMock struct {
	mock.Mock
}

func NewSeatInventoryManagerMock() *SeatInventoryManagerMock {
	return &SeatInventoryManagerMock{}
}

func (m *SeatInventoryManagerMock) WarmUp(ctx context.Context, showtimeID int, bookedSeats []string) error {
	args := m.Called(ctx, showtimeID, bookedSeats)
	return args.Error(0)
}

func (m *SeatInventoryManagerMock) ClaimSeats(ctx context.Context, showtimeID int, seats []string) error {
	args := m.Called(ctx, showtimeID, seats)
	return args.Error(0)
}

func (m *SeatInventoryManagerMock) ReleaseSeats(ctx context.Context, showtimeID int, seats []string) error {
	args := m.Called(ctx, showtimeID, seats)
	return args.Error(0)
}

func (m *SeatInventoryManagerMock) ClaimedSeats(ctx context.Context, showtimeID int) ([]string, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
