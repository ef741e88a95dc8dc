package services

import (
	"context"

	"go-booking-engine/internal/model"

	"github.com/stretchr/testify/mock"
)

type ShowtimeServiceMock struct {
	mock.Mock
}

func NewShowtimeServiceMock() *ShowtimeServiceMock {
	return &ShowtimeServiceMock{}
}

func (m *ShowtimeServiceMock) GetShowtime(ctx context.Context, id int) (*model.ShowtimeResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShowtimeResponse), args.Error(1)
}

func (m *ShowtimeServiceMock) ListShowtimes(ctx context.Context) ([]*model.ShowtimeResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ShowtimeResponse), args.Error(1)
}

func (m *ShowtimeServiceMock) OpenForSale(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
