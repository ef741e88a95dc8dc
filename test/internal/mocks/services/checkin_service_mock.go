package services

import (
	"context"

	"go-booking-engine/internal/model"

	"github.com/stretchr/testify/mock"
)

type CheckInServiceMock struct {
	mock.Mock
}

func NewCheckInServiceMock() *CheckInServiceMock {
	return &CheckInServiceMock{}
}

func (m *CheckInServiceMock) ValidateAndCheckIn(ctx context.Context, staff model.Principal, refID string) (*model.CheckInResult, error) {
	args := m.Called(ctx, staff, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckInResult), args.Error(1)
}
