package notifiers

import (
	"context"

	"go-booking-engine/internal/notify"

	"github.com/stretchr/testify/mock"
)

type NotifierMock struct {
	mock.Mock
}

func NewNotifierMock() *NotifierMock {
	return &NotifierMock{}
}

func (m *NotifierMock) PublishBookingConfirmed(ctx context.Context, event notify.BookingConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
