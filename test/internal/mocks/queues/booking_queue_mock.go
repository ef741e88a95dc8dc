package queues

import (
	"context"

	"go-booking-engine/internal/queue"

	"github.com/stretchr/testify/mock"
)

type BookingTaskQueueMock struct {
	mock.Mock
}

func NewBookingTaskQueueMock() *BookingTaskQueueMock {
	return &BookingTaskQueueMock{}
}

func (m *BookingTaskQueueMock) PublishTask(ctx context.Context, task *queue.BookingTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *BookingTaskQueueMock) SubscribeTasks(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
