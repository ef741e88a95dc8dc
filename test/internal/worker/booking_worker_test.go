package worker

import (
	"context"
	"testing"
	"time"

	"go-booking-engine/internal/notify"
	"go-booking-engine/internal/queue"
	"go-booking-engine/internal/worker"
	cacheMocks "go-booking-engine/test/internal/mocks/caches"
	notifierMocks "go-booking-engine/test/internal/mocks/notifiers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type workerFixture struct {
	taskQueue queue.BookingTaskQueue
	notifier  *notifierMocks.NotifierMock
	inventory *cacheMocks.SeatInventoryManagerMock
	worker    *worker.BookingWorker
}

func setupWorker() *workerFixture {
	f := &workerFixture{
		taskQueue: queue.NewMemoryTaskQueue(16),
		notifier:  notifierMocks.NewNotifierMock(),
		inventory: cacheMocks.NewSeatInventoryManagerMock(),
	}
	f.worker = worker.NewBookingWorker(f.taskQueue, f.notifier, f.inventory)
	return f
}

// startWorker runs Start on its own goroutine and returns the cancel func
// plus a channel that yields Start's return value.
func startWorker(ctx context.Context, f *workerFixture) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() {
		errCh <- f.worker.Start(ctx)
	}()
	return cancel, errCh
}

func waitForSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for task to be handled")
	}
}

func TestBookingWorker_NotifyConfirmed(t *testing.T) {
	f := setupWorker()
	ctx := context.Background()

	enqueuedAt := time.Now().UTC()
	handled := make(chan struct{})

	f.notifier.On("PublishBookingConfirmed", mock.Anything, notify.BookingConfirmedEvent{
		BookingID:   1,
		RefID:       "AB2345",
		UserID:      7,
		ShowtimeID:  3,
		Seats:       []string{"A1", "A2"},
		TotalAmount: 472,
		ConfirmedAt: enqueuedAt,
	}).Return(nil).Once().Run(func(args mock.Arguments) {
		close(handled)
	})

	cancel, errCh := startWorker(ctx, f)
	defer cancel()

	err := f.taskQueue.PublishTask(ctx, &queue.BookingTask{
		Type:        queue.TaskNotifyConfirmed,
		BookingID:   1,
		RefID:       "AB2345",
		UserID:      7,
		ShowtimeID:  3,
		Seats:       []string{"A1", "A2"},
		TotalAmount: 472,
		EnqueuedAt:  enqueuedAt,
	})
	require.NoError(t, err)

	waitForSignal(t, handled)
	f.notifier.AssertExpectations(t)

	cancel()
	assert.NoError(t, <-errCh)
}

func TestBookingWorker_NotifyConfirmed_RetriesOnFailure(t *testing.T) {
	f := setupWorker()
	ctx := context.Background()

	handled := make(chan struct{})

	f.notifier.On("PublishBookingConfirmed", mock.Anything, mock.Anything).
		Return(assert.AnError).Once()
	f.notifier.On("PublishBookingConfirmed", mock.Anything, mock.Anything).
		Return(nil).Once().Run(func(args mock.Arguments) {
		close(handled)
	})

	cancel, errCh := startWorker(ctx, f)
	defer cancel()

	err := f.taskQueue.PublishTask(ctx, &queue.BookingTask{
		Type:       queue.TaskNotifyConfirmed,
		BookingID:  1,
		EnqueuedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	waitForSignal(t, handled)
	f.notifier.AssertNumberOfCalls(t, "PublishBookingConfirmed", 2)

	cancel()
	assert.NoError(t, <-errCh)
}

func TestBookingWorker_ReleaseSeats(t *testing.T) {
	f := setupWorker()
	ctx := context.Background()

	handled := make(chan struct{})

	f.inventory.On("ReleaseSeats", mock.Anything, 3, []string{"A1", "A2"}).
		Return(nil).Once().Run(func(args mock.Arguments) {
		close(handled)
	})

	cancel, errCh := startWorker(ctx, f)
	defer cancel()

	err := f.taskQueue.PublishTask(ctx, &queue.BookingTask{
		Type:       queue.TaskReleaseSeats,
		BookingID:  1,
		ShowtimeID: 3,
		Seats:      []string{"A1", "A2"},
		EnqueuedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	waitForSignal(t, handled)
	f.inventory.AssertExpectations(t)
	f.notifier.AssertNotCalled(t, "PublishBookingConfirmed")

	cancel()
	assert.NoError(t, <-errCh)
}

func TestBookingWorker_ReleaseSeats_RetriesOnFailure(t *testing.T) {
	f := setupWorker()
	ctx := context.Background()

	handled := make(chan struct{})

	f.inventory.On("ReleaseSeats", mock.Anything, 3, []string{"A1"}).
		Return(assert.AnError).Once()
	f.inventory.On("ReleaseSeats", mock.Anything, 3, []string{"A1"}).
		Return(nil).Once().Run(func(args mock.Arguments) {
		close(handled)
	})

	cancel, errCh := startWorker(ctx, f)
	defer cancel()

	err := f.taskQueue.PublishTask(ctx, &queue.BookingTask{
		Type:       queue.TaskReleaseSeats,
		BookingID:  1,
		ShowtimeID: 3,
		Seats:      []string{"A1"},
		EnqueuedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	waitForSignal(t, handled)
	f.inventory.AssertNumberOfCalls(t, "ReleaseSeats", 2)

	cancel()
	assert.NoError(t, <-errCh)
}

func TestBookingWorker_UnknownTaskDiscarded(t *testing.T) {
	f := setupWorker()
	ctx := context.Background()

	cancel, errCh := startWorker(ctx, f)
	defer cancel()

	err := f.taskQueue.PublishTask(ctx, &queue.BookingTask{
		Type:       queue.TaskType("mystery"),
		BookingID:  1,
		EnqueuedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// Unknown tasks are dropped without touching either collaborator.
	time.Sleep(100 * time.Millisecond)
	f.notifier.AssertNotCalled(t, "PublishBookingConfirmed")
	f.inventory.AssertNotCalled(t, "ReleaseSeats")

	cancel()
	assert.NoError(t, <-errCh)
}

func TestBookingWorker_StopsOnContextCancel(t *testing.T) {
	f := setupWorker()

	cancel, errCh := startWorker(context.Background(), f)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
