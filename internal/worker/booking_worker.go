package worker

import (
	"context"
	"time"

	"go-booking-engine/internal/cache"
	"go-booking-engine/internal/notify"
	"go-booking-engine/internal/queue"
	"go-booking-engine/pkg/logger"

	"go.uber.org/zap"
)

// BookingWorker drains the task queue: notification fan-out for confirmed
// bookings and retries for seat releases that failed in the request path.
type BookingWorker struct {
	taskQueue queue.BookingTaskQueue
	notifier  notify.Notifier
	inventory cache.SeatInventoryManager
}

func NewBookingWorker(taskQueue queue.BookingTaskQueue, notifier notify.Notifier, inventory cache.SeatInventoryManager) *BookingWorker {
	return &BookingWorker{
		taskQueue: taskQueue,
		notifier:  notifier,
		inventory: inventory,
	}
}

// Start consumes tasks until ctx is cancelled. Blocking; run it on its
// own goroutine.
func (w *BookingWorker) Start(ctx context.Context) error {
	deliveries, err := w.taskQueue.SubscribeTasks(ctx)
	if err != nil {
		return err
	}

	log := logger.WithComponent("worker")
	log.Info("booking worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info("booking worker stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				log.Info("task channel closed, worker exiting")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *BookingWorker) handle(ctx context.Context, d queue.Delivery) {
	task := d.Data
	log := logger.WithComponent("worker")

	switch task.Type {
	case queue.TaskNotifyConfirmed:
		event := notify.BookingConfirmedEvent{
			BookingID:   task.BookingID,
			RefID:       task.RefID,
			UserID:      task.UserID,
			ShowtimeID:  task.ShowtimeID,
			Seats:       task.Seats,
			TotalAmount: task.TotalAmount,
			ConfirmedAt: task.EnqueuedAt,
		}
		if err := w.notifier.PublishBookingConfirmed(ctx, event); err != nil {
			log.Warn("notify confirmed failed, will retry",
				zap.Int("booking_id", task.BookingID), zap.Error(err))
			d.Nack(true)
			return
		}
		d.Ack()

	case queue.TaskReleaseSeats:
		if err := w.inventory.ReleaseSeats(ctx, task.ShowtimeID, task.Seats); err != nil {
			log.Warn("seat release retry failed, will retry",
				zap.Int("booking_id", task.BookingID),
				zap.Int("showtime_id", task.ShowtimeID),
				zap.Strings("seats", task.Seats),
				zap.Error(err))
			d.Nack(true)
			return
		}
		log.Info("queued seat release applied",
			zap.Int("booking_id", task.BookingID),
			zap.Int("showtime_id", task.ShowtimeID),
			zap.Strings("seats", task.Seats),
			zap.Duration("lag", time.Since(task.EnqueuedAt)))
		d.Ack()

	default:
		log.Warn("unknown task type, discarding", zap.String("type", string(task.Type)))
		d.Nack(false)
	}
}
