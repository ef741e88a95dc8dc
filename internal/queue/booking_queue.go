package queue

import (
	"context"
	"time"
)

// TaskType discriminates the post-commit work carried on the queue.
type TaskType string

const (
	// TaskNotifyConfirmed fans a confirmed booking out to the notification
	// collaborator. Fire-and-forget from the request path's perspective.
	TaskNotifyConfirmed TaskType = "notify_confirmed"
	// TaskReleaseSeats retries a seat release that failed after a
	// cancellation committed. Retried until the inventory accepts it.
	TaskReleaseSeats TaskType = "release_seats"
)

// BookingTask is one unit of deferred work. Fields are a snapshot taken
// at publish time; the worker does not re-read the booking.
type BookingTask struct {
	Type        TaskType  `json:"type"`
	BookingID   int       `json:"booking_id"`
	RefID       string    `json:"ref_id,omitempty"`
	UserID      int       `json:"user_id,omitempty"`
	ShowtimeID  int       `json:"showtime_id,omitempty"`
	Seats       []string  `json:"seats,omitempty"`
	TotalAmount float64   `json:"total_amount,omitempty"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}

type Delivery struct {
	Data *BookingTask
	Ack  func()
	Nack func(requeue bool)
}

type BookingTaskQueue interface {
	PublishTask(ctx context.Context, task *BookingTask) error
	SubscribeTasks(ctx context.Context) (<-chan Delivery, error)
}

// MemoryTaskQueue backs the queue with a Go channel; used in tests and
// single-process deployments.
type MemoryTaskQueue struct {
	ch chan *BookingTask
}

func NewMemoryTaskQueue(bufferSize int) BookingTaskQueue {
	return &MemoryTaskQueue{
		ch: make(chan *BookingTask, bufferSize),
	}
}

func (q *MemoryTaskQueue) PublishTask(ctx context.Context, task *BookingTask) error {
	q.ch <- task
	return nil
}

func (q *MemoryTaskQueue) SubscribeTasks(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case task, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: task,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- task
						}
					},
				}
			}
		}
	}()

	return out, nil
}
