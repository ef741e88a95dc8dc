package service

import (
	"context"
	"fmt"
	"time"

	"go-booking-engine/config"
	"go-booking-engine/internal/cache"
	"go-booking-engine/internal/model"
	"go-booking-engine/internal/payment"
	"go-booking-engine/internal/pricing"
	"go-booking-engine/internal/queue"
	"go-booking-engine/internal/refcode"
	"go-booking-engine/internal/repository"
	apperrors "go-booking-engine/pkg/app_errors"
	"go-booking-engine/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BookingService interface {
	// CreateBooking runs the whole booking transaction: seat claim,
	// pricing, reference allocation, persistence. Any failure after the
	// claim rolls the claim back before the error surfaces.
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error)
	// ConfirmPayment applies a provider confirmation. Idempotent: an
	// already-confirmed booking returns success with no further effects.
	ConfirmPayment(ctx context.Context, bookingID int, req model.ConfirmPaymentRequest) (*model.Booking, error)
	// CancelBooking releases the booking's seats, subject to ownership and
	// the cancellation cutoff.
	CancelBooking(ctx context.Context, userID int, bookingID int) error
	GetBookingByID(ctx context.Context, id int) (*model.Booking, error)
	ListBookingsByUser(ctx context.Context, userID int) ([]*model.Booking, error)
}

type BookingServiceImpl struct {
	pool         *pgxpool.Pool
	bookingRepo  repository.BookingRepository
	showtimeRepo repository.ShowtimeRepository
	layoutRepo   repository.ScreenLayoutRepository
	promoRepo    repository.PromoRepository
	settingsRepo repository.SettingsRepository
	inventory    cache.SeatInventoryManager
	refAllocator refcode.Allocator
	provider     payment.Provider
	taskQueue    queue.BookingTaskQueue
	paymentMode  config.PaymentMode
	cancelCutoff time.Duration
}

func NewBookingService(
	pool *pgxpool.Pool,
	bookingRepo repository.BookingRepository,
	showtimeRepo repository.ShowtimeRepository,
	layoutRepo repository.ScreenLayoutRepository,
	promoRepo repository.PromoRepository,
	settingsRepo repository.SettingsRepository,
	inventory cache.SeatInventoryManager,
	refAllocator refcode.Allocator,
	provider payment.Provider,
	taskQueue queue.BookingTaskQueue,
	cfg config.BookingConfig,
	mode config.PaymentMode,
) BookingService {
	return &BookingServiceImpl{
		pool:         pool,
		bookingRepo:  bookingRepo,
		showtimeRepo: showtimeRepo,
		layoutRepo:   layoutRepo,
		promoRepo:    promoRepo,
		settingsRepo: settingsRepo,
		inventory:    inventory,
		refAllocator: refAllocator,
		provider:     provider,
		taskQueue:    taskQueue,
		paymentMode:  mode,
		cancelCutoff: cfg.CancelCutoff,
	}
}

func (s *BookingServiceImpl) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	if err := validateSeatList(req.Seats); err != nil {
		return nil, err
	}

	// 1. Showtime must be active with tiers configured.
	showtime, err := s.showtimeRepo.FindByID(ctx, req.ShowtimeID)
	if err != nil {
		return nil, err
	}
	if !showtime.IsBookable() {
		return nil, apperrors.ErrShowtimeUnavailable
	}

	// Resolve seat types up front; claiming seats that are not part of the
	// layout would break the bookedSeats-subset-of-layout invariant.
	layout, err := s.layoutRepo.ListSeats(ctx, showtime.VenueID, showtime.ScreenID)
	if err != nil {
		return nil, err
	}
	seatTypes := model.SeatTypeIndex(layout)
	for _, seat := range req.Seats {
		if _, ok := seatTypes[seat]; !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownSeat, seat)
		}
	}

	// 2. Claim seats. This is the serialization point: after it succeeds,
	// no concurrent request can hold any of these seats.
	if err := s.inventory.ClaimSeats(ctx, req.ShowtimeID, req.Seats); err != nil {
		return nil, err
	}

	// Every failure past this point must give the seats back.
	booking, err := s.buildAndPersist(ctx, req, showtime, seatTypes)
	if err != nil {
		return nil, s.rollbackClaim(req.ShowtimeID, req.Seats, err)
	}

	if booking.Status == model.BookingStatusConfirmed {
		s.publishConfirmed(booking)
	}

	return booking, nil
}

// buildAndPersist covers steps 3-6 of the booking transaction: amounts,
// reference, provider order, durable persistence, promo usage.
func (s *BookingServiceImpl) buildAndPersist(
	ctx context.Context,
	req model.CreateBookingRequest,
	showtime *model.Showtime,
	seatTypes map[string]string,
) (*model.Booking, error) {
	now := time.Now().UTC()

	originalAmount, err := pricing.ComputeOriginalAmount(showtime, seatTypes, req.Seats)
	if err != nil {
		return nil, err
	}

	var promo *model.PromoCode
	if req.PromoCode != "" {
		promo, err = s.promoRepo.FindByCode(ctx, req.PromoCode)
		if err != nil {
			return nil, err
		}
	}

	// Tax rate is read once per transaction and passed down; concurrent
	// rate updates never split a single booking's computation.
	gstRate, err := s.settingsRepo.GetFloat(ctx, repository.GSTRateKey)
	if err != nil {
		return nil, err
	}

	discount, err := pricing.ApplyPromo(promo, originalAmount, now)
	if err != nil {
		return nil, err
	}

	quote := pricing.BuildQuote(originalAmount, discount, gstRate)

	ref, err := s.refAllocator.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		RefID:          ref,
		UserID:         req.UserID,
		ShowtimeID:     req.ShowtimeID,
		Seats:          req.Seats,
		OriginalAmount: quote.OriginalAmount,
		DiscountAmount: quote.DiscountAmount,
		GSTAmount:      quote.GSTAmount,
		TotalAmount:    quote.TotalAmount,
		BookedAt:       now,
	}
	if promo != nil {
		booking.PromoCodeID = &promo.ID
	}

	switch s.paymentMode {
	case config.PaymentModeGateway:
		orderID, err := s.provider.CreateOrder(ctx, quote.TotalAmount, ref)
		if err != nil {
			return nil, fmt.Errorf("%w: create provider order: %v", apperrors.ErrInternalServerError, err)
		}
		booking.Status = model.BookingStatusPaymentPending
		booking.ProviderOrderID = &orderID
	default:
		booking.Status = model.BookingStatusConfirmed
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created, err := s.bookingRepo.Create(ctx, tx, booking)
	if err != nil {
		return nil, err
	}

	// Usage counts only when the booking confirms; gateway-mode bookings
	// increment on ConfirmPayment instead.
	if promo != nil && created.Status == model.BookingStatusConfirmed {
		if err := s.promoRepo.IncrementUsesTx(ctx, tx, promo.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// rollbackClaim releases just-claimed seats after a failed booking
// attempt. It runs on context.Background() so the release happens even if
// the request context is gone. A failed release is the one state the
// engine cannot self-heal, so it surfaces as an invariant violation for
// manual reconciliation instead of the original error.
func (s *BookingServiceImpl) rollbackClaim(showtimeID int, seats []string, cause error) error {
	if err := s.inventory.ReleaseSeats(context.Background(), showtimeID, seats); err != nil {
		logger.WithComponent("booking").Error("claim rollback failed",
			zap.Int("showtime_id", showtimeID),
			zap.Strings("seats", seats),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return fmt.Errorf("%w: seats %v claimed on showtime %d but release failed after: %v",
			apperrors.ErrInvariantViolation, seats, showtimeID, cause)
	}
	return cause
}

func (s *BookingServiceImpl) ConfirmPayment(ctx context.Context, bookingID int, req model.ConfirmPaymentRequest) (*model.Booking, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	booking, err := s.bookingRepo.FindByIDWithLock(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}

	// Idempotent: a duplicate confirmation is success, not a replay.
	if booking.Status == model.BookingStatusConfirmed {
		return booking, nil
	}
	if booking.Status != model.BookingStatusPaymentPending {
		return nil, apperrors.ErrAlreadyTerminal
	}
	if booking.ProviderOrderID == nil {
		return nil, fmt.Errorf("%w: payment-pending booking %d has no provider order",
			apperrors.ErrInvariantViolation, booking.ID)
	}

	// A bad signature may be transient; leave the booking pending so the
	// provider can retry.
	if !s.provider.VerifySignature(*booking.ProviderOrderID, req.PaymentID, req.Signature) {
		return nil, apperrors.ErrInvalidSignature
	}

	confirmed, err := s.bookingRepo.ConfirmPaymentTx(ctx, tx, booking.ID, req.PaymentID, req.Signature)
	if err != nil {
		return nil, err
	}

	// Exactly once: this runs only on the pending->confirmed transition,
	// which the row lock serializes.
	if confirmed.PromoCodeID != nil {
		if err := s.promoRepo.IncrementUsesTx(ctx, tx, *confirmed.PromoCodeID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishConfirmed(confirmed)

	return confirmed, nil
}

func (s *BookingServiceImpl) CancelBooking(ctx context.Context, userID int, bookingID int) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	booking, err := s.bookingRepo.FindByIDWithLock(ctx, tx, bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		return apperrors.ErrUnauthorized
	}
	if booking.Status.IsTerminal() {
		return apperrors.ErrAlreadyTerminal
	}

	showtime, err := s.showtimeRepo.FindByID(ctx, booking.ShowtimeID)
	if err != nil {
		return err
	}
	if time.Until(showtime.StartTime) < s.cancelCutoff {
		return apperrors.ErrCutoffExceeded
	}

	// Status change and durable seat release commit together.
	if _, err := s.bookingRepo.UpdateStatusTx(ctx, tx, booking.ID, model.BookingStatusCancelled); err != nil {
		return err
	}
	if err := s.bookingRepo.DeleteSeatsTx(ctx, tx, booking.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	// The inventory release runs after commit; if it fails, the release is
	// queued and the worker retries until it lands.
	if err := s.inventory.ReleaseSeats(context.Background(), booking.ShowtimeID, booking.Seats); err != nil {
		logger.WithComponent("booking").Warn("inventory release failed, queueing retry",
			zap.Int("booking_id", booking.ID), zap.Error(err))
		task := &queue.BookingTask{
			Type:       queue.TaskReleaseSeats,
			BookingID:  booking.ID,
			ShowtimeID: booking.ShowtimeID,
			Seats:      booking.Seats,
			EnqueuedAt: time.Now().UTC(),
		}
		if pubErr := s.taskQueue.PublishTask(context.Background(), task); pubErr != nil {
			logger.WithComponent("booking").Error("seat release lost: booking cancelled but seats still claimed",
				zap.Int("booking_id", booking.ID),
				zap.Int("showtime_id", booking.ShowtimeID),
				zap.Strings("seats", booking.Seats),
				zap.NamedError("release_error", err),
				zap.Error(pubErr),
			)
			return fmt.Errorf("%w: booking %d cancelled but seat release failed",
				apperrors.ErrInvariantViolation, booking.ID)
		}
	}

	return nil
}

func (s *BookingServiceImpl) GetBookingByID(ctx context.Context, id int) (*model.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

func (s *BookingServiceImpl) ListBookingsByUser(ctx context.Context, userID int) ([]*model.Booking, error) {
	return s.bookingRepo.ListByUserID(ctx, userID)
}

// publishConfirmed queues the notification fan-out. Best effort: a queue
// error never fails the booking.
func (s *BookingServiceImpl) publishConfirmed(booking *model.Booking) {
	task := &queue.BookingTask{
		Type:        queue.TaskNotifyConfirmed,
		BookingID:   booking.ID,
		RefID:       booking.RefID,
		UserID:      booking.UserID,
		ShowtimeID:  booking.ShowtimeID,
		Seats:       booking.Seats,
		TotalAmount: booking.TotalAmount,
		EnqueuedAt:  time.Now().UTC(),
	}
	if err := s.taskQueue.PublishTask(context.Background(), task); err != nil {
		logger.WithComponent("booking").Warn("failed to queue confirmation notification",
			zap.Int("booking_id", booking.ID), zap.Error(err))
	}
}

func validateSeatList(seats []string) error {
	if len(seats) == 0 {
		return apperrors.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(seats))
	for _, seat := range seats {
		if seat == "" {
			return apperrors.ErrInvalidInput
		}
		if _, dup := seen[seat]; dup {
			return fmt.Errorf("%w: duplicate seat %s", apperrors.ErrInvalidInput, seat)
		}
		seen[seat] = struct{}{}
	}
	return nil
}
