package service

import (
	"context"

	"go-booking-engine/internal/model"
	"go-booking-engine/internal/repository"
	apperrors "go-booking-engine/pkg/app_errors"
	"go-booking-engine/pkg/logger"

	"go.uber.org/zap"
)

type CheckInService interface {
	// ValidateAndCheckIn looks a booking up by reference code, checks the
	// acting staff may operate the venue's gate, and transitions the
	// booking to checked-in. A duplicate attempt returns
	// *apperrors.AlreadyCheckedInError carrying the original timestamp.
	ValidateAndCheckIn(ctx context.Context, staff model.Principal, refID string) (*model.CheckInResult, error)
}

type CheckInServiceImpl struct {
	bookingRepo  repository.BookingRepository
	showtimeRepo repository.ShowtimeRepository
	venueRepo    repository.VenueRepository
}

func NewCheckInService(
	bookingRepo repository.BookingRepository,
	showtimeRepo repository.ShowtimeRepository,
	venueRepo repository.VenueRepository,
) CheckInService {
	return &CheckInServiceImpl{
		bookingRepo:  bookingRepo,
		showtimeRepo: showtimeRepo,
		venueRepo:    venueRepo,
	}
}

func (s *CheckInServiceImpl) ValidateAndCheckIn(ctx context.Context, staff model.Principal, refID string) (*model.CheckInResult, error) {
	booking, err := s.bookingRepo.FindByRefID(ctx, refID)
	if err != nil {
		return nil, err
	}

	showtime, err := s.showtimeRepo.FindByID(ctx, booking.ShowtimeID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, staff, showtime.VenueID); err != nil {
		return nil, err
	}

	// Report the duplicate with the original timestamp so the gate can
	// tell a re-scan from a forged ticket.
	if booking.IsCheckedIn() {
		return nil, &apperrors.AlreadyCheckedInError{CheckedInAt: *booking.CheckedInAt}
	}
	if booking.Status != model.BookingStatusConfirmed {
		return nil, apperrors.ErrNotConfirmed
	}

	checkedIn, err := s.bookingRepo.CheckIn(ctx, booking.ID, staff.ID)
	if err != nil {
		return nil, err
	}

	logger.WithComponent("checkin").Info("booking checked in",
		zap.String("ref_id", checkedIn.RefID),
		zap.Int("booking_id", checkedIn.ID),
		zap.Int("staff_id", staff.ID),
	)

	return &model.CheckInResult{
		RefID:       checkedIn.RefID,
		Seats:       checkedIn.Seats,
		Title:       showtime.Title,
		ScreenName:  showtime.ScreenName,
		StartTime:   showtime.StartTime,
		CheckedInAt: *checkedIn.CheckedInAt,
	}, nil
}

// authorize admits admins anywhere and approved organizers at venues they
// own. Everyone else is rejected before any booking state is revealed.
func (s *CheckInServiceImpl) authorize(ctx context.Context, staff model.Principal, venueID int) error {
	if staff.IsAdmin() {
		return nil
	}
	if !staff.IsApprovedOrganizer() {
		return apperrors.ErrUnauthorized
	}
	venue, err := s.venueRepo.FindByID(ctx, venueID)
	if err != nil {
		return err
	}
	if venue.OwnerID != staff.ID {
		return apperrors.ErrUnauthorized
	}
	return nil
}
