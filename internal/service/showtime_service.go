package service

import (
	"context"

	"go-booking-engine/internal/cache"
	"go-booking-engine/internal/model"
	"go-booking-engine/internal/repository"
	"go-booking-engine/pkg/logger"

	"go.uber.org/zap"
)

type ShowtimeService interface {
	GetShowtime(ctx context.Context, id int) (*model.ShowtimeResponse, error)
	ListShowtimes(ctx context.Context) ([]*model.ShowtimeResponse, error)
	// OpenForSale warms the seat inventory from the durable store. Until it
	// runs, claims against the showtime fail closed.
	OpenForSale(ctx context.Context, id int) error
}

type ShowtimeServiceImpl struct {
	showtimeRepo repository.ShowtimeRepository
	inventory    cache.SeatInventoryManager
}

func NewShowtimeService(showtimeRepo repository.ShowtimeRepository, inventory cache.SeatInventoryManager) ShowtimeService {
	return &ShowtimeServiceImpl{
		showtimeRepo: showtimeRepo,
		inventory:    inventory,
	}
}

func (s *ShowtimeServiceImpl) GetShowtime(ctx context.Context, id int) (*model.ShowtimeResponse, error) {
	showtime, err := s.showtimeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booked, err := s.showtimeRepo.GetBookedSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	showtime.BookedSeats = booked

	return toShowtimeResponse(showtime), nil
}

func (s *ShowtimeServiceImpl) ListShowtimes(ctx context.Context) ([]*model.ShowtimeResponse, error) {
	showtimes, err := s.showtimeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.ShowtimeResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		responses = append(responses, toShowtimeResponse(showtime))
	}

	return responses, nil
}

func (s *ShowtimeServiceImpl) OpenForSale(ctx context.Context, id int) error {
	showtime, err := s.showtimeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	booked, err := s.showtimeRepo.GetBookedSeats(ctx, id)
	if err != nil {
		return err
	}

	if err := s.inventory.WarmUp(ctx, showtime.ID, booked); err != nil {
		return err
	}

	logger.WithComponent("showtime").Info("showtime opened for sale",
		zap.Int("showtime_id", showtime.ID),
		zap.Int("booked_seats", len(booked)),
	)

	return nil
}

func toShowtimeResponse(s *model.Showtime) *model.ShowtimeResponse {
	booked := s.BookedSeats
	if booked == nil {
		booked = []string{}
	}
	return &model.ShowtimeResponse{
		ID:          s.ID,
		Subject:     s.Subject,
		Title:       s.Title,
		ScreenName:  s.ScreenName,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		PriceTiers:  s.PriceTiers,
		TotalSeats:  s.TotalSeats,
		BookedSeats: booked,
		IsActive:    s.IsActive,
	}
}
