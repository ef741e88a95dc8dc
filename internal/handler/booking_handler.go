package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-booking-engine/internal/model"
	"go-booking-engine/internal/service"
	apperrors "go-booking-engine/pkg/app_errors"
	"go-booking-engine/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service service.BookingService
}

func NewBookingHandler(service service.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("bookings", h.CreateBooking)
		router.GET("bookings", h.GetBookings)
		router.GET("bookings/:id", h.GetBooking)
		router.PUT("bookings/:id/confirm-payment", h.ConfirmPayment)
		router.PUT("bookings/:id/cancel", h.CancelBooking)
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var bookingReq model.CreateBookingRequest

	if err := BindJson(c, &bookingReq); err != nil {
		return
	}

	created, err := h.service.CreateBooking(c, bookingReq)
	if err != nil {
		h.handleBookingError(c, err, "CreateBooking")
		return
	}

	h.handleBookingSuccess(c, created, http.StatusCreated)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := ParamInt(c, "id")
	if !ok {
		return
	}
	booking, err := h.service.GetBookingByID(c, id)
	if err != nil {
		h.handleBookingError(c, err, "GetBooking")
		return
	}

	h.handleBookingSuccess(c, booking, http.StatusOK)
}

func (h *BookingHandler) GetBookings(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user_id",
		})
		return
	}

	bookings, err := h.service.ListBookingsByUser(c, userID)
	if err != nil {
		h.handleBookingError(c, err, "GetBookings")
		return
	}

	h.handleBookingSuccess(c, bookings, http.StatusOK)
}

func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	id, ok := ParamInt(c, "id")
	if !ok {
		return
	}

	var confirmReq model.ConfirmPaymentRequest
	if err := BindJson(c, &confirmReq); err != nil {
		return
	}

	booking, err := h.service.ConfirmPayment(c, id, confirmReq)
	if err != nil {
		h.handleBookingError(c, err, "ConfirmPayment")
		return
	}

	h.handleBookingSuccess(c, booking, http.StatusOK)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := ParamInt(c, "id")
	if !ok {
		return
	}

	var cancelReq model.CancelBookingRequest
	if err := BindJson(c, &cancelReq); err != nil {
		return
	}

	if err := h.service.CancelBooking(c, cancelReq.UserID, id); err != nil {
		h.handleBookingError(c, err, "CancelBooking")
		return
	}

	h.handleBookingSuccess(c, nil, http.StatusOK)
}

// Helper functions

func (h *BookingHandler) handleBookingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var seatsErr *apperrors.SeatsUnavailableError
	var promoErr *apperrors.PromoRejectedError

	switch {
	case errors.As(err, &seatsErr):
		log.Warn("Seats unavailable")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Seats unavailable",
			"seats": seatsErr.Seats,
		})
	case errors.As(err, &promoErr):
		log.Warn("Promo rejected")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Promo code rejected",
			"code":   promoErr.Code,
			"reason": promoErr.Reason,
		})
	case errors.Is(err, apperrors.ErrShowtimeUnavailable):
		log.Warn("Showtime unavailable")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Showtime is not open for booking",
		})
	case errors.Is(err, apperrors.ErrPricingUnavailable):
		log.Warn("Pricing unavailable")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Pricing unavailable for showtime",
		})
	case errors.Is(err, apperrors.ErrCutoffExceeded):
		log.Warn("Cancellation cutoff exceeded")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Cancellation window has closed",
		})
	case errors.Is(err, apperrors.ErrAlreadyTerminal):
		log.Warn("Booking already terminal")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking is already finalized",
		})
	case errors.Is(err, apperrors.ErrUnknownSeat):
		log.Warn("Unknown seat")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown seat for this screen",
		})
	case errors.Is(err, apperrors.ErrInvalidSignature):
		log.Warn("Invalid payment signature")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Payment signature verification failed",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request",
		})
	case errors.Is(err, apperrors.ErrShowtimeNotFound):
		log.Warn("Showtime not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Showtime not found",
		})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, apperrors.ErrPromoNotFound):
		log.Warn("Promo not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Promo code not found",
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		log.Warn("Unauthorized")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not allowed",
		})
	case errors.Is(err, apperrors.ErrReferenceExhausted):
		log.Error("Reference allocation exhausted")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	case errors.Is(err, apperrors.ErrInvariantViolation):
		log.Error("Invariant violation")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *BookingHandler) handleBookingSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
