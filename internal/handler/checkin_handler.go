package handler

import (
	"errors"
	"net/http"

	"go-booking-engine/internal/model"
	"go-booking-engine/internal/service"
	apperrors "go-booking-engine/pkg/app_errors"
	"go-booking-engine/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckInHandler struct {
	service service.CheckInService
}

func NewCheckInHandler(service service.CheckInService) *CheckInHandler {
	return &CheckInHandler{service: service}
}

func (h *CheckInHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("check-ins", h.CheckIn)
	}
}

func (h *CheckInHandler) CheckIn(c *gin.Context) {
	var checkInReq model.CheckInRequest

	if err := BindJson(c, &checkInReq); err != nil {
		return
	}

	staff := model.Principal{
		ID:       checkInReq.StaffID,
		Role:     checkInReq.StaffRole,
		Approved: checkInReq.Approved,
	}

	result, err := h.service.ValidateAndCheckIn(c, staff, checkInReq.RefID)
	if err != nil {
		h.handleCheckInError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CheckInHandler) handleCheckInError(c *gin.Context, err error) {
	log := logger.WithComponent("handler").With(zap.String("operation", "CheckIn"), zap.Error(err))

	var checkedInErr *apperrors.AlreadyCheckedInError

	switch {
	case errors.As(err, &checkedInErr):
		log.Warn("Already checked in")
		c.JSON(http.StatusConflict, gin.H{
			"error":         "Booking already checked in",
			"checked_in_at": checkedInErr.CheckedInAt,
		})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, apperrors.ErrNotConfirmed):
		log.Warn("Booking not confirmed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Booking is not confirmed",
		})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrVenueNotFound):
		log.Warn("Check-in not allowed")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not allowed",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
