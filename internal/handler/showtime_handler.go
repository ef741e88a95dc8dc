package handler

import (
	"errors"
	"net/http"

	"go-booking-engine/internal/service"
	apperrors "go-booking-engine/pkg/app_errors"
	"go-booking-engine/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service service.ShowtimeService
}

func NewShowtimeHandler(service service.ShowtimeService) *ShowtimeHandler {
	return &ShowtimeHandler{service: service}
}

func (h *ShowtimeHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("showtimes", h.GetShowtimes)
		router.GET("showtimes/:id", h.GetShowtime)
		router.PUT("showtimes/:id/open", h.OpenForSale)
	}
}

func (h *ShowtimeHandler) GetShowtimes(c *gin.Context) {
	showtimes, err := h.service.ListShowtimes(c)
	if err != nil {
		h.handleShowtimeError(c, err, "GetShowtimes")
		return
	}

	c.JSON(http.StatusOK, showtimes)
}

func (h *ShowtimeHandler) GetShowtime(c *gin.Context) {
	id, ok := ParamInt(c, "id")
	if !ok {
		return
	}
	showtime, err := h.service.GetShowtime(c, id)
	if err != nil {
		h.handleShowtimeError(c, err, "GetShowtime")
		return
	}

	c.JSON(http.StatusOK, showtime)
}

func (h *ShowtimeHandler) OpenForSale(c *gin.Context) {
	id, ok := ParamInt(c, "id")
	if !ok {
		return
	}
	if err := h.service.OpenForSale(c, id); err != nil {
		h.handleShowtimeError(c, err, "OpenForSale")
		return
	}

	c.Status(http.StatusOK)
}

func (h *ShowtimeHandler) handleShowtimeError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrShowtimeNotFound):
		log.Warn("Showtime not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Showtime not found",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
