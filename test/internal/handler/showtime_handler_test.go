package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-booking-engine/internal/handler"
	"go-booking-engine/internal/model"
	apperrors "go-booking-engine/pkg/app_errors"
	serviceMocks "go-booking-engine/test/internal/mocks/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupShowtimeTestRouter(mockService *serviceMocks.ShowtimeServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler.NewShowtimeHandler(mockService).RegisterRoutes(router)

	return router
}

func TestGetShowtimes(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := serviceMocks.NewShowtimeServiceMock()
		router := setupShowtimeTestRouter(mockService)

		mockService.On("ListShowtimes", mock.Anything).Return([]*model.ShowtimeResponse{
			{ID: 1}, {ID: 2},
		}, nil).Once()

		req := httptest.NewRequest("GET", "/api/v1/showtimes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - ServiceError", func(t *testing.T) {
		mockService := serviceMocks.NewShowtimeServiceMock()
		router := setupShowtimeTestRouter(mockService)

		mockService.On("ListShowtimes", mock.Anything).
			Return(nil, assert.AnError).Once()

		req := httptest.NewRequest("GET", "/api/v1/showtimes", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetShowtime(t *testing.T) {
	t.Run("Success - IncludesBookedSeats", func(t *testing.T) {
		mockService := serviceMocks.NewShowtimeServiceMock()
		router := setupShowtimeTestRouter(mockService)

		mockService.On("GetShowtime", mock.Anything, 1).Return(&model.ShowtimeResponse{
			ID:          1,
			Title:       "Test Screening",
			BookedSeats: []string{"A1", "A2"},
		}, nil).Once()

		req := httptest.NewRequest("GET", "/api/v1/showtimes/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body model.ShowtimeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"A1", "A2"}, body.BookedSeats)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		mockService := serviceMocks.NewShowtimeServiceMock()
		router := setupShowtimeTestRouter(mockService)

		mockService.On("GetShowtime", mock.Anything, 99999).
			Return(nil, apperrors.ErrShowtimeNotFound).Once()

		req := httptest.NewRequest("GET", "/api/v1/showtimes/99999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - InvalidID", func(t *testing.T) {
		mockService := serviceMocks.NewShowtimeServiceMock()
		router := setupShowtimeTestRouter(mockService)

		req := httptest.NewRequest("GET", "/api/v1/showtimes/invalid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetShowtime")
	})
}

func TestOpenForSale(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := serviceMocks.NewShowtimeServiceMock()
		router := setupShowtimeTestRouter(mockService)

		mockService.On("OpenForSale", mock.Anything, 1).Return(nil).Once()

		req := httptest.NewRequest("PUT", "/api/v1/showtimes/1/open", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		mockService := serviceMocks.NewShowtimeServiceMock()
		router := setupShowtimeTestRouter(mockService)

		mockService.On("OpenForSale", mock.Anything, 99999).
			Return(apperrors.ErrShowtimeNotFound).Once()

		req := httptest.NewRequest("PUT", "/api/v1/showtimes/99999/open", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
