package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/service/hotel"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockHotelUseCase struct {
	mock.Mock
}

func (m *MockHotelUseCase) CreateHotel(ctx context.Context, name, address string) (*domain.Hotel, error) {
	args := m.Called(ctx, name, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelUseCase) GetHotel(ctx context.Context, id int64) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelUseCase) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

func (m *MockHotelUseCase) CreateRoom(ctx context.Context, hotelID int64, number string, available bool) (*domain.Room, error) {
	args := m.Called(ctx, hotelID, number, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockHotelUseCase) ListAvailableRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockHotelUseCase) ListRecommendedRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockHotelUseCase) ConfirmAvailability(ctx context.Context, roomID int64, bookingID string) error {
	args := m.Called(ctx, roomID, bookingID)
	return args.Error(0)
}

func (m *MockHotelUseCase) ReleaseRoom(ctx context.Context, roomID int64, bookingID string) error {
	args := m.Called(ctx, roomID, bookingID)
	return args.Error(0)
}

func (m *MockHotelUseCase) RoomStats(ctx context.Context, hotelID int64) (*hotel.RoomStats, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hotel.RoomStats), args.Error(1)
}

func TestHotelHandler_confirmAvailability(t *testing.T) {
	mockService := &MockHotelUseCase{}
	handler := NewHotelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(confirmAvailabilityRequest{
		BookingID: "42",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	})
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("POST", "/rooms/7/confirm-availability", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("ConfirmAvailability", c.Request.Context(), int64(7), "42").Return(nil)

	handler.confirmAvailability(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestHotelHandler_confirmAvailability_held(t *testing.T) {
	mockService := &MockHotelUseCase{}
	handler := NewHotelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(confirmAvailabilityRequest{BookingID: "42"})
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("POST", "/rooms/7/confirm-availability", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("ConfirmAvailability", c.Request.Context(), int64(7), "42").
		Return(apperr.Conflict("Room is temporarily held by another booking"))

	handler.confirmAvailability(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response errorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, apperr.CodeConflict, response.Error)
}

func TestHotelHandler_confirmAvailability_missingBookingID(t *testing.T) {
	mockService := &MockHotelUseCase{}
	handler := NewHotelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("POST", "/rooms/7/confirm-availability", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.confirmAvailability(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ConfirmAvailability")
}

func TestHotelHandler_release(t *testing.T) {
	mockService := &MockHotelUseCase{}
	handler := NewHotelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(releaseRequest{BookingID: "42"})
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Request = httptest.NewRequest("POST", "/rooms/7/release", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("ReleaseRoom", c.Request.Context(), int64(7), "42").Return(nil)

	handler.release(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestHotelHandler_createRoom(t *testing.T) {
	mockService := &MockHotelUseCase{}
	handler := NewHotelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	available := true
	body, _ := json.Marshal(createRoomRequest{HotelID: 1, Number: "101", Available: &available})
	c.Request = httptest.NewRequest("POST", "/rooms", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Room{ID: 7, HotelID: 1, Number: "101", Available: true}
	mockService.On("CreateRoom", c.Request.Context(), int64(1), "101", true).Return(created, nil)

	handler.createRoom(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response roomResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), response.ID)
	assert.True(t, response.Available)

	mockService.AssertExpectations(t)
}

func TestHotelHandler_roomStats(t *testing.T) {
	mockService := &MockHotelUseCase{}
	handler := NewHotelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/hotels/1/stats", nil)

	stats := &hotel.RoomStats{HotelID: 1, TotalRooms: 3, AvailableRooms: 2, TotalTimesBooked: 9}
	mockService.On("RoomStats", c.Request.Context(), int64(1)).Return(stats, nil)

	handler.roomStats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response roomStatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), response.TotalRooms)
	assert.Equal(t, int64(2), response.AvailableRooms)
	assert.Equal(t, int64(9), response.TotalTimesBooked)
}

func TestHotelHandler_getHotel_invalidID(t *testing.T) {
	mockService := &MockHotelUseCase{}
	handler := NewHotelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/hotels/abc", nil)

	handler.getHotel(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetHotel")
}
