package api

import (
	"net/http"
	"strconv"
	"time"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/service/booking"

	"github.com/gin-gonic/gin"
)

const dateFormat = "2006-01-02"

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	HotelID   int64  `json:"hotelId" binding:"required"`
	RoomID    int64  `json:"roomId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type bookingResponse struct {
	ID        int64  `json:"id"`
	HotelID   int64  `json:"hotelId"`
	RoomID    int64  `json:"roomId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest(err.Error()))
		return
	}

	startDate, err := time.Parse(dateFormat, req.StartDate)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid start date"))
		return
	}
	endDate, err := time.Parse(dateFormat, req.EndDate)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid end date"))
		return
	}

	input := booking.CreateBookingInput{
		HotelID:   req.HotelID,
		RoomID:    req.RoomID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	created, err := h.service.CreateBooking(c.Request.Context(), userID, input, c.GetHeader("X-Idempotency-Key"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(created))
}

func (h *BookingHandler) list(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	bookings, err := h.service.ListBookings(c.Request.Context(), userID, page, size)
	if err != nil {
		renderError(c, err)
		return
	}

	response := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		response = append(response, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *BookingHandler) get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid booking id"))
		return
	}

	found, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid booking id"))
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), userID, bookingID); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		HotelID:   b.HotelID,
		RoomID:    b.RoomID,
		StartDate: b.StartDate.Format(dateFormat),
		EndDate:   b.EndDate.Format(dateFormat),
		Status:    string(b.Status),
	}
}
