package api

import (
	"net/http"
	"strconv"
	"time"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/service/booking"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	service booking.AvailabilityUseCase
}

type availableRoomResponse struct {
	ID          int64  `json:"id"`
	HotelID     int64  `json:"hotelId"`
	Number      string `json:"number"`
	TimesBooked int64  `json:"timesBooked"`
}

func NewAvailabilityHandler(service booking.AvailabilityUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

func (h *AvailabilityHandler) Register(router *gin.RouterGroup) {
	router.GET("/rooms", h.rooms)
	router.GET("/recommend", h.recommend)
}

func (h *AvailabilityHandler) rooms(c *gin.Context) {
	h.search(c, false)
}

func (h *AvailabilityHandler) recommend(c *gin.Context) {
	h.search(c, true)
}

func (h *AvailabilityHandler) search(c *gin.Context, recommend bool) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	startDate, err := time.Parse(dateFormat, c.Query("startDate"))
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid start date"))
		return
	}
	endDate, err := time.Parse(dateFormat, c.Query("endDate"))
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid end date"))
		return
	}

	var hotelID int64
	if raw := c.Query("hotelId"); raw != "" {
		hotelID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			renderError(c, apperr.BadRequest("Invalid hotel id"))
			return
		}
	}
	var limit int
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			renderError(c, apperr.BadRequest("Invalid limit"))
			return
		}
	}

	rooms, err := h.service.GetAvailableRooms(c.Request.Context(), startDate, endDate, hotelID, limit, recommend)
	if err != nil {
		renderError(c, err)
		return
	}

	response := make([]availableRoomResponse, 0, len(rooms))
	for _, room := range rooms {
		response = append(response, availableRoomResponse{
			ID:          room.ID,
			HotelID:     room.HotelID,
			Number:      room.Number,
			TimesBooked: room.TimesBooked,
		})
	}
	c.JSON(http.StatusOK, response)
}
