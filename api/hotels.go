package api

import (
	"net/http"
	"strconv"

	"hotelbooking/internal/apperr"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/service/hotel"

	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	service hotel.HotelUseCase
}

type createHotelRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type hotelResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type createRoomRequest struct {
	HotelID   int64  `json:"hotelId" binding:"required"`
	Number    string `json:"number" binding:"required"`
	Available *bool  `json:"available" binding:"required"`
}

type roomResponse struct {
	ID          int64  `json:"id"`
	HotelID     int64  `json:"hotelId"`
	Number      string `json:"number"`
	Available   bool   `json:"available"`
	TimesBooked int64  `json:"timesBooked"`
}

type confirmAvailabilityRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type releaseRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
}

type roomStatsResponse struct {
	HotelID          int64 `json:"hotelId"`
	TotalRooms       int64 `json:"totalRooms"`
	AvailableRooms   int64 `json:"availableRooms"`
	TotalTimesBooked int64 `json:"totalTimesBooked"`
}

func NewHotelHandler(service hotel.HotelUseCase) *HotelHandler {
	return &HotelHandler{service: service}
}

func (h *HotelHandler) Register(hotels, rooms *gin.RouterGroup) {
	hotels.POST("", h.createHotel)
	hotels.GET("", h.listHotels)
	hotels.GET("/:id", h.getHotel)
	hotels.GET("/:id/stats", h.roomStats)

	rooms.POST("", h.createRoom)
	rooms.GET("", h.listRooms)
	rooms.GET("/recommend", h.listRecommended)
	rooms.POST("/:id/confirm-availability", h.confirmAvailability)
	rooms.POST("/:id/release", h.release)
}

func (h *HotelHandler) createHotel(c *gin.Context) {
	var req createHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest(err.Error()))
		return
	}

	created, err := h.service.CreateHotel(c.Request.Context(), req.Name, req.Address)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponse(created))
}

func (h *HotelHandler) listHotels(c *gin.Context) {
	hotels, err := h.service.ListHotels(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	response := make([]hotelResponse, 0, len(hotels))
	for i := range hotels {
		response = append(response, toHotelResponse(&hotels[i]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *HotelHandler) getHotel(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid hotel id"))
		return
	}
	found, err := h.service.GetHotel(c.Request.Context(), hotelID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHotelResponse(found))
}

func (h *HotelHandler) roomStats(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid hotel id"))
		return
	}
	stats, err := h.service.RoomStats(c.Request.Context(), hotelID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, roomStatsResponse{
		HotelID:          stats.HotelID,
		TotalRooms:       stats.TotalRooms,
		AvailableRooms:   stats.AvailableRooms,
		TotalTimesBooked: stats.TotalTimesBooked,
	})
}

func (h *HotelHandler) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest(err.Error()))
		return
	}

	created, err := h.service.CreateRoom(c.Request.Context(), req.HotelID, req.Number, *req.Available)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(created))
}

func (h *HotelHandler) listRooms(c *gin.Context) {
	rooms, err := h.service.ListAvailableRooms(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponses(rooms))
}

func (h *HotelHandler) listRecommended(c *gin.Context) {
	rooms, err := h.service.ListRecommendedRooms(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomResponses(rooms))
}

func (h *HotelHandler) confirmAvailability(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid room id"))
		return
	}

	var req confirmAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest(err.Error()))
		return
	}

	if err := h.service.ConfirmAvailability(c.Request.Context(), roomID, req.BookingID); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *HotelHandler) release(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		renderError(c, apperr.BadRequest("Invalid room id"))
		return
	}

	var req releaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, apperr.BadRequest(err.Error()))
		return
	}

	if err := h.service.ReleaseRoom(c.Request.Context(), roomID, req.BookingID); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toHotelResponse(h *domain.Hotel) hotelResponse {
	return hotelResponse{ID: h.ID, Name: h.Name, Address: h.Address}
}

func toRoomResponse(r *domain.Room) roomResponse {
	return roomResponse{
		ID:          r.ID,
		HotelID:     r.HotelID,
		Number:      r.Number,
		Available:   r.Available,
		TimesBooked: r.TimesBooked,
	}
}

func toRoomResponses(rooms []domain.Room) []roomResponse {
	response := make([]roomResponse, 0, len(rooms))
	for i := range rooms {
		response = append(response, toRoomResponse(&rooms[i]))
	}
	return response
}
