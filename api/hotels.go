package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/service/hotels"
	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	service hotels.HotelUseCase
}

type bookRoomsRequest struct {
	RoomType string `json:"roomType"`
	Quantity int    `json:"quantity"`
}

type cancelBookingRequest struct {
	HotelID int64              `json:"hotelId"`
	Rooms   []cancelRoomsEntry `json:"rooms"`
}

// cancelRoomsEntry mirrors the booking request vocabulary ("quantity") rather
// than the stored ledger vocabulary ("count").
type cancelRoomsEntry struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

func NewHotelHandler(service hotels.HotelUseCase) *HotelHandler {
	return &HotelHandler{service: service}
}

func (h *HotelHandler) Register(public, private *gin.RouterGroup) {
	public.GET("/hotels", h.list)
	public.GET("/hotels/:id", h.get)

	private.POST("/hotels", h.create)
	private.PUT("/hotels/:id", h.update)
	private.DELETE("/hotels/:id", h.remove)
	private.POST("/hotels/:id/book", h.book)
	private.POST("/cancel-booking", h.cancelBooking)
}

func (h *HotelHandler) list(c *gin.Context) {
	hotels, err := h.service.List(c.Request.Context(), c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotels)
}

func (h *HotelHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	hotel, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

func (h *HotelHandler) create(c *gin.Context) {
	var hotel domain.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), hotel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *HotelHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *HotelHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hotel deleted successfully"})
}

func (h *HotelHandler) book(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req bookRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := h.service.BookRooms(c.Request.Context(), id, req.RoomType, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Booking successful",
		"roomType":  receipt.RoomType,
		"booked":    receipt.Booked,
		"remaining": receipt.Remaining,
	})
}

func (h *HotelHandler) cancelBooking(c *gin.Context) {
	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rooms := make([]domain.RoomCount, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		rooms = append(rooms, domain.RoomCount{Type: r.Type, Count: r.Quantity})
	}

	if err := h.service.CancelRooms(c.Request.Context(), req.HotelID, rooms); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled and rooms returned successfully"})
}
