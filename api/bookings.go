package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/service/auth"
	"github.com/Domenick1991/travelbook/internal/service/bookings"
	"github.com/gin-gonic/gin"
)

// BookingHandler serves the per-user subresources: favorites, flight bookings
// and hotel bookings.
type BookingHandler struct {
	service bookings.BookingUseCase
	auth    auth.AuthUseCase
}

type favoriteRequest struct {
	FavoriteID    int64   `json:"favoriteId"`
	Type          string  `json:"type"`
	Airline       string  `json:"airline"`
	FlightNumber  string  `json:"flightNumber"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Date          string  `json:"date"`
	Price         float64 `json:"price"`
	Name          string  `json:"name"`
	City          string  `json:"city"`
}

type removeFavoriteRequest struct {
	FavoriteID int64  `json:"favoriteId"`
	Type       string `json:"type"`
}

type cancelFlightBookingRequest struct {
	BookingID string `json:"bookingId"`
}

type cancelHotelBookingRequest struct {
	BookingID string `json:"bookingId"`
}

func NewBookingHandler(service bookings.BookingUseCase, authSvc auth.AuthUseCase) *BookingHandler {
	return &BookingHandler{service: service, auth: authSvc}
}

func (h *BookingHandler) Register(private *gin.RouterGroup) {
	private.GET("/users/:id/favorites", h.listFavorites)
	private.POST("/users/:id/favorites", h.addFavorite)
	private.DELETE("/users/:id/favorites", h.removeFavorite)

	private.GET("/users/:id/bookings", h.listFlights)
	private.POST("/users/:id/bookings", h.bookFlight)
	private.POST("/users/:id/cancel-booking", h.cancelFlight)

	private.GET("/users/:id/hotel-bookings", h.listHotels)
	private.POST("/users/:id/hotel-bookings", h.bookHotel)
	private.PUT("/users/:id/hotel-bookings/:bookingId", h.editHotel)
	private.POST("/users/:id/cancel-hotel-booking", h.cancelHotel)
}

func (h *BookingHandler) listFavorites(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	favorites, err := h.service.ListFavorites(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *BookingHandler) addFavorite(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorites, err := h.service.AddFavorite(c.Request.Context(), id, domain.Favorite{
		ID:            req.FavoriteID,
		Type:          req.Type,
		Airline:       req.Airline,
		FlightNumber:  req.FlightNumber,
		From:          req.From,
		To:            req.To,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Date:          req.Date,
		Price:         req.Price,
		Name:          req.Name,
		City:          req.City,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *BookingHandler) removeFavorite(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	var req removeFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorites, err := h.service.RemoveFavorite(c.Request.Context(), id, req.FavoriteID, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *BookingHandler) listFlights(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	booked, err := h.service.ListBookedFlights(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booked)
}

func (h *BookingHandler) bookFlight(c *gin.Context) {
	_, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	var req bookings.BookFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booked, err := h.service.BookFlight(c.Request.Context(), principal(c).Email, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight booked", "bookedFlights": booked})
}

func (h *BookingHandler) cancelFlight(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	var req cancelFlightBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booked, err := h.service.CancelFlightBooking(c.Request.Context(), id, principal(c).Email, req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "bookedFlights": booked})
}

func (h *BookingHandler) listHotels(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	booked, err := h.service.ListBookedHotels(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booked)
}

func (h *BookingHandler) bookHotel(c *gin.Context) {
	_, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	var req bookings.BookHotelInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booked, err := h.service.BookHotel(c.Request.Context(), principal(c).Email, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hotel booked", "bookedHotels": booked})
}

func (h *BookingHandler) editHotel(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.EditHotelBooking(c.Request.Context(), id, c.Param("bookingId"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) cancelHotel(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	var req cancelHotelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booked, err := h.service.CancelHotelBooking(c.Request.Context(), id, principal(c).Email, req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hotel booking cancelled", "bookedHotels": booked})
}

func (h *BookingHandler) ownedUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	if err := h.auth.Authorize(principal(c), id); err != nil {
		respondError(c, err)
		return 0, false
	}
	return id, true
}
