package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/service/trips"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service trips.FlightUseCase
}

func NewFlightHandler(service trips.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

// Register wires the read endpoints onto the public group and the mutating
// ones onto the authenticated group.
func (h *FlightHandler) Register(public, private *gin.RouterGroup) {
	public.GET("/flights", h.list)
	public.GET("/flights/:id", h.get)

	private.POST("/flights", h.create)
	private.PUT("/flights/:id", h.update)
	private.DELETE("/flights/:id", h.remove)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter := trips.FlightFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
		Date: c.Query("date"),
	}
	flights, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var flight domain.Flight
	if err := c.ShouldBindJSON(&flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), flight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FlightHandler) update(c *gin.Context) {
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

func (h *FlightHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully"})
}
