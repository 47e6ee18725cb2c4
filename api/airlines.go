package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/gin-gonic/gin"
)

type AirlineHandler struct {
	repo repository.AirlineRepository
}

type createAirlineRequest struct {
	Name string `json:"name"`
}

func NewAirlineHandler(repo repository.AirlineRepository) *AirlineHandler {
	return &AirlineHandler{repo: repo}
}

func (h *AirlineHandler) Register(public, private *gin.RouterGroup) {
	public.GET("/airlines", h.list)
	public.GET("/airlines/:id", h.get)

	private.POST("/airlines", h.create)
	private.DELETE("/airlines/:id", h.remove)
}

func (h *AirlineHandler) list(c *gin.Context) {
	airlines, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airlines)
}

func (h *AirlineHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	airline, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, airline)
}

func (h *AirlineHandler) create(c *gin.Context) {
	var req createAirlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	airline, err := h.repo.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airline)
}

func (h *AirlineHandler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Airline deleted successfully"})
}
