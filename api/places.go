package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/gin-gonic/gin"
)

// PlaceHandler talks to the repository directly: city collections carry no
// rules beyond the uniqueness the repository already enforces.
type PlaceHandler struct {
	repo repository.PlaceRepository
}

type cityPlacesRequest struct {
	City   string         `json:"city"`
	Places []domain.Place `json:"places"`
}

type deleteCityRequest struct {
	City string `json:"city"`
}

func NewPlaceHandler(repo repository.PlaceRepository) *PlaceHandler {
	return &PlaceHandler{repo: repo}
}

func (h *PlaceHandler) Register(public, private *gin.RouterGroup) {
	public.GET("/places", h.list)
	public.GET("/places/:id", h.get)

	private.POST("/places", h.addCity)
	private.PUT("/places", h.replacePlaces)
	private.DELETE("/places", h.deleteCity)
}

func (h *PlaceHandler) list(c *gin.Context) {
	if city := c.Query("city"); city != "" {
		places, err := h.repo.PlacesIn(c.Request.Context(), city)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, places)
		return
	}

	cities, err := h.repo.Cities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *PlaceHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	place, err := h.repo.FindPlace(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

func (h *PlaceHandler) addCity(c *gin.Context) {
	var req cityPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}

	if err := h.repo.AddCity(c.Request.Context(), req.City, req.Places); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "City added", "city": req.City})
}

func (h *PlaceHandler) replacePlaces(c *gin.Context) {
	var req cityPlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}

	if err := h.repo.ReplacePlaces(c.Request.Context(), req.City, req.Places); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Places updated", "city": req.City})
}

func (h *PlaceHandler) deleteCity(c *gin.Context) {
	var req deleteCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city is required"})
		return
	}

	if err := h.repo.DeleteCity(c.Request.Context(), req.City); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "City deleted", "city": req.City})
}
