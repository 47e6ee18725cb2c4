package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/travelbook/internal/domain"
	"github.com/Domenick1991/travelbook/internal/repository"
	"github.com/Domenick1991/travelbook/internal/service/auth"
	"github.com/gin-gonic/gin"
)

// UserHandler serves profile endpoints. Every route requires the caller to be
// the profile owner or the administrator.
type UserHandler struct {
	users repository.UserRepository
	auth  auth.AuthUseCase
}

type setPhotoRequest struct {
	PhotoURL string `json:"photoUrl"`
}

func NewUserHandler(users repository.UserRepository, authSvc auth.AuthUseCase) *UserHandler {
	return &UserHandler{users: users, auth: authSvc}
}

func (h *UserHandler) Register(private *gin.RouterGroup) {
	private.GET("/users", h.list)
	private.GET("/users/:id", h.get)
	private.PUT("/users/:id", h.update)
	private.DELETE("/users/:id", h.remove)
	private.POST("/users/:id/photo", h.setPhoto)
}

func (h *UserHandler) list(c *gin.Context) {
	if !h.auth.IsAdmin(principal(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
		return
	}

	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, sanitizeUser(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) get(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sanitizeUser(*user))
}

func (h *UserHandler) update(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	patch, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sanitizeUser(*user))
}

func (h *UserHandler) remove(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UserHandler) setPhoto(c *gin.Context) {
	id, ok := h.ownedUserID(c)
	if !ok {
		return
	}
	var req setPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PhotoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photoUrl is required"})
		return
	}

	if err := h.users.SetPhoto(c.Request.Context(), id, req.PhotoURL); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo updated", "photoUrl": req.PhotoURL})
}

// ownedUserID parses the :id param and rejects callers that are neither the
// owner nor the administrator. It writes the response itself on failure.
func (h *UserHandler) ownedUserID(c *gin.Context) (int64, bool) {
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

func sanitizeUser(u domain.User) domain.User {
	u.Password = ""
	u.ResetTokenHash = ""
	u.ResetTokenExpiry = 0
	return u
}
