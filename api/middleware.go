package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/travelbook/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthMiddleware validates the Bearer token and stores the authenticated
// principal on the context. Requests without a valid token are rejected
// before reaching the handler.
func AuthMiddleware(service auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		p, err := service.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

func principal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
