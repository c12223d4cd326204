package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bungalowpark/internal/domain"
	"bungalowpark/internal/pkg/token"
)

// Actor validates the staff bearer token and stores the actor identity on the
// context. Token issuance lives in the external auth service.
func Actor(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Missing or invalid Authorization header",
			})
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		c.Set("actor_id", claims.ActorID)
		c.Set("actor_name", claims.Name)

		c.Next()
	}
}

// ActorFrom builds the explicit actor value passed into service operations.
func ActorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:   c.GetInt64("actor_id"),
		Name: c.GetString("actor_name"),
		IP:   c.ClientIP(),
	}
}
