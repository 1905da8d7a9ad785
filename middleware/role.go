package middleware

import (
	"net/http"

	"fixitnow/models"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to the given roles. It assumes
// JWTAuthMiddleware already resolved the actor.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actual := ActorRole(c)
		for _, role := range roles {
			if actual == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient role for this action",
		})
	}
}
