package middleware

import (
	"net/http"
	"strings"

	"fixitnow/models"
	"fixitnow/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ContextActorID   = "actorID"
	ContextActorRole = "actorRole"
)

// JWTAuthMiddleware validates the bearer token and resolves a typed actor
// (id + role) into the request context. Every downstream operation receives
// the actor explicitly; nothing reads ambient identity state.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		actorID, roleClaim, err := utils.ExtractActorFromToken(tokenString)
		if err != nil || actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		role := models.Role(roleClaim)
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set(ContextActorID, actorID)
		c.Set(ContextActorRole, role)
		c.Next()
	}
}

// ActorID returns the authenticated actor id from the request context.
func ActorID(c *gin.Context) string {
	return c.GetString(ContextActorID)
}

// ActorRole returns the authenticated actor role from the request context.
func ActorRole(c *gin.Context) models.Role {
	if v, ok := c.Get(ContextActorRole); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}
