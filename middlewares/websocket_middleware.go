package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/accelconnect/restauration-gateway/utils"
)

// WebSocketAuthMiddleware authenticates websocket upgrades; browsers
// cannot set headers on the handshake so the token rides the query.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		if utils.IsTokenBlacklisted(token) {
			c.AbortWithStatus(401)
			return
		}

		claims, err := resolveClaims(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}
