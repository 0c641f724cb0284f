package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/accelconnect/restauration-gateway/utils"
)

// RequireRole guards a route group behind a role already resolved by
// AuthMiddleware. Admins pass every check.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole != required && userRole != "admin" {
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access required", required))
			c.Abort()
			return
		}

		c.Next()
	}
}
