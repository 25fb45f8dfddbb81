package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/utils"
)

// RequireRoles rejects the request with 403 unless the authenticated role
// is one of the allowed set. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, fmt.Errorf("access denied"))
		c.Abort()
	}
}
