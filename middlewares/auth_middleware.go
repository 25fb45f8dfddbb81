package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"helpdesk/utils"
)

// AuthCookieName is the session cookie set on login and refreshed by the
// sliding-expiration logic below.
const AuthCookieName = "helpdesk_auth"

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid user ID in token"))
			c.Abort()
			return
		}

		// Sliding expiration: once the token is past half its lifetime,
		// hand out a fresh one on the cookie.
		if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < utils.TokenLifetime/2 {
			if fresh, err := utils.GenerateToken(claims.UserID, claims.Role, claims.Name, claims.Email); err == nil {
				c.SetCookie(AuthCookieName, fresh, int(utils.TokenLifetime.Seconds()), "/", "", false, true)
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("name", claims.Name)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// extractToken reads the bearer header first and falls back to the
// session cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}
