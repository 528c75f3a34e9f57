package middleware

import (
	"net/http"
	"strings"

	"dosebuddy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards the API with the single local account's session
// token. Expects "Authorization: Bearer <token>".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Missing auth token", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Malformed auth header", nil)
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(parts[1])
		if err != nil || !token.Valid {
			utils.APIResponse(c, http.StatusUnauthorized, false, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
