// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

// AuthRequired verifies the bearer token and stores its claims in the context.
// With an empty secret every request passes through unauthenticated.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, utils.NewUnauthorizedError("Authorization header is required"))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.ErrorResponse(c, utils.NewUnauthorizedError("Invalid authorization header format"))
			return
		}

		claims, err := utils.ValidateJWT(key, parts[1])
		if err != nil {
			logrus.WithError(err).Debug("Rejected bearer token")
			utils.ErrorResponse(c, utils.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		// Set user info in context
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired. It is a pass-through whenever
// AuthRequired is.
func AdminRequired(secret, adminRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		role, ok := utils.GetRoleFromContext(c)
		if !ok || role != adminRole {
			utils.ErrorResponse(c, utils.NewForbiddenError("Admin access required"))
			return
		}
		c.Next()
	}
}
