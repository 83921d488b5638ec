package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dental-clinic-api/internal/auth"
)

// AccessCookie carries the short-lived access JWT.
const AccessCookie = "accessJwt"

// context keys set for downstream handlers
const (
	UserIDKey = "userId"
	EmailKey  = "email"
)

// Auth guards the private route group. Missing cookie is 401, a token that
// fails verification is 403.
func Auth(secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AccessCookie)
		if err != nil || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token not found"})
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			log.Warn("access token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}
