package middleware

import (
	"net/http"
	"strings"

	"pawcare/utils"

	"github.com/gin-gonic/gin"
)

// BearerAuthMiddleware validates the Authorization header and stores the
// token subject on the context as "subjectID". Booking routes use it to bind
// sessions and appointments to the calling owner.
func BearerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("subjectID", subject)
		c.Next()
	}
}

// SubjectID returns the authenticated subject set by BearerAuthMiddleware.
func SubjectID(c *gin.Context) string {
	val, ok := c.Get("subjectID")
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}
