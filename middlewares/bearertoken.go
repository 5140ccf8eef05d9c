package middlewares

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ValidateBearerToken guards the admin surface with a static Bearer token.
func ValidateBearerToken(expectedBearerToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		// Constant-time comparison to mitigate timing attacks
		if subtle.ConstantTimeCompare([]byte(token), []byte(expectedBearerToken)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Bearer Token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoggingMiddleware logs information about incoming requests.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Printf("Request: %s %s | Status: %d | Duration: %v",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
