package middlewares

import (
	"CarePoint/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// Gin context keys set by PatientAuthMiddleware.
	PatientIDKey = "patientID"
	UserIDKey    = "userID"
)

// PatientAuthMiddleware validates the access token and stores the
// authenticated patient's identity in the request context. Everything
// behind it trusts the patient ID it finds there.
func PatientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(token, "Patient")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(PatientIDKey, claims.PatientID)
		c.Set(UserIDKey, claims.UserID)

		c.Next()
	}
}

// PatientIDFromContext returns the authenticated patient ID, or false when
// the request did not pass through PatientAuthMiddleware.
func PatientIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(PatientIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
