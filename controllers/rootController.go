package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthHandler answers liveness probes.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoute sets up the root and health routes for the application
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", healthHandler)
	router.GET("/health", healthHandler)
}
