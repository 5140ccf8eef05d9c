package handlers

import (
	"CarePoint/repositories"
	"CarePoint/services"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto stable HTTP status codes. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrDoctorNotFound),
		errors.Is(err, repositories.ErrSlotNotFound),
		errors.Is(err, repositories.ErrPatientNotFound),
		errors.Is(err, repositories.ErrAppointmentNotFound),
		errors.Is(err, repositories.ErrDocumentNotFound),
		errors.Is(err, repositories.ErrHistoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrSlotAlreadyBooked),
		errors.Is(err, repositories.ErrScheduleConflict),
		errors.Is(err, repositories.ErrDoctorExists),
		errors.Is(err, repositories.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrPastSlot),
		errors.Is(err, repositories.ErrInvalidDateFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrNotAppointmentOwner),
		errors.Is(err, repositories.ErrNotDocumentOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
