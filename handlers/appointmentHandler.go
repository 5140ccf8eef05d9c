package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/models"
	"CarePoint/services"
	"CarePoint/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	slots    *services.SlotService
	bookings *services.BookingService
}

func NewAppointmentHandler(slots *services.SlotService, bookings *services.BookingService) *AppointmentHandler {
	return &AppointmentHandler{slots: slots, bookings: bookings}
}

// ListAvailableSlots handles GET /slots/available?specialty=&date=
func (h *AppointmentHandler) ListAvailableSlots(c *gin.Context) {
	specialty := c.Query("specialty")
	date := c.Query("date")

	slots, err := h.slots.ListAvailable(c.Request.Context(), specialty, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// Book handles POST /patients/me/appointments
func (h *AppointmentHandler) Book(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateBooking(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detail, err := h.bookings.Book(c.Request.Context(), patientID, req.SlotID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// MyAppointments handles GET /patients/me/appointments
func (h *AppointmentHandler) MyAppointments(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	appointments, err := h.bookings.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// Cancel handles DELETE /patients/me/appointments/:appointment_id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), uint(id), patientID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
