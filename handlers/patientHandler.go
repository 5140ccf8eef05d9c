package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/models"
	"CarePoint/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// GetMe handles GET /patients/me
func (h *PatientHandler) GetMe(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	patient, err := h.service.GetByID(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// UpdateMe handles PUT /patients/me
func (h *PatientHandler) UpdateMe(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patient.ID = patientID

	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}
