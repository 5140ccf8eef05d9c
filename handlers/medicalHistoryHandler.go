package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/models"
	"CarePoint/services"
	"CarePoint/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type MedicalHistoryHandler struct {
	service *services.MedicalHistoryService
}

func NewMedicalHistoryHandler(service *services.MedicalHistoryService) *MedicalHistoryHandler {
	return &MedicalHistoryHandler{service: service}
}

// Create handles POST /patients/me/medical-history
func (h *MedicalHistoryHandler) Create(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.MedicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateMedicalHistory(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := models.MedicalHistory{
		PatientID:     patientID,
		Condition:     req.Condition,
		DiagnosisDate: req.DiagnosisDate,
		Medications:   req.Medications,
		Allergies:     req.Allergies,
		Treatment:     req.Treatment,
		Notes:         req.Notes,
	}
	if err := h.service.Create(c.Request.Context(), &record); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// List handles GET /patients/me/medical-history
func (h *MedicalHistoryHandler) List(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	records, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetByID handles GET /patients/me/medical-history/:history_id
func (h *MedicalHistoryHandler) GetByID(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "history_id")
	if !ok {
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), patientID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Update handles PUT /patients/me/medical-history/:history_id
func (h *MedicalHistoryHandler) Update(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "history_id")
	if !ok {
		return
	}

	var req models.MedicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateMedicalHistory(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := models.MedicalHistory{
		ID:            id,
		PatientID:     patientID,
		Condition:     req.Condition,
		DiagnosisDate: req.DiagnosisDate,
		Medications:   req.Medications,
		Allergies:     req.Allergies,
		Treatment:     req.Treatment,
		Notes:         req.Notes,
	}
	if err := h.service.Update(c.Request.Context(), &record); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /patients/me/medical-history/:history_id
func (h *MedicalHistoryHandler) Delete(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "history_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), patientID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
