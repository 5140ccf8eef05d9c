package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/models"
	"CarePoint/services"
	"CarePoint/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service *services.DocumentService
}

func NewDocumentHandler(service *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// RequestUpload handles POST /patients/me/documents. It creates the
// document record and returns a presigned URL the client uploads to.
func (h *DocumentHandler) RequestUpload(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req models.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateUpload(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grant, err := h.service.RequestUpload(c.Request.Context(), patientID, req.FileName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, grant)
}

// ConfirmUpload handles POST /patients/me/documents/:document_id/confirm.
func (h *DocumentHandler) ConfirmUpload(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "document_id")
	if !ok {
		return
	}

	doc, err := h.service.ConfirmUpload(c.Request.Context(), patientID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetStatus handles GET /patients/me/documents/:document_id.
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "document_id")
	if !ok {
		return
	}

	status, err := h.service.GetStatus(c.Request.Context(), patientID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// List handles GET /patients/me/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	patientID, ok := middlewares.PatientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	docs, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}
