package handlers

import (
	"CarePoint/models"
	"CarePoint/services"
	"CarePoint/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the administrative surface: doctor CRUD and slot
// management.
type AdminHandler struct {
	doctors *services.DoctorService
	slots   *services.SlotService
}

func NewAdminHandler(doctors *services.DoctorService, slots *services.SlotService) *AdminHandler {
	return &AdminHandler{doctors: doctors, slots: slots}
}

func (h *AdminHandler) CreateDoctor(c *gin.Context) {
	var req models.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateDoctor(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor := models.Doctor{Name: req.Name, Specialty: req.Specialty}
	if err := h.doctors.Create(c.Request.Context(), &doctor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *AdminHandler) GetDoctorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	doctor, err := h.doctors.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *AdminHandler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.doctors.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	var req models.DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateDoctor(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor := models.Doctor{ID: id, Name: req.Name, Specialty: req.Specialty}
	if err := h.doctors.Update(c.Request.Context(), &doctor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	if err := h.doctors.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSlot handles POST /admin/doctors/:doctor_id/slots with a single
// RFC 3339 timestamp; the server aligns it to the booking grid.
func (h *AdminHandler) CreateSlot(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	var req models.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time must be RFC 3339"})
		return
	}

	slot, err := h.slots.Create(c.Request.Context(), doctorID, startTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// BulkCreateSlots handles POST /admin/doctors/:doctor_id/slots/bulk,
// generating every aligned slot between start and end time on the given
// day. Candidates already present or in the past are skipped, so an empty
// response is a valid outcome.
func (h *AdminHandler) BulkCreateSlots(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	var req models.BulkSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateBulkSlots(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02 15:04", req.Date+" "+req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date or start_time"})
		return
	}
	end, err := time.Parse("2006-01-02 15:04", req.Date+" "+req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date or end_time"})
		return
	}

	created, err := h.slots.GenerateRange(c.Request.Context(), doctorID, start, end, req.IntervalMinutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListSlots handles GET /admin/doctors/:doctor_id/slots?future=true
func (h *AdminHandler) ListSlots(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	onlyFuture := c.Query("future") == "true"
	slots, err := h.slots.ListByDoctor(c.Request.Context(), doctorID, onlyFuture)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// DeleteFutureSlots handles DELETE /admin/doctors/:doctor_id/slots/future?days=N
func (h *AdminHandler) DeleteFutureSlots(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
		return
	}

	deleted, err := h.slots.DeleteFutureRange(c.Request.Context(), doctorID, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
