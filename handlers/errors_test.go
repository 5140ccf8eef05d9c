package handlers

import (
	"CarePoint/repositories"
	"CarePoint/services"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot not found", repositories.ErrSlotNotFound, http.StatusNotFound},
		{"doctor not found", repositories.ErrDoctorNotFound, http.StatusNotFound},
		{"appointment not found", repositories.ErrAppointmentNotFound, http.StatusNotFound},
		{"slot already booked", repositories.ErrSlotAlreadyBooked, http.StatusConflict},
		{"schedule conflict", repositories.ErrScheduleConflict, http.StatusConflict},
		{"email taken", repositories.ErrEmailTaken, http.StatusConflict},
		{"past slot", repositories.ErrPastSlot, http.StatusBadRequest},
		{"bad date filter", repositories.ErrInvalidDateFilter, http.StatusBadRequest},
		{"not appointment owner", repositories.ErrNotAppointmentOwner, http.StatusForbidden},
		{"not document owner", repositories.ErrNotDocumentOwner, http.StatusForbidden},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondError(c, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
