package handlers

import (
	"CarePoint/cache"
	"CarePoint/config"
	"CarePoint/middlewares"
	"CarePoint/repositories"
	"CarePoint/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newAppointmentRouter wires the handler over sqlmock and an in-process
// Redis. The authed flag simulates a request that passed patient auth.
func newAppointmentRouter(t *testing.T, authed bool) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	appCache, err := cache.New(client)
	require.NoError(t, err)

	slotRepo := repositories.NewSlotRepository(db, appCache, 30)
	bookingRepo := repositories.NewBookingRepository(db, appCache)
	patientRepo := repositories.NewPatientRepository(db, appCache)

	handler := NewAppointmentHandler(
		services.NewSlotService(slotRepo),
		services.NewBookingService(bookingRepo, patientRepo, &config.AppConfig{}),
	)

	router := gin.New()
	if authed {
		router.Use(func(c *gin.Context) {
			c.Set(middlewares.PatientIDKey, uint(3))
		})
	}
	router.GET("/slots/available", handler.ListAvailableSlots)
	router.POST("/patients/me/appointments", handler.Book)
	return router, mock
}

func TestListAvailableSlotsBadDate(t *testing.T) {
	router, mock := newAppointmentRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/slots/available?date=01-01-2025", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookWithoutSession(t *testing.T) {
	router, mock := newAppointmentRouter(t, false)

	req := httptest.NewRequest(http.MethodPost, "/patients/me/appointments",
		strings.NewReader(`{"slot_id": 5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRejectsMissingSlotID(t *testing.T) {
	router, mock := newAppointmentRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/patients/me/appointments",
		strings.NewReader(`{"reason": "checkup"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookUnknownSlot(t *testing.T) {
	router, mock := newAppointmentRouter(t, true)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "slots" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_time", "booked"}))
	mock.ExpectRollback()

	req := httptest.NewRequest(http.MethodPost, "/patients/me/appointments",
		strings.NewReader(`{"slot_id": 404}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
