package controllers

import (
	"CarePoint/handlers"
	"CarePoint/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes registers the routes that require no patient session:
// account creation, login and the available-slot listing patients browse
// before booking.
func SetupPublicRoutes(router *gin.Engine, authHandler *handlers.AuthHandler, appointmentHandler *handlers.AppointmentHandler) {
	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)

	router.GET("/slots/available", appointmentHandler.ListAvailableSlots)
}

// SetupPatientRoutes registers everything scoped to the authenticated
// patient. The auth middleware resolves the patient id from the token, so
// no route carries a patient id parameter.
func SetupPatientRoutes(
	router *gin.Engine,
	patientHandler *handlers.PatientHandler,
	appointmentHandler *handlers.AppointmentHandler,
	medicalHistoryHandler *handlers.MedicalHistoryHandler,
	documentHandler *handlers.DocumentHandler,
) {
	patientGroup := router.Group("/patients/me").Use(middlewares.PatientAuthMiddleware())
	{
		patientGroup.GET("", patientHandler.GetMe)
		patientGroup.PUT("", patientHandler.UpdateMe)

		patientGroup.POST("/appointments", appointmentHandler.Book)
		patientGroup.GET("/appointments", appointmentHandler.MyAppointments)
		patientGroup.DELETE("/appointments/:appointment_id", appointmentHandler.Cancel)

		patientGroup.POST("/medical-history", medicalHistoryHandler.Create)
		patientGroup.GET("/medical-history", medicalHistoryHandler.List)
		patientGroup.GET("/medical-history/:history_id", medicalHistoryHandler.GetByID)
		patientGroup.PUT("/medical-history/:history_id", medicalHistoryHandler.Update)
		patientGroup.DELETE("/medical-history/:history_id", medicalHistoryHandler.Delete)

		patientGroup.POST("/documents", documentHandler.RequestUpload)
		patientGroup.GET("/documents", documentHandler.List)
		patientGroup.GET("/documents/:document_id", documentHandler.GetStatus)
		patientGroup.POST("/documents/:document_id/confirm", documentHandler.ConfirmUpload)
	}
}

// SetupAdminRoutes registers the schedule-management surface used by clinic
// staff. The whole group sits behind the static bearer token.
func SetupAdminRoutes(router *gin.Engine, adminHandler *handlers.AdminHandler, bearerToken string) {
	adminGroup := router.Group("/admin").Use(middlewares.ValidateBearerToken(bearerToken))
	{
		adminGroup.POST("/doctors", adminHandler.CreateDoctor)
		adminGroup.GET("/doctors", adminHandler.GetAllDoctors)
		adminGroup.GET("/doctors/:doctor_id", adminHandler.GetDoctorByID)
		adminGroup.PUT("/doctors/:doctor_id", adminHandler.UpdateDoctor)
		adminGroup.DELETE("/doctors/:doctor_id", adminHandler.DeleteDoctor)

		adminGroup.POST("/doctors/:doctor_id/slots", adminHandler.CreateSlot)
		adminGroup.POST("/doctors/:doctor_id/slots/bulk", adminHandler.BulkCreateSlots)
		adminGroup.GET("/doctors/:doctor_id/slots", adminHandler.ListSlots)
		adminGroup.DELETE("/doctors/:doctor_id/slots/future", adminHandler.DeleteFutureSlots)
	}
}
