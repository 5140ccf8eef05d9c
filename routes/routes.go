package routes

import (
	"CarePoint/blobstore"
	"CarePoint/cache"
	"CarePoint/config"
	"CarePoint/controllers"
	"CarePoint/handlers"
	"CarePoint/middlewares"
	"CarePoint/repositories"
	"CarePoint/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, cfg *config.AppConfig, db *gorm.DB, store *blobstore.Store, analyzer blobstore.Analyzer) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.carepoint.clinic"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	slotRepo := repositories.NewSlotRepository(db, cache, cfg.SlotIntervalMinutes)
	bookingRepo := repositories.NewBookingRepository(db, cache)
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(db, cache)
	historyRepo := repositories.NewMedicalHistoryRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Initialize services
	slotService := services.NewSlotService(slotRepo)
	bookingService := services.NewBookingService(bookingRepo, patientRepo, cfg)
	doctorService := services.NewDoctorService(doctorRepo)
	patientService := services.NewPatientService(patientRepo)
	historyService := services.NewMedicalHistoryService(historyRepo)
	documentService := services.NewDocumentService(documentRepo, store, analyzer)
	authService := services.NewAuthService(userRepo, patientRepo)

	// Initialize handlers
	appointmentHandler := handlers.NewAppointmentHandler(slotService, bookingService)
	adminHandler := handlers.NewAdminHandler(doctorService, slotService)
	patientHandler := handlers.NewPatientHandler(patientService)
	historyHandler := handlers.NewMedicalHistoryHandler(historyService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	authHandler := handlers.NewAuthHandler(authService)

	// Register routes
	controllers.SetupPublicRoutes(router, authHandler, appointmentHandler)
	controllers.SetupPatientRoutes(router, patientHandler, appointmentHandler, historyHandler, documentHandler)
	controllers.SetupAdminRoutes(router, adminHandler, cfg.GetBearerToken())
	controllers.SetupRootRoute(router)

	return router
}
