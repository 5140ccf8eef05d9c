package main

import (
	"CarePoint/blobstore"
	"CarePoint/cache"
	"CarePoint/config"
	"CarePoint/database"
	"CarePoint/routes"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize the database
	db, err := database.InitDB(context.Background(), cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Initialize Redis
	if err := database.InitializeRedis(cfg.RedisAddress); err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	// Initialize the cache utility
	appCache, err := cache.New(database.RedisClient)
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	// Initialize the document blob store and analyzer
	store, err := blobstore.New(context.Background(), cfg.Blob.Bucket, cfg.Blob.PresignTTL)
	if err != nil {
		log.Fatalf("failed to initialize blob store: %v", err)
	}
	analyzer := blobstore.NewHTTPAnalyzer(cfg.DocIntel.Endpoint, cfg.DocIntel.APIKey)

	handler := routes.SetupRoutes(appCache, cfg, db, store, analyzer)

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":8930",
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Println("Starting server on :8930")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait()
	log.Println("Server exited gracefully")
}

// loadConfig loads configuration from environment variables.
func loadConfig() (*config.AppConfig, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, errors.New("missing DB_URL environment variable")
	}

	redisAddress := os.Getenv("REDIS_URL")
	if redisAddress == "" {
		return nil, errors.New("missing REDIS_URL environment variable")
	}

	bearerToken := os.Getenv("BEARER_TOKEN")
	if bearerToken == "" {
		return nil, errors.New("missing BEARER_TOKEN environment variable")
	}

	interval := 30
	if raw := os.Getenv("SLOT_INTERVAL_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 60 {
			return nil, errors.New("SLOT_INTERVAL_MINUTES must be an integer between 1 and 60")
		}
		interval = parsed
	}

	timezone := time.UTC
	if raw := os.Getenv("CLINIC_TIMEZONE"); raw != "" {
		loc, err := time.LoadLocation(raw)
		if err != nil {
			return nil, errors.New("invalid CLINIC_TIMEZONE: " + raw)
		}
		timezone = loc
	}

	smtpPort := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("SMTP_PORT must be an integer")
		}
		smtpPort = parsed
	}

	presignTTL := 15 * time.Minute
	if raw := os.Getenv("BLOB_PRESIGN_TTL_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, errors.New("BLOB_PRESIGN_TTL_MINUTES must be a positive integer")
		}
		presignTTL = time.Duration(parsed) * time.Minute
	}

	return &config.AppConfig{
		DBURL:               dbURL,
		RedisAddress:        redisAddress,
		BearerToken:         bearerToken,
		SlotIntervalMinutes: interval,
		Timezone:            timezone,
		SMTP: config.SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: smtpPort,
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: os.Getenv("SMTP_FROM"),
		},
		Clinic: config.ClinicConfig{
			Name:          os.Getenv("CLINIC_NAME"),
			Location:      os.Getenv("CLINIC_LOCATION"),
			ContactNumber: os.Getenv("CLINIC_CONTACT_NUMBER"),
		},
		Blob: config.BlobConfig{
			Bucket:     os.Getenv("DOCUMENT_BUCKET"),
			PresignTTL: presignTTL,
		},
		DocIntel: config.DocIntelConfig{
			Endpoint: os.Getenv("DOC_INTEL_ENDPOINT"),
			APIKey:   os.Getenv("DOC_INTEL_API_KEY"),
		},
	}, nil
}
