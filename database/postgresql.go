package database

import (
	"CarePoint/models"
	"context"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the database connection, configures the pool, verifies
// connectivity and runs migrations. Uniqueness violations are translated to
// gorm.ErrDuplicatedKey so repositories can map them to domain conflicts.
func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	logMode := logger.Silent
	if os.Getenv("ENV") == "development" {
		logMode = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		PrepareStmt:                              true,
		TranslateError:                           true,
		Logger:                                   logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	if err := testDatabaseConnection(ctx, db); err != nil {
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	log.Println("Database initialized successfully.")
	return db, nil
}

// configureConnectionPool sets up the connection pool settings for the database.
func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// testDatabaseConnection verifies that the database connection is functional.
func testDatabaseConnection(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// runMigrations performs database schema migrations.
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Patient{},
		&models.MedicalHistory{},
		&models.Slot{},
		&models.Appointment{},
		&models.MedicalDocument{},
		&models.DocumentAnalysis{},
	)
}
