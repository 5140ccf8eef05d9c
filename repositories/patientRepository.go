package repositories

import (
	"CarePoint/cache"
	"CarePoint/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const PatientCacheExpiry = 24 * time.Hour

type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := patientCacheKey(id)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cached), &patient); err == nil {
			return &patient, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if data, err := json.Marshal(patient); err == nil {
		if err := r.cache.Set(ctx, cacheKey, data, PatientCacheExpiry); err != nil {
			log.Printf("Failed to set patient in cache: %v", err)
		}
	}

	return &patient, nil
}

// GetByUserID resolves the patient profile behind a login identity. Used by
// the auth middleware on every authenticated request, so no caching detour:
// the query is a single indexed lookup.
func (r *PatientRepository) GetByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient by user: %w", err)
	}
	return &patient, nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	result := r.db.WithContext(ctx).Model(&models.Patient{}).
		Where("id = ?", patient.ID).
		Updates(map[string]interface{}{
			"name":           patient.Name,
			"date_of_birth":  patient.DateOfBirth,
			"gender":         patient.Gender,
			"contact_number": patient.ContactNumber,
			"email":          patient.Email,
			"address":        patient.Address,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPatientNotFound
	}

	return r.cache.Delete(ctx, patientCacheKey(patient.ID))
}

func patientCacheKey(id uint) string {
	return fmt.Sprintf("patient_cache:%d", id)
}
