package repositories

import (
	"CarePoint/cache"
	"CarePoint/database"
	"CarePoint/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DoctorCacheExpiry = 24 * time.Hour

	doctorCachePattern = "doctors_cache*"
)

type DoctorRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDoctorRepository(db *gorm.DB, cache *cache.Cache) *DoctorRepository {
	return &DoctorRepository{db: db, cache: cache}
}

// Create inserts a new doctor. A short Redis lock keyed by name prevents
// two concurrent admin requests from registering the same doctor twice.
func (r *DoctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	lockKey := fmt.Sprintf("doctor_lock:%s", doctor.Name)
	lockValue := uuid.New().String()

	locked, err := acquireLockWithRetry(ctx, lockKey, lockValue)
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var existing models.Doctor
	err = r.db.WithContext(ctx).
		Where("name = ? AND specialty = ?", doctor.Name, doctor.Specialty).
		First(&existing).Error
	if err == nil {
		return ErrDoctorExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing doctor: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	return r.cache.DeleteAll(ctx, doctorCachePattern)
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uint) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := doctorCacheKey(id)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
			return &doctor, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if data, err := json.Marshal(doctor); err == nil {
		if err := r.cache.Set(ctx, cacheKey, data, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctor in cache: %v", err)
		}
	}

	return &doctor, nil
}

func (r *DoctorRepository) GetAll(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "doctors_cache"
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil {
		var doctors []models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctors); err == nil {
			return doctors, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	var doctors []models.Doctor
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to get all doctors: %w", err)
	}

	if data, err := json.Marshal(doctors); err == nil {
		if err := r.cache.Set(ctx, cacheKey, data, DoctorCacheExpiry); err != nil {
			log.Printf("Failed to set doctors in cache: %v", err)
		}
	}

	return doctors, nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	result := r.db.WithContext(ctx).Model(&models.Doctor{}).
		Where("id = ?", doctor.ID).
		Updates(map[string]interface{}{"name": doctor.Name, "specialty": doctor.Specialty})
	if result.Error != nil {
		return fmt.Errorf("failed to update doctor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}

	if err := r.cache.Delete(ctx, doctorCacheKey(doctor.ID)); err != nil {
		log.Printf("Failed to delete doctor cache: %v", err)
	}
	return r.cache.DeleteAll(ctx, doctorCachePattern)
}

// Delete removes the doctor. Its slots, and any appointments attached to
// them, go with it through the foreign key cascade.
func (r *DoctorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Doctor{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete doctor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDoctorNotFound
	}

	if err := r.cache.Delete(ctx, doctorCacheKey(id)); err != nil {
		log.Printf("Failed to delete doctor cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, slotCachePattern); err != nil {
		log.Printf("Failed to invalidate slot cache: %v", err)
	}
	return r.cache.DeleteAll(ctx, doctorCachePattern)
}

func doctorCacheKey(id uint) string {
	return fmt.Sprintf("doctor_cache:%d", id)
}

// acquireLockWithRetry takes a distributed lock, retrying a few times
// before giving up.
func acquireLockWithRetry(ctx context.Context, key, value string) (bool, error) {
	const (
		maxRetries = 3
		retryDelay = 2 * time.Second
		lockTTL    = 10 * time.Second
	)

	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, key, value, lockTTL)
		if err == nil && locked {
			return true, nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	return false, err
}
