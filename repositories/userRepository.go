package repositories

import (
	"CarePoint/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithPatient registers a login identity and its patient profile
// atomically, so a half-created account can never log in.
func (r *UserRepository) CreateWithPatient(ctx context.Context, user *models.User, patient *models.Patient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		patient.UserID = user.ID
		if err := tx.Create(patient).Error; err != nil {
			return fmt.Errorf("failed to create patient profile: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
