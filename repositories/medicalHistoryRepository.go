package repositories

import (
	"CarePoint/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type MedicalHistoryRepository struct {
	db *gorm.DB
}

func NewMedicalHistoryRepository(db *gorm.DB) *MedicalHistoryRepository {
	return &MedicalHistoryRepository{db: db}
}

func (r *MedicalHistoryRepository) Create(ctx context.Context, record *models.MedicalHistory) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create medical history record: %w", err)
	}
	return nil
}

// GetByID fetches a record scoped to its patient; a record belonging to a
// different patient is indistinguishable from a missing one.
func (r *MedicalHistoryRepository) GetByID(ctx context.Context, patientID, id uint) (*models.MedicalHistory, error) {
	var record models.MedicalHistory
	err := r.db.WithContext(ctx).
		First(&record, "id = ? AND patient_id = ?", id, patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, fmt.Errorf("failed to get medical history record: %w", err)
	}
	return &record, nil
}

func (r *MedicalHistoryRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.MedicalHistory, error) {
	var records []models.MedicalHistory
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list medical history: %w", err)
	}
	return records, nil
}

func (r *MedicalHistoryRepository) Update(ctx context.Context, record *models.MedicalHistory) error {
	result := r.db.WithContext(ctx).Model(&models.MedicalHistory{}).
		Where("id = ? AND patient_id = ?", record.ID, record.PatientID).
		Updates(map[string]interface{}{
			"condition":      record.Condition,
			"diagnosis_date": record.DiagnosisDate,
			"medications":    record.Medications,
			"allergies":      record.Allergies,
			"treatment":      record.Treatment,
			"notes":          record.Notes,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update medical history record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHistoryNotFound
	}
	return nil
}

func (r *MedicalHistoryRepository) Delete(ctx context.Context, patientID, id uint) error {
	result := r.db.WithContext(ctx).
		Delete(&models.MedicalHistory{}, "id = ? AND patient_id = ?", id, patientID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete medical history record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHistoryNotFound
	}
	return nil
}
