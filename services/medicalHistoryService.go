package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
)

type MedicalHistoryService struct {
	repository *repositories.MedicalHistoryRepository
}

func NewMedicalHistoryService(repository *repositories.MedicalHistoryRepository) *MedicalHistoryService {
	return &MedicalHistoryService{repository: repository}
}

func (s *MedicalHistoryService) Create(ctx context.Context, record *models.MedicalHistory) error {
	return s.repository.Create(ctx, record)
}

func (s *MedicalHistoryService) GetByID(ctx context.Context, patientID, id uint) (*models.MedicalHistory, error) {
	return s.repository.GetByID(ctx, patientID, id)
}

func (s *MedicalHistoryService) ListByPatient(ctx context.Context, patientID uint) ([]models.MedicalHistory, error) {
	return s.repository.ListByPatient(ctx, patientID)
}

func (s *MedicalHistoryService) Update(ctx context.Context, record *models.MedicalHistory) error {
	return s.repository.Update(ctx, record)
}

func (s *MedicalHistoryService) Delete(ctx context.Context, patientID, id uint) error {
	return s.repository.Delete(ctx, patientID, id)
}
