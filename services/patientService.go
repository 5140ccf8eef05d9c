package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
)

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	return s.repository.Update(ctx, patient)
}
