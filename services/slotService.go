package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
	"time"
)

type SlotService struct {
	repository *repositories.SlotRepository
}

func NewSlotService(repository *repositories.SlotRepository) *SlotService {
	return &SlotService{repository: repository}
}

func (s *SlotService) Create(ctx context.Context, doctorID uint, startTime time.Time) (*models.Slot, error) {
	return s.repository.Create(ctx, doctorID, startTime)
}

func (s *SlotService) GenerateRange(ctx context.Context, doctorID uint, start, end time.Time, intervalMinutes int) ([]models.SlotView, error) {
	return s.repository.GenerateRange(ctx, doctorID, start, end, intervalMinutes)
}

func (s *SlotService) ListAvailable(ctx context.Context, specialty, date string) ([]models.SlotView, error) {
	return s.repository.ListAvailable(ctx, specialty, date)
}

func (s *SlotService) ListByDoctor(ctx context.Context, doctorID uint, onlyFuture bool) ([]models.Slot, error) {
	return s.repository.ListByDoctor(ctx, doctorID, onlyFuture)
}

func (s *SlotService) DeleteFutureRange(ctx context.Context, doctorID uint, days int) (int64, error) {
	return s.repository.DeleteFutureRange(ctx, doctorID, days)
}
