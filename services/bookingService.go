package services

import (
	"CarePoint/config"
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
	"log"
	"time"
)

// BookingService wraps the booking engine and dispatches the confirmation
// email after a successful booking. The email is fire-and-forget: a send
// failure is logged, never surfaced, and never rolls back the booking.
type BookingService struct {
	repository *repositories.BookingRepository
	patients   *repositories.PatientRepository
	smtp       config.SMTPConfig
	clinic     config.ClinicConfig
	timezone   *time.Location
}

func NewBookingService(repository *repositories.BookingRepository, patients *repositories.PatientRepository, cfg *config.AppConfig) *BookingService {
	return &BookingService{
		repository: repository,
		patients:   patients,
		smtp:       cfg.SMTP,
		clinic:     cfg.Clinic,
		timezone:   cfg.Timezone,
	}
}

func (s *BookingService) Book(ctx context.Context, patientID, slotID uint, reason string) (*models.BookingDetail, error) {
	detail, err := s.repository.Book(ctx, patientID, slotID, reason)
	if err != nil {
		return nil, err
	}

	go s.sendConfirmation(*detail)

	return detail, nil
}

func (s *BookingService) Cancel(ctx context.Context, appointmentID, patientID uint) error {
	return s.repository.Cancel(ctx, appointmentID, patientID)
}

func (s *BookingService) ListByPatient(ctx context.Context, patientID uint) ([]models.BookingDetail, error) {
	return s.repository.ListByPatient(ctx, patientID)
}

func (s *BookingService) sendConfirmation(detail models.BookingDetail) {
	if s.smtp.Host == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	patient, err := s.patients.GetByID(ctx, detail.PatientID)
	if err != nil {
		log.Printf("Failed to load patient %d for confirmation email: %v", detail.PatientID, err)
		return
	}

	startTime := detail.StartTime
	if s.timezone != nil {
		startTime = startTime.In(s.timezone)
	}

	err = utils.SendAppointmentEmail(s.smtp, patient.Email, utils.AppointmentEmailData{
		PatientName: patient.Name,
		DoctorName:  detail.DoctorName,
		Specialty:   detail.Specialty,
		StartTime:   startTime,
		Clinic:      s.clinic,
	})
	if err != nil {
		log.Printf("Failed to send confirmation email for appointment %d: %v", detail.ID, err)
	}
}
