package repositories

import (
	"CarePoint/cache"
	"CarePoint/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// BookingRepository performs the slot/appointment pairing. Booking and
// cancellation each run as a single transaction so the slot's booked flag
// and the appointment row can never diverge; the unique index on
// appointments.slot_id is the backstop when two bookings race past the
// application-level checks.
type BookingRepository struct {
	db    *gorm.DB
	cache *cache.Cache
	now   func() time.Time
}

func NewBookingRepository(db *gorm.DB, cache *cache.Cache) *BookingRepository {
	return &BookingRepository{db: db, cache: cache, now: time.Now}
}

// Book transitions a slot from available to booked and creates the
// appointment in the same transaction. Preconditions are checked in order:
// the slot must exist, must not be booked, and the patient must not already
// hold an appointment at the same instant with any doctor. A uniqueness
// violation on the insert means a concurrent booking won the slot; the
// transaction rolls back (undoing the flag flip) and the caller gets
// ErrSlotAlreadyBooked. Conflicts are never retried here: the caller must
// re-read slot state before trying again.
func (r *BookingRepository) Book(ctx context.Context, patientID, slotID uint, reason string) (*models.BookingDetail, error) {
	var detail models.BookingDetail

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot models.Slot
		if err := tx.First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("failed to load slot: %w", err)
		}
		if slot.Booked {
			return ErrSlotAlreadyBooked
		}

		var conflicts int64
		err := tx.Model(&models.Appointment{}).
			Joins("JOIN slots ON slots.id = appointments.slot_id").
			Where("appointments.patient_id = ? AND slots.start_time = ?", patientID, slot.StartTime).
			Count(&conflicts).Error
		if err != nil {
			return fmt.Errorf("failed to check schedule conflict: %w", err)
		}
		if conflicts > 0 {
			return ErrScheduleConflict
		}

		if err := tx.Model(&models.Slot{}).Where("id = ?", slot.ID).Update("booked", true).Error; err != nil {
			return fmt.Errorf("failed to mark slot booked: %w", err)
		}

		appointment := models.Appointment{
			PatientID: patientID,
			SlotID:    slot.ID,
			Reason:    reason,
			BookedAt:  r.now().UTC(),
		}
		if err := tx.Create(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotAlreadyBooked
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		var doctor models.Doctor
		if err := tx.First(&doctor, "id = ?", slot.DoctorID).Error; err != nil {
			return fmt.Errorf("failed to load doctor: %w", err)
		}

		detail = models.BookingDetail{
			ID:         appointment.ID,
			PatientID:  patientID,
			SlotID:     slot.ID,
			Reason:     reason,
			BookedAt:   appointment.BookedAt,
			StartTime:  slot.StartTime,
			DoctorID:   doctor.ID,
			DoctorName: doctor.Name,
			Specialty:  doctor.Specialty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.invalidateListings(ctx)
	return &detail, nil
}

// Cancel releases a booking: the appointment row is removed and the slot's
// booked flag cleared in the same transaction. Only the appointment's own
// patient may cancel it.
func (r *BookingRepository) Cancel(ctx context.Context, appointmentID, patientID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, "id = ?", appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("failed to load appointment: %w", err)
		}
		if appointment.PatientID != patientID {
			return ErrNotAppointmentOwner
		}

		if err := tx.Model(&models.Slot{}).Where("id = ?", appointment.SlotID).Update("booked", false).Error; err != nil {
			return fmt.Errorf("failed to release slot: %w", err)
		}
		if err := tx.Delete(&models.Appointment{}, "id = ?", appointment.ID).Error; err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidateListings(ctx)
	return nil
}

// ListByPatient returns the patient's appointments with slot and doctor
// details, soonest first.
func (r *BookingRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.BookingDetail, error) {
	var details []models.BookingDetail
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Select("appointments.id, appointments.patient_id, appointments.slot_id, appointments.reason, appointments.booked_at, slots.start_time, doctors.id AS doctor_id, doctors.name AS doctor_name, doctors.specialty").
		Joins("JOIN slots ON slots.id = appointments.slot_id").
		Joins("JOIN doctors ON doctors.id = slots.doctor_id").
		Where("appointments.patient_id = ?", patientID).
		Order("slots.start_time ASC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return details, nil
}

func (r *BookingRepository) invalidateListings(ctx context.Context) {
	if err := r.cache.DeleteAll(ctx, slotCachePattern); err != nil {
		log.Printf("Failed to invalidate slot cache: %v", err)
	}
}
