package repositories

import "errors"

// Domain errors surfaced by the repositories. Handlers map these onto HTTP
// status codes; raw storage errors never cross the repository boundary for
// expected failure modes.
var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrSlotNotFound        = errors.New("slot not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrHistoryNotFound     = errors.New("medical history record not found")

	ErrSlotAlreadyBooked = errors.New("slot is already booked")
	ErrScheduleConflict  = errors.New("patient already has an appointment at this time")
	ErrDoctorExists      = errors.New("doctor with the same name already exists")
	ErrEmailTaken        = errors.New("email is already registered")

	ErrPastSlot          = errors.New("slot time is in the past")
	ErrInvalidDateFilter = errors.New("date filter must be YYYY-MM-DD")

	ErrNotAppointmentOwner = errors.New("appointment belongs to another patient")
	ErrNotDocumentOwner    = errors.New("document belongs to another patient")
)
