package models

// Request payloads bound by the HTTP handlers. Validation rules live in
// utils/validation.go.

// SignupRequest creates a user plus its patient profile in one call.
type SignupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DoctorRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// SlotRequest creates a single slot; the timestamp is aligned to the
// booking grid server side.
type SlotRequest struct {
	StartTime string `json:"start_time"` // RFC 3339
}

// BulkSlotRequest generates every aligned slot between start and end time
// on the given day.
type BulkSlotRequest struct {
	Date            string `json:"date"`       // YYYY-MM-DD
	StartTime       string `json:"start_time"` // HH:MM
	EndTime         string `json:"end_time"`   // HH:MM
	IntervalMinutes int    `json:"interval_minutes"`
}

type BookingRequest struct {
	SlotID uint   `json:"slot_id"`
	Reason string `json:"reason"`
}

type MedicalHistoryRequest struct {
	Condition     string `json:"condition"`
	DiagnosisDate string `json:"diagnosis_date"`
	Medications   string `json:"medications"`
	Allergies     string `json:"allergies"`
	Treatment     string `json:"treatment"`
	Notes         string `json:"notes"`
}

type UploadRequest struct {
	FileName string `json:"file_name"`
}
