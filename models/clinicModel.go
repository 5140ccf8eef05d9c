package models

import (
	"time"
)

// Doctor model
type Doctor struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string    `gorm:"column:name;not null;index" json:"name"`
	Specialty string    `gorm:"column:specialty;not null;index" json:"specialty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Slots     []Slot    `gorm:"foreignKey:DoctorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Slot model. A slot is one bookable time unit belonging to one doctor.
// StartTime is stored timezone-aware and always aligned to the booking grid;
// the (doctor_id, start_time) pair is unique so the same instant can never be
// offered twice by the same doctor.
type Slot struct {
	ID        uint         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DoctorID  uint         `gorm:"column:doctor_id;not null;uniqueIndex:idx_doctor_start" json:"doctor_id"`
	StartTime time.Time    `gorm:"column:start_time;not null;uniqueIndex:idx_doctor_start" json:"start_time"`
	Booked    bool         `gorm:"column:booked;not null;default:false" json:"booked"`
	Doctor    Doctor       `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Booking   *Appointment `gorm:"foreignKey:SlotID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Slot) TableName() string {
	return "slots"
}

// Appointment model. At most one appointment per slot, enforced by the
// unique index on slot_id. An appointment row exists exactly when its
// slot's booked flag is set; both are written in one transaction.
type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID uint      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	SlotID    uint      `gorm:"column:slot_id;not null;uniqueIndex" json:"slot_id"`
	Reason    string    `gorm:"column:reason;type:text" json:"reason,omitempty"`
	BookedAt  time.Time `gorm:"column:booked_at;not null" json:"booked_at"`
	Patient   Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Slot      Slot      `gorm:"foreignKey:SlotID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Patient model
type Patient struct {
	ID             uint             `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID         uint             `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Name           string           `gorm:"column:name;not null" json:"name"`
	DateOfBirth    string           `gorm:"column:date_of_birth" json:"date_of_birth"`
	Gender         string           `gorm:"column:gender" json:"gender"`
	ContactNumber  string           `gorm:"column:contact_number" json:"contact_number"`
	Email          string           `gorm:"column:email;not null" json:"email"`
	Address        string           `gorm:"column:address" json:"address"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	MedicalHistory []MedicalHistory `gorm:"foreignKey:PatientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Appointments   []Appointment    `gorm:"foreignKey:PatientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

// MedicalHistory model
type MedicalHistory struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID     uint      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Condition     string    `gorm:"column:condition;not null" json:"condition"`
	DiagnosisDate string    `gorm:"column:diagnosis_date" json:"diagnosis_date"`
	Medications   string    `gorm:"column:medications" json:"medications"`
	Allergies     string    `gorm:"column:allergies" json:"allergies"`
	Treatment     string    `gorm:"column:treatment" json:"treatment"`
	Notes         string    `gorm:"column:notes" json:"notes"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Patient       Patient   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (MedicalHistory) TableName() string {
	return "medical_history"
}

// MedicalDocument model. The file itself lives in blob storage under
// BlobKey; only metadata and upload state are tracked here.
type MedicalDocument struct {
	ID           uint              `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID    uint              `gorm:"column:patient_id;not null;index" json:"patient_id"`
	FileName     string            `gorm:"column:file_name;not null" json:"file_name"`
	BlobKey      string            `gorm:"column:blob_key" json:"blob_key"`
	UploadStatus string            `gorm:"column:upload_status;check:upload_status IN ('pending', 'uploaded');not null;default:'pending'" json:"upload_status"`
	UploadedAt   time.Time         `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
	Patient      Patient           `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Analysis     *DocumentAnalysis `gorm:"foreignKey:DocumentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (MedicalDocument) TableName() string {
	return "medical_documents"
}

// DocumentAnalysis model holds the OCR result for an uploaded document.
type DocumentAnalysis struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	DocumentID uint      `gorm:"column:document_id;not null;uniqueIndex" json:"document_id"`
	Status     string    `gorm:"column:status;check:status IN ('processing', 'completed', 'failed');not null" json:"status"`
	RawResult  string    `gorm:"column:raw_result;type:text" json:"raw_result,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DocumentAnalysis) TableName() string {
	return "document_analysis"
}

// SlotView is a slot with its doctor's name and specialty denormalized for
// responses that list slots across doctors.
type SlotView struct {
	ID         uint      `json:"id"`
	DoctorID   uint      `json:"doctor_id"`
	StartTime  time.Time `json:"start_time"`
	Booked     bool      `json:"booked"`
	DoctorName string    `json:"doctor_name"`
	Specialty  string    `json:"specialty"`
}

// BookingDetail is an appointment joined with its slot and doctor, returned
// to the caller after booking and when listing a patient's appointments.
type BookingDetail struct {
	ID         uint      `json:"id"`
	PatientID  uint      `json:"patient_id"`
	SlotID     uint      `json:"slot_id"`
	Reason     string    `json:"reason,omitempty"`
	BookedAt   time.Time `json:"booked_at"`
	StartTime  time.Time `json:"start_time"`
	DoctorID   uint      `json:"doctor_id"`
	DoctorName string    `json:"doctor_name"`
	Specialty  string    `json:"specialty"`
}
