package utils

import (
	"CarePoint/models"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one letter and one digit")
)

var (
	dateFormat  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockFormat = regexp.MustCompile(`^\d{2}:\d{2}$`)
	letterRegex = regexp.MustCompile(`[a-zA-Z]`)
	digitRegex  = regexp.MustCompile(`\d`)
)

// ValidateSignup validates the signup payload using ozzo-validation.
func ValidateSignup(req models.SignupRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.DateOfBirth, validation.Match(dateFormat).Error("must be YYYY-MM-DD")),
	)
}

// ValidateLogin validates the login payload.
func ValidateLogin(req models.LoginRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}

// ValidateDoctor validates a doctor create/update payload.
func ValidateDoctor(req models.DoctorRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Specialty, validation.Required, validation.Length(1, 255)),
	)
}

// ValidateBulkSlots validates a bulk slot generation payload.
func ValidateBulkSlots(req models.BulkSlotRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Date, validation.Required, validation.Match(dateFormat).Error("must be YYYY-MM-DD")),
		validation.Field(&req.StartTime, validation.Required, validation.Match(clockFormat).Error("must be HH:MM")),
		validation.Field(&req.EndTime, validation.Required, validation.Match(clockFormat).Error("must be HH:MM")),
		validation.Field(&req.IntervalMinutes, validation.Min(0), validation.Max(240)),
	)
}

// ValidateBooking validates a booking payload.
func ValidateBooking(req models.BookingRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.SlotID, validation.Required),
		validation.Field(&req.Reason, validation.Length(0, 2000)),
	)
}

// ValidateMedicalHistory validates a medical history payload.
func ValidateMedicalHistory(req models.MedicalHistoryRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Condition, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.DiagnosisDate, validation.Match(dateFormat).Error("must be YYYY-MM-DD")),
	)
}

// ValidateUpload validates a document upload request.
func ValidateUpload(req models.UploadRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.FileName, validation.Required, validation.Length(1, 255)),
	)
}

// validatePassword checks the password for length and minimal complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if !letterRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}
	return nil
}
