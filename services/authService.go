package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	users    *repositories.UserRepository
	patients *repositories.PatientRepository
}

func NewAuthService(users *repositories.UserRepository, patients *repositories.PatientRepository) *AuthService {
	return &AuthService{users: users, patients: patients}
}

// TokenPair is returned after a successful signup or login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Signup registers a login identity and its patient profile, then issues
// tokens immediately.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*TokenPair, *models.Patient, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{Email: req.Email, Password: string(hashed), Role: "Patient"}
	patient := models.Patient{
		Name:          req.Name,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
	}

	if err := s.users.CreateWithPatient(ctx, &user, &patient); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user, patient.ID)
	if err != nil {
		return nil, nil, err
	}
	return tokens, &patient, nil
}

// Login exchanges credentials for tokens. A bad email and a bad password
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	patient, err := s.patients.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(*user, patient.ID)
}

func (s *AuthService) issueTokens(user models.User, patientID uint) (*TokenPair, error) {
	access, refresh, err := utils.GenerateTokens(user.ID, patientID, user.Role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
