package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// Set expiration times for access and refresh tokens.
	AccessTokenExpiry  = 24 * time.Hour
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// TokenClaims represents the data carried in a token.
type TokenClaims struct {
	UserID    uint      `json:"userId"`
	PatientID uint      `json:"patientId"`
	Role      string    `json:"role"`
	Expiry    time.Time `json:"expiry"`
}

// GetSymmetricKey retrieves the symmetric key from the environment variable.
// Ensures it has the correct length (32 bytes).
func GetSymmetricKey() []byte {
	key := os.Getenv("SYMMETRIC_KEY")
	if len(key) != 32 {
		log.Fatalf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(key))
	}
	return []byte(key)
}

// GenerateTokens generates both the access token and refresh token for the
// given user, binding the patient profile ID into the claims.
func GenerateTokens(userID, patientID uint, role string) (accessToken, refreshToken string, err error) {
	accessToken, err = generatePASEToken(userID, patientID, role, AccessTokenExpiry)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = generatePASEToken(userID, patientID, role, RefreshTokenExpiry)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// generatePASEToken generates a PASETO token with the given claims and expiry.
func generatePASEToken(userID, patientID uint, role string, expiry time.Duration) (string, error) {
	claims := TokenClaims{
		UserID:    userID,
		PatientID: patientID,
		Role:      role,
		Expiry:    time.Now().Add(expiry),
	}

	token, err := paseto.NewV2().Encrypt(GetSymmetricKey(), claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken validates the token string and checks expiry and, when
// required roles are given, role membership.
func ValidateToken(tokenString string, requiredRoles ...string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, GetSymmetricKey(), &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		return nil, errors.New("token expired")
	}

	if len(requiredRoles) == 0 {
		return &claims, nil
	}

	for _, role := range requiredRoles {
		if claims.Role == role {
			return &claims, nil
		}
	}

	return nil, errors.New("insufficient permissions")
}
