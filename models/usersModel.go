package models

import (
	"time"
)

// User represents a login identity. Credentials only; the patient profile
// lives in its own table linked via user_id.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Role      string    `gorm:"size:50;not null;default:'Patient';column:role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
