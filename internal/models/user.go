package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database
type User struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Email        string    `json:"email" db:"email"`           // Unique, domain lowercased
	Name         string    `json:"name" db:"name"`             // Display name
	PasswordHash string    `json:"-" db:"password_hash"`       // Bcrypt hash
	IsActive     bool      `json:"is_active" db:"is_active"`   // Inactive users cannot authenticate
	IsStaff      bool      `json:"is_staff" db:"is_staff"`     // Staff flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}
