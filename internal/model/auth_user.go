package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthUser is the login identity. A Profile points at it through AuthID;
// the two are kept apart so a user can sign in before completing a profile.
type AuthUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
