package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles a Profile may hold.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Profile is the authenticated user's portal identity.
// CustomerID links it to the company it orders for; nil until the user
// completes the company form.
type Profile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:auth"`
	Email      string    `gorm:"index;not null"`
	FirstName  *string
	Surname    *string
	Phone      *string
	Role       string     `gorm:"type:varchar(20);not null;default:'client'"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
}
