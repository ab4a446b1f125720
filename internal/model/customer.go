package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a company record. Orders reference it by Name (denormalized),
// not by foreign key.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"index;not null"`
	FirstName string    `gorm:"not null"`
	Surname   string    `gorm:"not null"`
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
