package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoicePaid        = "Paid"
	InvoiceOutstanding = "Outstanding"
	InvoiceOverdue     = "Overdue"
	InvoiceCancelled   = "Cancelled"
)

// Invoice is an independent billing record. Company is the billed company's
// name, matched against Customer.Name for client visibility.
type Invoice struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number      string          `gorm:"uniqueIndex;not null"`
	Company     string          `gorm:"index;not null"`
	Description string          `gorm:"not null;default:''"`
	InvoiceDate time.Time       `gorm:"type:date;not null"`
	DueDate     time.Time       `gorm:"type:date;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"type:varchar(20);index;not null;default:'Outstanding'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
