package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Revenue is one ledger entry; dashboard totals are sums over this table.
type Revenue struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Store      string          `gorm:"index;not null"`
	Customer   string          `gorm:"index;not null;default:''"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RecordedAt time.Time       `gorm:"index;not null"`
}
