package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock statuses. Never stored; always derived from stock and min_stock.
const (
	StatusInStock  = "In Stock"
	StatusLowStock = "Low Stock"
)

// Product is a catalog entry; stock lives on its variants.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SKU       string          `gorm:"column:sku;uniqueIndex;not null"`
	Name      string          `gorm:"index;not null"`
	Store     string          `gorm:"index;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
}

type ProductVariant struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null"`
	VariantSKU string    `gorm:"column:variant_sku;uniqueIndex;not null"`
	Size       string
	Color      string
	Stock      int `gorm:"not null;default:0"`
	MinStock   int `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

// StockStatus classifies an on-hand quantity against its minimum.
// Equal counts as low.
func StockStatus(stock, minStock int) string {
	if stock <= minStock {
		return StatusLowStock
	}
	return StatusInStock
}

func (v ProductVariant) Status() string { return StockStatus(v.Stock, v.MinStock) }

// TotalStock is the stock on hand summed over all variants.
func (p Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// TotalMinStock is the minimum threshold summed over all variants.
func (p Product) TotalMinStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.MinStock
	}
	return total
}

// Status compares the summed stock with the summed minimums, so one low
// variant does not by itself make the product low.
func (p Product) Status() string { return StockStatus(p.TotalStock(), p.TotalMinStock()) }
