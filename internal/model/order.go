package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order types. Store and bulk orders share the orders table.
const (
	OrderTypeStore = "store"
	OrderTypeBulk  = "bulk"
)

// Order statuses as shown in the portal.
const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
)

// OrderStatuses lists every valid Order.Status in display order.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered}

// Order is a store or bulk order.
// Customer holds the company name as text; FulfillmentStatus is owned by
// the warehouse and changes independently of Status.
type Order struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber       string          `gorm:"uniqueIndex;not null"`
	OrderType         string          `gorm:"type:varchar(10);index;not null;default:'store'"`
	Title             *string         // bulk orders only
	Customer          string          `gorm:"index;not null"`
	Store             string          `gorm:"index;not null"`
	Date              time.Time       `gorm:"type:date;not null"`
	Qty               int             `gorm:"not null;default:0"`
	Amount            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status            string          `gorm:"type:varchar(20);index;not null;default:'Pending'"`
	FulfillmentStatus string          `gorm:"type:varchar(40);not null;default:'Pending'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items           []OrderItem      `gorm:"foreignKey:OrderID"`
	ShippingAddress *ShippingAddress `gorm:"foreignKey:OrderID"`
	Tracking        *Tracking        `gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	SKU       string          `gorm:"column:sku;index;not null"`
	Name      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// Subtotal is Quantity × UnitPrice.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ShippingAddress struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name       string
	Email      *string
	Phone      *string
	Line1      string
	Line2      *string
	City       string
	Region     *string
	PostalCode string
	Country    string
}

type Tracking struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Carrier        string
	TrackingNumber string
	URL            *string `gorm:"column:url"`
	Status         string
	UpdatedAt      time.Time
}
