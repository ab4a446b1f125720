package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateOrderRequest struct {
	OrderNumber string          `json:"order_number" validate:"required,min=1,max=50"`
	OrderType   string          `json:"order_type"   validate:"omitempty,oneof=store bulk"`
	Title       *string         `json:"title"        validate:"omitempty,max=200"`
	Store       string          `json:"store"        validate:"required"`
	Date        string          `json:"date"         validate:"required,datetime=2006-01-02"`
	Qty         int             `json:"qty"          validate:"min=1"`
	Amount      decimal.Decimal `json:"amount"       validate:"gte=0"`
	Status      string          `json:"status"       validate:"required,oneof=Pending Processing Shipped Delivered"`
}

// UpdateOrderStatusRequest carries warehouse-driven transitions. Either field may be omitted.
type UpdateOrderStatusRequest struct {
	Status            *string `json:"status"             validate:"omitempty,oneof=Pending Processing Shipped Delivered"`
	FulfillmentStatus *string `json:"fulfillment_status" validate:"omitempty,min=1,max=40"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type OrderFilter struct {
	Type   string `form:"type"   validate:"omitempty,oneof=store bulk"`
	Status string `form:"status" validate:"omitempty,oneof=Pending Processing Shipped Delivered"`
	Search string `form:"search"`
	Page
	// Customer restricts results to one company; set by the service, never bound.
	Customer string `form:"-"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderResponse struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"order_number"`
	OrderType         string          `json:"order_type"`
	Title             *string         `json:"title"`
	Customer          string          `json:"customer"`
	Store             string          `json:"store"`
	Date              string          `json:"date"`
	Qty               int             `json:"qty"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	HasTracking       bool            `json:"has_tracking"`
}

type OrderItemResponse struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type ShippingAddressResponse struct {
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2"`
	City       string  `json:"city"`
	Region     *string `json:"region"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

type TrackingResponse struct {
	Carrier        string  `json:"carrier"`
	TrackingNumber string  `json:"tracking_number"`
	URL            *string `json:"url"`
	Status         string  `json:"status"`
}

type OrderDetailResponse struct {
	OrderResponse
	Items           []OrderItemResponse      `json:"items"`
	ShippingAddress *ShippingAddressResponse `json:"shipping_address"`
	Tracking        *TrackingResponse        `json:"tracking"`
}

type OrderListResponse struct {
	Data       []OrderResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
