package dto

import "github.com/shopspring/decimal"

type InventoryFilter struct {
	Search string `form:"search"`
	Store  string `form:"store"`
	Status string `form:"status" validate:"omitempty,oneof='In Stock' 'Low Stock'"`
	Page
}

type SetStockRequest struct {
	Stock    int  `json:"stock"     validate:"min=0"`
	MinStock *int `json:"min_stock" validate:"omitempty,min=0"`
}

type VariantResponse struct {
	ID         string `json:"id"`
	VariantSKU string `json:"variant_sku"`
	Size       string `json:"size"`
	Color      string `json:"color"`
	Stock      int    `json:"stock"`
	MinStock   int    `json:"min_stock"`
	Status     string `json:"status"`
}

type ProductResponse struct {
	ID       string            `json:"id"`
	SKU      string            `json:"sku"`
	Name     string            `json:"name"`
	Store    string            `json:"store"`
	Price    decimal.Decimal   `json:"price"`
	SOH      int               `json:"soh"`
	Status   string            `json:"status"`
	Expanded bool              `json:"expanded"`
	Variants []VariantResponse `json:"variants"`
}

type InventoryListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	LowStock   int64             `json:"low_stock"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

type ToggleResponse struct {
	ProductID string `json:"product_id"`
	Expanded  bool   `json:"expanded"`
}

type ToggleAllResponse struct {
	Expanded []string `json:"expanded"`
}
