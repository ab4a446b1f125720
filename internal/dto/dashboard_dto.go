package dto

import "github.com/shopspring/decimal"

type OrderTypeMetrics struct {
	Processing int64 `json:"processing"`
	Total      int64 `json:"total"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardResponse struct {
	StoreOrders   OrderTypeMetrics `json:"store_orders"`
	BulkOrders    OrderTypeMetrics `json:"bulk_orders"`
	LowStockItems int64            `json:"low_stock_items"`
	StatusCounts  []StatusCount    `json:"status_breakdown"`
	RevenueTotal  decimal.Decimal  `json:"revenue_total"`
}

type TopProduct struct {
	Rank     int             `json:"rank"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Store    string          `json:"store"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type StorePerformance struct {
	Store   string          `json:"store"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

type ReportResponse struct {
	TopProducts      []TopProduct       `json:"top_products"`
	StorePerformance []StorePerformance `json:"store_performance"`
}
