package dto

import "github.com/shopspring/decimal"

type InvoiceFilter struct {
	Search string `form:"search"`
	Status string `form:"status" validate:"omitempty,oneof=Paid Outstanding Overdue Cancelled"`
	Page
	Company string `form:"-"`
}

type InvoiceResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Company     string          `json:"company"`
	Description string          `json:"description"`
	InvoiceDate string          `json:"invoice_date"`
	DueDate     string          `json:"due_date"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
}

type InvoiceListResponse struct {
	Data       []InvoiceResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
