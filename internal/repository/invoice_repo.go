package repository

import (
	"context"

	"unboxx/internal/dto"
	"unboxx/internal/model"

	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	// ListAll returns every matching invoice without pagination, for export.
	ListAll(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, error)
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) filtered(ctx context.Context, filter dto.InvoiceFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Invoice{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Company != "" {
		q = q.Where("company = ?", filter.Company)
	}
	return whereContains(q, filter.Search, "number", "company", "description")
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	q := r.filtered(ctx, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("invoice_date DESC").Order("number DESC").
		Limit(filter.Limit).Offset(filter.Offset()).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) ListAll(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.filtered(ctx, filter).Order("invoice_date DESC").Order("number DESC").Find(&invoices).Error
	return invoices, err
}
