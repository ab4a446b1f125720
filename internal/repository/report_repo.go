package repository

import (
	"context"

	"unboxx/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderCounts is the processing/total pair for one order type.
type OrderCounts struct {
	Processing int64
	Total      int64
}

type StatusCountRow struct {
	Status string
	Count  int64
}

type TopProductRow struct {
	SKU      string
	Name     string
	Store    string
	Price    decimal.Decimal
	Quantity int64
}

type StorePerformanceRow struct {
	Store   string
	Revenue decimal.Decimal
	Orders  int64
}

// ReportRepository runs the aggregate queries behind the dashboard and the
// reports page. A non-empty customer scopes every query to that company.
type ReportRepository interface {
	CountOrders(ctx context.Context, orderType, customer string) (OrderCounts, error)
	StatusBreakdown(ctx context.Context, customer string) ([]StatusCountRow, error)
	RevenueTotal(ctx context.Context, customer string) (decimal.Decimal, error)
	TopProducts(ctx context.Context, customer string, limit int) ([]TopProductRow, error)
	StorePerformance(ctx context.Context, customer string) ([]StorePerformanceRow, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) orders(ctx context.Context, customer string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if customer != "" {
		q = q.Where("customer = ?", customer)
	}
	return q
}

func (r *reportRepo) CountOrders(ctx context.Context, orderType, customer string) (OrderCounts, error) {
	var row struct {
		Total      int64
		Processing int64
	}
	err := r.orders(ctx, customer).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS processing", model.OrderProcessing).
		Where("order_type = ?", orderType).
		Scan(&row).Error
	return OrderCounts{Processing: row.Processing, Total: row.Total}, err
}

func (r *reportRepo) StatusBreakdown(ctx context.Context, customer string) ([]StatusCountRow, error) {
	var rows []StatusCountRow
	err := r.orders(ctx, customer).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) RevenueTotal(ctx context.Context, customer string) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	q := r.db.WithContext(ctx).Model(&model.Revenue{})
	if customer != "" {
		q = q.Where("customer = ?", customer)
	}
	err := q.Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

func (r *reportRepo) TopProducts(ctx context.Context, customer string, limit int) ([]TopProductRow, error) {
	var rows []TopProductRow
	q := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select(`oi.sku AS sku, MAX(oi.name) AS name,
			COALESCE(MAX(p.store), '') AS store,
			COALESCE(MAX(p.price), 0) AS price,
			SUM(oi.quantity) AS quantity`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("LEFT JOIN products p ON p.sku = oi.sku")
	if customer != "" {
		q = q.Where("o.customer = ?", customer)
	}
	err := q.Group("oi.sku").
		Order("quantity DESC").Order("oi.sku ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) StorePerformance(ctx context.Context, customer string) ([]StorePerformanceRow, error) {
	var rows []StorePerformanceRow
	err := r.orders(ctx, customer).
		Select("store, COALESCE(SUM(amount), 0) AS revenue, COUNT(*) AS orders").
		Group("store").
		Order("revenue DESC").Order("store ASC").
		Scan(&rows).Error
	return rows, err
}
