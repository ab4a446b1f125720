package repository

import (
	"context"
	"time"

	"unboxx/internal/dto"
	"unboxx/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	// FindByID loads the order with items, shipping address and tracking.
	// A non-empty customer restricts the lookup to that company's orders.
	FindByID(ctx context.Context, id uuid.UUID, customer string) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	// UpdateStatus applies fields to the order. The first move into Delivered
	// also books the order amount as revenue in the same transaction.
	UpdateStatus(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID, customer string) (*model.Order, error) {
	var o model.Order
	q := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sku ASC") }).
		Preload("ShippingAddress").
		Preload("Tracking").
		Where("id = ?", id)
	if customer != "" {
		q = q.Where("customer = ?", customer)
	}
	err := q.First(&o).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.Type != "" {
		q = q.Where("order_type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Customer != "" {
		q = q.Where("customer = ?", filter.Customer)
	}
	q = whereContains(q, filter.Search, "order_number", "customer", "store", "title")

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Tracking").
		Order("date DESC").Order("order_number DESC").
		Limit(filter.Limit).Offset(filter.Offset()).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return runTx(ctx, r.db, func(tx *gorm.DB) error {
		var o model.Order
		if err := tx.Select("id", "store", "customer", "amount").Where("id = ?", id).First(&o).Error; err != nil {
			return err
		}

		if fields["status"] == model.OrderDelivered {
			res := tx.Model(&model.Order{}).
				Where("id = ? AND status <> ?", id, model.OrderDelivered).
				Updates(fields)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				return tx.Create(&model.Revenue{
					Store:      o.Store,
					Customer:   o.Customer,
					Amount:     o.Amount,
					RecordedAt: time.Now(),
				}).Error
			}
		}

		return tx.Model(&model.Order{}).Where("id = ?", id).Updates(fields).Error
	})
}
