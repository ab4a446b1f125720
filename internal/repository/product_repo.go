package repository

import (
	"context"

	"unboxx/internal/dto"
	"unboxx/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Correlated sums over a product's variants; a product with no variants
// sums to 0 on both sides and therefore reads as low stock.
const (
	sumStockSQL    = "(SELECT COALESCE(SUM(v.stock), 0) FROM product_variants v WHERE v.product_id = products.id)"
	sumMinStockSQL = "(SELECT COALESCE(SUM(v.min_stock), 0) FROM product_variants v WHERE v.product_id = products.id)"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.InventoryFilter) ([]model.Product, int64, error)
	Stores(ctx context.Context) ([]string, error)
	CountLowStockVariants(ctx context.Context) (int64, error)
	FindVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error)
	UpdateVariantStock(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Variants", orderVariants).Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *productRepo) filtered(ctx context.Context, filter dto.InventoryFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Store != "" {
		q = q.Where("store = ?", filter.Store)
	}
	switch filter.Status {
	case model.StatusLowStock:
		q = q.Where(sumStockSQL + " <= " + sumMinStockSQL)
	case model.StatusInStock:
		q = q.Where(sumStockSQL + " > " + sumMinStockSQL)
	}
	return whereContains(q, filter.Search, "name", "sku")
}

func (r *productRepo) List(ctx context.Context, filter dto.InventoryFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.filtered(ctx, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Variants", orderVariants).
		Order("name ASC").Order("sku ASC").
		Limit(filter.Limit).Offset(filter.Offset()).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) Stores(ctx context.Context) ([]string, error) {
	var stores []string
	err := r.db.WithContext(ctx).Model(&model.Product{}).Distinct("store").Order("store ASC").Pluck("store", &stores).Error
	return stores, err
}

func (r *productRepo) CountLowStockVariants(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductVariant{}).Where("stock <= min_stock").Count(&n).Error
	return n, err
}

func (r *productRepo) FindVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	return &v, err
}

func (r *productRepo) UpdateVariantStock(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.ProductVariant{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func orderVariants(db *gorm.DB) *gorm.DB { return db.Order("variant_sku ASC") }
