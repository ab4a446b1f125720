package repository

import (
	"context"

	"unboxx/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	// CreateAndLink inserts the company and points p at it. A profile without
	// an ID is inserted as well. All writes commit together or not at all.
	CreateAndLink(ctx context.Context, c *model.Customer, p *model.Profile) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	return &c, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) CreateAndLink(ctx context.Context, c *model.Customer, p *model.Profile) error {
	newProfile := p.ID == uuid.Nil
	err := runTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if newProfile {
			p.CustomerID = &c.ID
			return tx.Omit("Customer").Create(p).Error
		}
		res := tx.Model(&model.Profile{}).Where("id = ?", p.ID).Update("customer_id", c.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		p.CustomerID = &c.ID
		return nil
	})
	if err != nil && newProfile {
		p.ID, p.CustomerID = uuid.Nil, nil
	}
	return err
}

// runTx wraps fn in a transaction bound to ctx.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}
