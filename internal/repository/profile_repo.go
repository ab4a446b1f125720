package repository

import (
	"context"

	"unboxx/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByAuthID(ctx context.Context, authID uuid.UUID) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	// UpdateFields writes only the given columns on the caller's profile.
	UpdateFields(ctx context.Context, authID uuid.UUID, fields map[string]interface{}) error
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }

func (r *profileRepo) Create(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByAuthID loads the profile with its linked company, if any.
func (r *profileRepo) FindByAuthID(ctx context.Context, authID uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Preload("Customer").Where("auth = ?", authID).First(&p).Error
	return &p, err
}

func (r *profileRepo) Update(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Omit("Customer").Save(p).Error
}

func (r *profileRepo) UpdateFields(ctx context.Context, authID uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Profile{}).Where("auth = ?", authID).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
