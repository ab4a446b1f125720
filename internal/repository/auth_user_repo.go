package repository

import (
	"context"

	"unboxx/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthUserRepository interface {
	Create(ctx context.Context, u *model.AuthUser) error
	FindByEmail(ctx context.Context, email string) (*model.AuthUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuthUser, error)
	Update(ctx context.Context, u *model.AuthUser) error
}

type authUserRepo struct{ db *gorm.DB }

func NewAuthUserRepository(db *gorm.DB) AuthUserRepository { return &authUserRepo{db: db} }

func (r *authUserRepo) Create(ctx context.Context, u *model.AuthUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *authUserRepo) FindByEmail(ctx context.Context, email string) (*model.AuthUser, error) {
	var u model.AuthUser
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u).Error
	return &u, err
}

func (r *authUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AuthUser, error) {
	var u model.AuthUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return &u, err
}

func (r *authUserRepo) Update(ctx context.Context, u *model.AuthUser) error {
	return r.db.WithContext(ctx).Save(u).Error
}
