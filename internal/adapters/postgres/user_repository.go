package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, params ports.CreateUserParams) (domain.User, error) {
	rec := userModel{
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    params.Now,
		UpdatedAt:    params.Now,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		var storeErr *domain.StoreError
		if wrapped := storeError(err); errors.As(wrapped, &storeErr) && storeErr.Code == "23505" {
			return domain.User{}, domain.ErrConflict
		}
		return domain.User{}, storeError(err)
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, storeError(err)
	}
	return toDomainUser(rec), nil
}
