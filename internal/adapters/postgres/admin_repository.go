package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dolmengate/label-cms/internal/domain"
)

type adminRepository struct {
	db *gorm.DB
}

func (r *adminRepository) IsAdmin(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&adminUserModel{}).
		Where("email = ?", normalizeAdminEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, storeError(err)
	}
	return count > 0, nil
}

// Add is idempotent: seeding the same email twice is not an error.
func (r *adminRepository) Add(ctx context.Context, email string, now time.Time) error {
	rec := adminUserModel{
		Email:     normalizeAdminEmail(email),
		CreatedAt: now,
	}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if err != nil {
		var storeErr *domain.StoreError
		if wrapped := storeError(err); errors.As(wrapped, &storeErr) && storeErr.Code == "23505" {
			return nil
		}
		return storeError(err)
	}
	return nil
}

func normalizeAdminEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
