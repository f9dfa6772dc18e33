package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

type themeRepository struct {
	db *gorm.DB
}

func (r *themeRepository) Get(ctx context.Context) (domain.ThemeSettings, error) {
	var rec themeSettingsModel
	if err := r.db.WithContext(ctx).
		Where("theme_id = ?", domain.ThemeSettingsID).
		Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ThemeSettings{}, domain.ErrNotFound
		}
		return domain.ThemeSettings{}, storeError(err)
	}
	return toDomainTheme(rec), nil
}

// Update targets the singleton row only. Zero rows affected means the seed
// migration never ran, which reports as not-found rather than inserting.
func (r *themeRepository) Update(ctx context.Context, params ports.SaveThemeParams) error {
	updates := map[string]any{
		"primary_color":    params.PrimaryColor,
		"secondary_color":  params.SecondaryColor,
		"accent_color":     params.AccentColor,
		"extra_color_1":    params.ExtraColor1,
		"extra_color_2":    params.ExtraColor2,
		"background_color": params.BackgroundColor,
		"border_color":     params.BorderColor,
		"text_color":       params.TextColor,
		"label_name":       params.LabelName,
		"updated_at":       params.Now,
	}
	res := r.db.WithContext(ctx).Model(&themeSettingsModel{}).
		Where("theme_id = ?", domain.ThemeSettingsID).
		Updates(updates)
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
