package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

type artistRepository struct {
	db *gorm.DB
}

func (r *artistRepository) ListOrdered(ctx context.Context) ([]domain.Artist, error) {
	var recs []artistModel
	if err := r.db.WithContext(ctx).
		Order("order_index asc, created_at asc").
		Find(&recs).Error; err != nil {
		return nil, storeError(err)
	}
	out := make([]domain.Artist, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomainArtist(rec))
	}
	return out, nil
}

func (r *artistRepository) Insert(ctx context.Context, params ports.SaveArtistParams) (domain.Artist, error) {
	rec := artistModel{
		Name:       params.Name,
		Genre:      params.Genre,
		Bio:        params.Bio,
		ImageURL:   params.ImageURL,
		Color:      params.Color,
		Instagram:  params.Instagram,
		Twitter:    params.Twitter,
		Spotify:    params.Spotify,
		SoundCloud: params.SoundCloud,
		Featured:   params.Featured,
		OrderIndex: params.OrderIndex,
		CreatedAt:  params.Now,
		UpdatedAt:  params.Now,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Artist{}, storeError(err)
	}
	return toDomainArtist(rec), nil
}

func (r *artistRepository) Update(ctx context.Context, params ports.SaveArtistParams) (domain.Artist, error) {
	updates := map[string]any{
		"name":        params.Name,
		"genre":       params.Genre,
		"bio":         params.Bio,
		"image_url":   params.ImageURL,
		"color":       params.Color,
		"instagram":   params.Instagram,
		"twitter":     params.Twitter,
		"spotify":     params.Spotify,
		"soundcloud":  params.SoundCloud,
		"featured":    params.Featured,
		"order_index": params.OrderIndex,
		"updated_at":  params.Now,
	}
	res := r.db.WithContext(ctx).Model(&artistModel{}).
		Where("artist_id = ?", params.ArtistID).
		Updates(updates)
	if res.Error != nil {
		return domain.Artist{}, storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Artist{}, domain.ErrNotFound
	}
	return r.getByID(ctx, params.ArtistID)
}

func (r *artistRepository) Delete(ctx context.Context, artistID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("artist_id = ?", artistID).Delete(&artistModel{})
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *artistRepository) getByID(ctx context.Context, artistID uuid.UUID) (domain.Artist, error) {
	var rec artistModel
	if err := r.db.WithContext(ctx).Where("artist_id = ?", artistID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Artist{}, domain.ErrNotFound
		}
		return domain.Artist{}, storeError(err)
	}
	return toDomainArtist(rec), nil
}
