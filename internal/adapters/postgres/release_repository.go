package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

type releaseRepository struct {
	db *gorm.DB
}

func (r *releaseRepository) ListOrdered(ctx context.Context) ([]domain.Release, error) {
	var recs []releaseModel
	if err := r.db.WithContext(ctx).
		Order("order_index asc, created_at asc").
		Find(&recs).Error; err != nil {
		return nil, storeError(err)
	}
	out := make([]domain.Release, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomainRelease(rec))
	}
	return out, nil
}

func (r *releaseRepository) Insert(ctx context.Context, params ports.SaveReleaseParams) (domain.Release, error) {
	rec := releaseModel{
		Title:         params.Title,
		ArtistName:    params.ArtistName,
		ArtistID:      params.ArtistID,
		ArtworkURL:    params.ArtworkURL,
		Year:          params.Year,
		Color:         params.Color,
		SpotifyURL:    params.SpotifyURL,
		AppleMusicURL: params.AppleMusicURL,
		SoundCloudURL: params.SoundCloudURL,
		Featured:      params.Featured,
		OrderIndex:    params.OrderIndex,
		CreatedAt:     params.Now,
		UpdatedAt:     params.Now,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Release{}, storeError(err)
	}
	return toDomainRelease(rec), nil
}

func (r *releaseRepository) Update(ctx context.Context, params ports.SaveReleaseParams) (domain.Release, error) {
	updates := map[string]any{
		"title":           params.Title,
		"artist_name":     params.ArtistName,
		"artist_id":       params.ArtistID,
		"artwork_url":     params.ArtworkURL,
		"year":            params.Year,
		"color":           params.Color,
		"spotify_url":     params.SpotifyURL,
		"apple_music_url": params.AppleMusicURL,
		"soundcloud_url":  params.SoundCloudURL,
		"featured":        params.Featured,
		"order_index":     params.OrderIndex,
		"updated_at":      params.Now,
	}
	res := r.db.WithContext(ctx).Model(&releaseModel{}).
		Where("release_id = ?", params.ReleaseID).
		Updates(updates)
	if res.Error != nil {
		return domain.Release{}, storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Release{}, domain.ErrNotFound
	}
	return r.getByID(ctx, params.ReleaseID)
}

func (r *releaseRepository) Delete(ctx context.Context, releaseID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("release_id = ?", releaseID).Delete(&releaseModel{})
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *releaseRepository) getByID(ctx context.Context, releaseID uuid.UUID) (domain.Release, error) {
	var rec releaseModel
	if err := r.db.WithContext(ctx).Where("release_id = ?", releaseID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Release{}, domain.ErrNotFound
		}
		return domain.Release{}, storeError(err)
	}
	return toDomainRelease(rec), nil
}
